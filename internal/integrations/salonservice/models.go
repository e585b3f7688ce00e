package salonservice

import (
	"encoding/json"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Salon модель салона из SalonService
type Salon struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Address      string       `json:"address"`
	ManagerIDs   []int64      `json:"managerIds"`
	WorkingHours WeekSchedule `json:"workingHours"`
}

// HasManager проверяет, является ли пользователь менеджером салона
func (s *Salon) HasManager(userID int64) bool {
	for _, id := range s.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Employee модель мастера из SalonService
type Employee struct {
	ID       int64  `json:"id"`
	SalonID  int64  `json:"salonId"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	// Индивидуальное расписание мастера; nil = работает по расписанию салона
	WorkingHours *WeekSchedule `json:"workingHours,omitempty"`
}

// Service модель услуги из SalonService
type Service struct {
	ID              int64    `json:"id"`
	SalonID         int64    `json:"salonId"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           *float64 `json:"price,omitempty"`
	IsActive        bool     `json:"isActive"`
}

// ErrorResponse модель ошибки от SalonService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WeekSchedule недельное расписание, как его отдаёт SalonService
// Нормализует исторические варианты имён полей времени при десериализации
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// ToDomain конвертирует расписание в доменную модель
func (w *WeekSchedule) ToDomain() domain.WeekSchedule {
	return domain.WeekSchedule{
		Monday:    w.Monday.ToDomain(),
		Tuesday:   w.Tuesday.ToDomain(),
		Wednesday: w.Wednesday.ToDomain(),
		Thursday:  w.Thursday.ToDomain(),
		Friday:    w.Friday.ToDomain(),
		Saturday:  w.Saturday.ToDomain(),
		Sunday:    w.Sunday.ToDomain(),
	}
}

// DaySchedule расписание на один день недели
//
// Upstream-данные исторически используют разные имена полей для времени
// открытия (`open`/`openTime`/`startTime`) и закрытия
// (`close`/`closeTime`/`endTime`). Десериализация принимает любой из
// вариантов; если ни один не задан или значение не парсится, день
// считается закрытым - это не ошибка
type DaySchedule struct {
	IsOpen    bool
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
}

// rawDaySchedule промежуточная модель со всеми вариантами имён полей
type rawDaySchedule struct {
	IsOpen *bool `json:"isOpen"`

	Open      *string `json:"open"`
	OpenTime  *string `json:"openTime"`
	StartTime *string `json:"startTime"`

	Close     *string `json:"close"`
	CloseTime *string `json:"closeTime"`
	EndTime   *string `json:"endTime"`
}

// UnmarshalJSON нормализует варианты имён полей времени
func (d *DaySchedule) UnmarshalJSON(data []byte) error {
	var raw rawDaySchedule
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	// Явное isOpen=false закрывает день независимо от наличия времени
	if raw.IsOpen != nil && !*raw.IsOpen {
		*d = DaySchedule{IsOpen: false}
		return nil
	}

	openTime := firstValidTime(raw.Open, raw.OpenTime, raw.StartTime)
	closeTime := firstValidTime(raw.Close, raw.CloseTime, raw.EndTime)

	// Нет времени ни в одном из вариантов - день закрыт, ошибки нет
	if openTime == nil || closeTime == nil {
		*d = DaySchedule{IsOpen: false}
		return nil
	}

	*d = DaySchedule{
		IsOpen:    true,
		OpenTime:  openTime,
		CloseTime: closeTime,
	}
	return nil
}

// ToDomain конвертирует день в доменную модель
func (d DaySchedule) ToDomain() domain.DaySchedule {
	return domain.DaySchedule{
		IsOpen:    d.IsOpen,
		OpenTime:  d.OpenTime,
		CloseTime: d.CloseTime,
	}
}

// firstValidTime возвращает первое распарсившееся время из списка кандидатов
func firstValidTime(candidates ...*string) *types.TimeString {
	for _, c := range candidates {
		if c == nil || *c == "" {
			continue
		}
		ts, err := types.NewTimeStringFromString(*c)
		if err != nil {
			continue
		}
		return &ts
	}
	return nil
}

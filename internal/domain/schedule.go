package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// DaySchedule расписание работы на один день недели
type DaySchedule struct {
	IsOpen    bool
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
}

// IsWorkable возвращает true, если в этот день можно бронировать:
// день открыт и заданы корректные часы работы (открытие строго раньше закрытия)
// Отсутствие часов при isOpen=true трактуется как закрытый день, а не как ошибка
func (d DaySchedule) IsWorkable() bool {
	if !d.IsOpen || d.OpenTime == nil || d.CloseTime == nil {
		return false
	}
	return d.OpenTime.IsBefore(*d.CloseTime)
}

// WeekSchedule недельное расписание работы салона или мастера
type WeekSchedule struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
}

// HoursFor возвращает расписание работы на указанную дату
func (w WeekSchedule) HoursFor(date time.Time) DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// IsSameDay проверяет, что две даты относятся к одному и тому же дню
func IsSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func IsDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

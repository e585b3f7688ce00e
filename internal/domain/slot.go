package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// TimeSlot кандидат на запись: окно фиксированной длительности на сетке слотов
// Вычисляется заново на каждый запрос и нигде не персистится
type TimeSlot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Available       bool
	Reason          *string // причина недоступности, nil для доступных слотов
}

// SlotParams параметры генерации слотов
type SlotParams struct {
	ServiceDurationMinutes int // длительность услуги (длительность каждого слота)
	GranularityMinutes     int // шаг сетки между началами соседних слотов
	MinLeadTimeMinutes     int // минимальное время до начала слота при бронировании сегодня
}

// GenerateSlots генерирует упорядоченный список слотов на день
//
// Сетка слотов фиксированная: начала идут от открытия с шагом granularity
// независимо от длительности услуги. Слот попадает в список, только если
// полная длительность услуги помещается до закрытия.
//
// В списке присутствуют и доступные, и недоступные слоты - решение о том,
// показывать ли занятые, принимает вызывающая сторона.
// Для дат в прошлом и закрытых дней возвращается пустой список
func GenerateSlots(day DaySchedule, appointments []*Appointment, params SlotParams, date, now time.Time) ([]TimeSlot, error) {
	if IsDateInPast(date, now) {
		return []TimeSlot{}, nil
	}

	if !day.IsWorkable() {
		return []TimeSlot{}, nil
	}

	openTime := *day.OpenTime
	closeTime := *day.CloseTime

	// Минимальное допустимое время начала слота для сегодняшней даты
	// Слот, начинающийся раньше или ровно в now+minLeadTime, бронировать нельзя
	var minAllowedStart *types.TimeString
	if IsSameDay(date, now) {
		currentTime := types.NewTimeString(now)
		minStart, err := currentTime.AddMinutes(params.MinLeadTimeMinutes)
		if err != nil {
			// Буфер вышел за границу суток - сегодня бронировать уже нечего,
			// все слоты будут помечены как прошедшие
			endOfDay := types.TimeString("24:00")
			minStart = endOfDay
		}
		minAllowedStart = &minStart
	}

	slots := make([]TimeSlot, 0)
	current := openTime

	for current.IsBefore(closeTime) {
		slotEnd, err := current.AddMinutes(params.ServiceDurationMinutes)
		if err != nil {
			// Конец слота за границей суток - услуга не помещается
			break
		}
		if slotEnd.IsAfter(closeTime) {
			break
		}

		slot := TimeSlot{
			StartTime:       current,
			EndTime:         slotEnd,
			DurationMinutes: params.ServiceDurationMinutes,
			Available:       true,
		}

		if CountOverlapping(current, params.ServiceDurationMinutes, appointments) > 0 {
			reason := ReasonAlreadyBooked
			slot.Available = false
			slot.Reason = &reason
		} else if minAllowedStart != nil && !current.IsAfter(*minAllowedStart) {
			reason := ReasonPastTimeSlot
			slot.Available = false
			slot.Reason = &reason
		}

		slots = append(slots, slot)

		current, err = current.AddMinutes(params.GranularityMinutes)
		if err != nil {
			break
		}
	}

	return slots, nil
}

// CountOverlapping подсчитывает количество записей, пересекающихся с указанным окном
// Пересечение проверяется на полуоткрытых интервалах: записи, граничащие
// с окном (конец одной ровно в начале другого), НЕ считаются пересечением
//
// Примеры:
// - Окно 11:30-12:00, запись 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Окно 11:30-12:00, запись 11:00-11:30 → НЕТ пересечения (граничат)
// - Окно 11:30-12:00, запись 12:00-12:30 → НЕТ пересечения (граничат)
func CountOverlapping(start types.TimeString, durationMinutes int, appointments []*Appointment) int {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		// Если не можем вычислить конец окна, считаем что пересечений нет
		return 0
	}

	count := 0

	for _, appt := range appointments {
		// Пропускаем записи, не занимающие слот
		if !appt.OccupiesSlot() {
			continue
		}

		apptStart := appt.StartTime
		apptEnd, err := appt.StartTime.AddMinutes(appt.DurationMinutes)
		if err != nil {
			continue
		}

		// Строгие неравенства: граничные случаи не считаются пересечением
		if apptStart.IsBefore(end) && apptEnd.IsAfter(start) {
			count++
		}
	}

	return count
}

// NearestAvailableSlots возвращает до limit доступных слотов, отсортированных
// по близости к запрошенному времени начала
// Используется для мгновенных альтернатив при конфликте бронирования
func NearestAvailableSlots(slots []TimeSlot, requestedStart types.TimeString, limit int) []TimeSlot {
	available := make([]TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.Available {
			available = append(available, slot)
		}
	}

	sort.SliceStable(available, func(i, j int) bool {
		di, errI := available[i].StartTime.MinutesBetween(requestedStart)
		dj, errJ := available[j].StartTime.MinutesBetween(requestedStart)
		if errI != nil || errJ != nil {
			return errJ != nil && errI == nil
		}
		return di < dj
	})

	if limit > 0 && len(available) > limit {
		available = available[:limit]
	}

	return available
}

// DayStatus статус занятости дня для календарного отображения
type DayStatus string

const (
	DayStatusAvailable       DayStatus = "available"
	DayStatusPartiallyBooked DayStatus = "partially_booked"
	DayStatusFullyBooked     DayStatus = "fully_booked"
	DayStatusUnavailable     DayStatus = "unavailable"
)

// DayAvailability сводка занятости одного дня
// Вычисляется заново на каждый запрос и нигде не персистится
type DayAvailability struct {
	Date           time.Time
	Status         DayStatus
	TotalSlots     int
	AvailableSlots int
}

// SummarizeSlots сводит список слотов дня в DayAvailability
func SummarizeSlots(date time.Time, slots []TimeSlot) DayAvailability {
	total := len(slots)
	available := 0
	for _, slot := range slots {
		if slot.Available {
			available++
		}
	}

	return DayAvailability{
		Date:           date,
		Status:         DeriveDayStatus(total, available),
		TotalSlots:     total,
		AvailableSlots: available,
	}
}

// DeriveDayStatus выводит статус дня из количества слотов
func DeriveDayStatus(totalSlots, availableSlots int) DayStatus {
	switch {
	case totalSlots == 0:
		return DayStatusUnavailable
	case availableSlots == 0:
		return DayStatusFullyBooked
	case availableSlots == totalSlots:
		return DayStatusAvailable
	default:
		return DayStatusPartiallyBooked
	}
}

// dayStatusRank порядок статусов от менее доступного к более доступному
var dayStatusRank = map[DayStatus]int{
	DayStatusUnavailable:     0,
	DayStatusFullyBooked:     1,
	DayStatusPartiallyBooked: 2,
	DayStatusAvailable:       3,
}

// BetterDayStatus возвращает более доступный из двух статусов
// Используется при объединении сводок разных мастеров: статусы сравниваются
// целиком, а не выводятся заново из максимумов по слотам - максимумы могут
// происходить от разных мастеров
func BetterDayStatus(a, b DayStatus) DayStatus {
	if dayStatusRank[b] > dayStatusRank[a] {
		return b
	}
	return a
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func workDay(t *testing.T, open, close string) DaySchedule {
	t.Helper()
	openTime := ts(t, open)
	closeTime := ts(t, close)
	return DaySchedule{IsOpen: true, OpenTime: &openTime, CloseTime: &closeTime}
}

func apptAt(t *testing.T, start string, durationMinutes int, status AppointmentStatus) *Appointment {
	t.Helper()
	return &Appointment{
		StartTime:       ts(t, start),
		DurationMinutes: durationMinutes,
		Status:          status,
	}
}

func defaultParams() SlotParams {
	return SlotParams{
		ServiceDurationMinutes: 30,
		GranularityMinutes:     30,
		MinLeadTimeMinutes:     15,
	}
}

func TestGenerateSlots_FullDay(t *testing.T) {
	day := workDay(t, "09:00", "18:00")
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)  // понедельник
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)  // за неделю до даты

	slots, err := GenerateSlots(day, nil, defaultParams(), date, now)
	require.NoError(t, err)

	// 09:00-18:00 с шагом 30 минут = 18 слотов
	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, "09:30", slots[0].EndTime.String())
	assert.Equal(t, "17:30", slots[17].StartTime.String())
	assert.Equal(t, "18:00", slots[17].EndTime.String())

	for _, slot := range slots {
		assert.True(t, slot.Available)
		assert.Nil(t, slot.Reason)
	}
}

func TestGenerateSlots_BookedSlotMarked(t *testing.T) {
	day := workDay(t, "09:00", "12:00")
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	appointments := []*Appointment{
		apptAt(t, "10:00", 30, StatusConfirmed),
	}

	slots, err := GenerateSlots(day, appointments, defaultParams(), date, now)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	// 10:00-10:30 занят, остальные свободны
	assert.False(t, slots[2].Available)
	require.NotNil(t, slots[2].Reason)
	assert.Equal(t, ReasonAlreadyBooked, *slots[2].Reason)

	// Граничащие слоты (09:30 и 10:30) не затронуты
	assert.True(t, slots[1].Available)
	assert.True(t, slots[3].Available)
}

func TestGenerateSlots_CancelledAppointmentDoesNotBlock(t *testing.T) {
	day := workDay(t, "09:00", "11:00")
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	appointments := []*Appointment{
		apptAt(t, "09:00", 30, StatusCancelled),
		apptAt(t, "10:00", 30, StatusNoShow),
		apptAt(t, "10:30", 30, StatusCompleted),
	}

	slots, err := GenerateSlots(day, appointments, defaultParams(), date, now)
	require.NoError(t, err)
	for _, slot := range slots {
		assert.True(t, slot.Available, "слот %s должен быть доступен", slot.StartTime)
	}
}

func TestGenerateSlots_MinLeadTimeBuffer(t *testing.T) {
	day := workDay(t, "09:00", "18:00")
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	// Сейчас 10:50, буфер 15 минут: минимальное начало 11:05
	now := time.Date(2026, 9, 7, 10, 50, 0, 0, time.UTC)

	slots, err := GenerateSlots(day, nil, defaultParams(), date, now)
	require.NoError(t, err)
	require.Len(t, slots, 18)

	for _, slot := range slots {
		startMin, err := slot.StartTime.Minutes()
		require.NoError(t, err)
		if startMin <= 11*60+5 {
			assert.False(t, slot.Available, "слот %s в пределах буфера", slot.StartTime)
			require.NotNil(t, slot.Reason)
			assert.Equal(t, ReasonPastTimeSlot, *slot.Reason)
		} else {
			assert.True(t, slot.Available, "слот %s за пределами буфера", slot.StartTime)
		}
	}

	// 11:00 недоступен (11:00 <= 11:05), 11:30 доступен
	assert.False(t, slots[4].Available)
	assert.True(t, slots[5].Available)
}

func TestGenerateSlots_LeadTimeExactBoundary(t *testing.T) {
	day := workDay(t, "09:00", "18:00")
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	// Сейчас 10:45: минимальное начало ровно 11:00
	now := time.Date(2026, 9, 7, 10, 45, 0, 0, time.UTC)

	slots, err := GenerateSlots(day, nil, defaultParams(), date, now)
	require.NoError(t, err)

	// Слот, начинающийся ровно в now+buffer, бронировать нельзя
	assert.False(t, slots[4].Available) // 11:00
	assert.True(t, slots[5].Available)  // 11:30
}

func TestGenerateSlots_ServiceLongerThanGrid(t *testing.T) {
	day := workDay(t, "09:00", "11:00")
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	params := SlotParams{
		ServiceDurationMinutes: 60,
		GranularityMinutes:     30,
		MinLeadTimeMinutes:     15,
	}

	slots, err := GenerateSlots(day, nil, params, date, now)
	require.NoError(t, err)

	// Начала 09:00, 09:30, 10:00 - услуга помещается до 11:00
	// 10:30 не попадает: конец 11:30 за закрытием
	require.Len(t, slots, 3)
	assert.Equal(t, "10:00", slots[2].StartTime.String())
	assert.Equal(t, "11:00", slots[2].EndTime.String())
}

func TestGenerateSlots_PartialOverlapBlocks(t *testing.T) {
	day := workDay(t, "09:00", "13:00")
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	// Запись 11:20-11:40 пересекает и слот 11:00-11:30, и слот 11:30-12:00
	appointments := []*Appointment{
		apptAt(t, "11:20", 20, StatusPending),
	}

	slots, err := GenerateSlots(day, appointments, defaultParams(), date, now)
	require.NoError(t, err)

	bySlot := make(map[string]TimeSlot)
	for _, slot := range slots {
		bySlot[slot.StartTime.String()] = slot
	}

	assert.False(t, bySlot["11:00"].Available)
	assert.False(t, bySlot["11:30"].Available)
	assert.True(t, bySlot["10:30"].Available)
	assert.True(t, bySlot["12:00"].Available)
}

func TestGenerateSlots_PastDate(t *testing.T) {
	day := workDay(t, "09:00", "18:00")
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	slots, err := GenerateSlots(day, nil, defaultParams(), date, now)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_ClosedDay(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	slots, err := GenerateSlots(DaySchedule{IsOpen: false}, nil, defaultParams(), date, now)
	require.NoError(t, err)
	assert.Empty(t, slots)

	// isOpen=true без часов работы - тоже закрытый день
	slots, err = GenerateSlots(DaySchedule{IsOpen: true}, nil, defaultParams(), date, now)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestCountOverlapping_BoundariesDoNotOverlap(t *testing.T) {
	appointments := []*Appointment{
		apptAt(t, "11:00", 30, StatusConfirmed), // 11:00-11:30
		apptAt(t, "12:00", 30, StatusConfirmed), // 12:00-12:30
	}

	// Окно 11:30-12:00 граничит с обеими записями
	assert.Equal(t, 0, CountOverlapping(ts(t, "11:30"), 30, appointments))

	// Окно 11:15-11:45 пересекает первую запись
	assert.Equal(t, 1, CountOverlapping(ts(t, "11:15"), 30, appointments))

	// Окно 11:00-12:30 пересекает обе
	assert.Equal(t, 2, CountOverlapping(ts(t, "11:00"), 90, appointments))
}

func TestNearestAvailableSlots_OrderedByProximity(t *testing.T) {
	booked := ReasonAlreadyBooked
	slots := []TimeSlot{
		{StartTime: ts(t, "09:00"), Available: true},
		{StartTime: ts(t, "10:00"), Available: false, Reason: &booked},
		{StartTime: ts(t, "10:30"), Available: true},
		{StartTime: ts(t, "11:00"), Available: true},
		{StartTime: ts(t, "14:00"), Available: true},
	}

	nearest := NearestAvailableSlots(slots, ts(t, "10:00"), 3)
	require.Len(t, nearest, 3)

	// 10:30 (30 мин), 09:00 и 11:00 (по 60 мин, стабильный порядок), 14:00 отброшен
	assert.Equal(t, "10:30", nearest[0].StartTime.String())
	assert.Equal(t, "09:00", nearest[1].StartTime.String())
	assert.Equal(t, "11:00", nearest[2].StartTime.String())
}

func TestNearestAvailableSlots_SkipsUnavailable(t *testing.T) {
	booked := ReasonAlreadyBooked
	slots := []TimeSlot{
		{StartTime: ts(t, "10:00"), Available: false, Reason: &booked},
		{StartTime: ts(t, "10:30"), Available: false, Reason: &booked},
	}

	nearest := NearestAvailableSlots(slots, ts(t, "10:00"), 3)
	assert.Empty(t, nearest)
}

func TestDeriveDayStatus(t *testing.T) {
	assert.Equal(t, DayStatusUnavailable, DeriveDayStatus(0, 0))
	assert.Equal(t, DayStatusFullyBooked, DeriveDayStatus(10, 0))
	assert.Equal(t, DayStatusAvailable, DeriveDayStatus(10, 10))
	assert.Equal(t, DayStatusPartiallyBooked, DeriveDayStatus(10, 3))
}

func TestBetterDayStatus(t *testing.T) {
	assert.Equal(t, DayStatusAvailable, BetterDayStatus(DayStatusUnavailable, DayStatusAvailable))
	assert.Equal(t, DayStatusAvailable, BetterDayStatus(DayStatusAvailable, DayStatusFullyBooked))
	assert.Equal(t, DayStatusPartiallyBooked, BetterDayStatus(DayStatusFullyBooked, DayStatusPartiallyBooked))
	assert.Equal(t, DayStatusFullyBooked, BetterDayStatus(DayStatusFullyBooked, DayStatusUnavailable))
	assert.Equal(t, DayStatusUnavailable, BetterDayStatus(DayStatusUnavailable, DayStatusUnavailable))
}

func TestSummarizeSlots(t *testing.T) {
	booked := ReasonAlreadyBooked
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	slots := []TimeSlot{
		{StartTime: ts(t, "09:00"), Available: true},
		{StartTime: ts(t, "09:30"), Available: false, Reason: &booked},
		{StartTime: ts(t, "10:00"), Available: true},
	}

	summary := SummarizeSlots(date, slots)
	assert.Equal(t, 3, summary.TotalSlots)
	assert.Equal(t, 2, summary.AvailableSlots)
	assert.Equal(t, DayStatusPartiallyBooked, summary.Status)
	assert.Equal(t, date, summary.Date)
}

package domain

// Default slot configuration values
const (
	DefaultGranularityMinutes = 30
	DefaultMinLeadTimeMinutes = 15 // минимальное время до начала слота при бронировании
	DefaultAdvanceBookingDays = 0  // 0 = unlimited
	DefaultMaxSuggestions     = 3  // сколько альтернативных слотов предлагать при конфликте
)

// Business validation constants
const (
	MinGranularityMinutes = 5
	MaxGranularityMinutes = 240
	MinLeadTimeMinutes    = 0
	MaxLeadTimeMinutes    = 1440 // сутки
	MinAdvanceBookingDays = 0
	MaxAdvanceBookingDays = 365
	MaxSuggestionsLimit   = 10
	MaxNotesLength        = 500
	MaxCancelReasonLength = 500

	// MaxEmployeesPerAggregation ограничивает фан-аут запросов в режиме
	// "любой мастер": агрегируются первые N активных сотрудников
	MaxEmployeesPerAggregation = 5

	// MaxAvailabilityRangeDays ограничивает длину запрашиваемого диапазона дат
	MaxAvailabilityRangeDays = 62
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Slot unavailability reasons
const (
	ReasonAlreadyBooked = "Already booked"
	ReasonPastTimeSlot  = "Past time slot"
)

// InactiveStatuses список статусов, не занимающих слот в календаре
// Используется для фильтрации при подсчёте доступных слотов
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
	StatusCompleted,
}

// BlockingStatuses список статусов, занимающих слот в календаре мастера
var BlockingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

package get_day_availability

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса сводки занятости за период
type Request struct {
	SalonID    int64     // ID салона
	EmployeeID *int64    // ID мастера; nil = режим "любой мастер"
	ServiceID  int64     // ID услуги (определяет длительность слота)
	StartDate  time.Time // Начало периода (включительно)
	EndDate    time.Time // Конец периода (включительно)
}

// Response модель ответа со сводкой занятости по дням
type Response struct {
	SalonID    int64                    // ID салона
	EmployeeID *int64                   // ID мастера (nil = "любой мастер")
	ServiceID  int64                    // ID услуги
	Days       []domain.DayAvailability // По одной сводке на каждый день периода
}

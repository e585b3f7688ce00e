package get_day_availability

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getDayAvailability "github.com/m04kA/SMC-SalonService/internal/usecase/get_day_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	SalonID    int64  `json:"salonId"`
	EmployeeID *int64 `json:"employeeId,omitempty"`
	ServiceID  int64  `json:"serviceId"`
	Days       []Day  `json:"days"`
}

// Day сводка занятости одного дня
type Day struct {
	Date           string `json:"date"`
	Status         string `json:"status"`
	TotalSlots     int    `json:"totalSlots"`
	AvailableSlots int    `json:"availableSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDayAvailability.Response) *AvailabilityResponse {
	days := make([]Day, len(resp.Days))
	for i, day := range resp.Days {
		days[i] = Day{
			Date:           day.Date.Format(domain.DateFormat),
			Status:         string(day.Status),
			TotalSlots:     day.TotalSlots,
			AvailableSlots: day.AvailableSlots,
		}
	}

	return &AvailabilityResponse{
		SalonID:    resp.SalonID,
		EmployeeID: resp.EmployeeID,
		ServiceID:  resp.ServiceID,
		Days:       days,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
// employeeID == nil означает режим "любой мастер"
func ToUseCaseRequest(salonID int64, employeeID *int64, serviceID int64, startDateStr, endDateStr string) (*getDayAvailability.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, startDateStr)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, endDateStr)
	if err != nil {
		return nil, err
	}

	return &getDayAvailability.Request{
		SalonID:    salonID,
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		StartDate:  startDate,
		EndDate:    endDate,
	}, nil
}

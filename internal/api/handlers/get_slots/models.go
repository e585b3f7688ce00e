package get_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date       string `json:"date"`
	SalonID    int64  `json:"salonId"`
	EmployeeID int64  `json:"employeeId"`
	ServiceID  int64  `json:"serviceId"`
	Slots      []Slot `json:"slots"`
}

// Slot модель временного слота
type Slot struct {
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Available       bool    `json:"available"`
	Reason          *string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *SlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			StartTime:       slot.StartTime.String(),
			EndTime:         slot.EndTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
			Reason:          slot.Reason,
		}
	}

	return &SlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		SalonID:    resp.SalonID,
		EmployeeID: resp.EmployeeID,
		ServiceID:  resp.ServiceID,
		Slots:      slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(salonID, employeeID, serviceID int64, dateStr string) (*getSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getSlots.Request{
		SalonID:    salonID,
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Date:       date,
	}, nil
}

package validate_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	validateBooking "github.com/m04kA/SMC-SalonService/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// ValidateBookingRequest HTTP request model
type ValidateBookingRequest struct {
	SalonID    int64  `json:"salonId"`
	EmployeeID int64  `json:"employeeId"`
	ServiceID  int64  `json:"serviceId"`
	Date       string `json:"date"`      // "2025-10-15"
	StartTime  string `json:"startTime"` // "10:00"
}

// ValidateBookingResponse HTTP response model
type ValidateBookingResponse struct {
	Valid       bool     `json:"valid"`
	Reason      *string  `json:"reason,omitempty"`
	Suggestions []Slot   `json:"suggestions,omitempty"`
}

// Slot модель альтернативного слота
type Slot struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateBookingRequest) ToUseCaseRequest() (*validateBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &validateBooking.Request{
		SalonID:    r.SalonID,
		EmployeeID: r.EmployeeID,
		ServiceID:  r.ServiceID,
		Date:       date,
		StartTime:  startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateBooking.Response) *ValidateBookingResponse {
	result := &ValidateBookingResponse{
		Valid:  resp.Valid,
		Reason: resp.Reason,
	}

	if len(resp.Suggestions) > 0 {
		result.Suggestions = make([]Slot, len(resp.Suggestions))
		for i, slot := range resp.Suggestions {
			result.Suggestions[i] = Slot{
				StartTime:       slot.StartTime.String(),
				EndTime:         slot.EndTime.String(),
				DurationMinutes: slot.DurationMinutes,
			}
		}
	}

	return result
}

package create_salon_config

import (
	"github.com/m04kA/SMC-SalonService/internal/service/config/models"
)

// CreateConfigRequest HTTP request model
type CreateConfigRequest struct {
	EmployeeID         *int64 `json:"employeeId,omitempty"` // NULL = конфигурация салона целиком
	GranularityMinutes int    `json:"granularityMinutes"`
	MinLeadTimeMinutes int    `json:"minLeadTimeMinutes"`
	AdvanceBookingDays int    `json:"advanceBookingDays"`
	MaxSuggestions     int    `json:"maxSuggestions"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateConfigRequest) ToServiceRequest(salonID, userID int64) *models.CreateConfigRequest {
	return &models.CreateConfigRequest{
		UserID:             userID,
		SalonID:            salonID,
		EmployeeID:         r.EmployeeID,
		GranularityMinutes: r.GranularityMinutes,
		MinLeadTimeMinutes: r.MinLeadTimeMinutes,
		AdvanceBookingDays: r.AdvanceBookingDays,
		MaxSuggestions:     r.MaxSuggestions,
	}
}

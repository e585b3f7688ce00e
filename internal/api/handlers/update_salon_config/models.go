package update_salon_config

import (
	"github.com/m04kA/SMC-SalonService/internal/service/config/models"
)

// UpdateConfigRequest HTTP request model
// Все поля опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	EmployeeID         *int64 `json:"employeeId,omitempty"` // NULL = конфигурация салона целиком
	GranularityMinutes *int   `json:"granularityMinutes,omitempty"`
	MinLeadTimeMinutes *int   `json:"minLeadTimeMinutes,omitempty"`
	AdvanceBookingDays *int   `json:"advanceBookingDays,omitempty"`
	MaxSuggestions     *int   `json:"maxSuggestions,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateConfigRequest) ToServiceRequest(userID int64) *models.UpdateConfigRequest {
	return &models.UpdateConfigRequest{
		UserID:             userID,
		GranularityMinutes: r.GranularityMinutes,
		MinLeadTimeMinutes: r.MinLeadTimeMinutes,
		AdvanceBookingDays: r.AdvanceBookingDays,
		MaxSuggestions:     r.MaxSuggestions,
	}
}

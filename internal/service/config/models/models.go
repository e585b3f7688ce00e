package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// CreateConfigRequest запрос на создание конфигурации слотов
type CreateConfigRequest struct {
	UserID             int64  `json:"userId"`
	SalonID            int64  `json:"salonId"`
	EmployeeID         *int64 `json:"employeeId,omitempty"` // NULL = для всех мастеров салона
	GranularityMinutes int    `json:"granularityMinutes"`   // Шаг сетки слотов: 15, 30, 60
	MinLeadTimeMinutes int    `json:"minLeadTimeMinutes"`   // Минимальный буфер до начала слота
	AdvanceBookingDays int    `json:"advanceBookingDays"`   // 0 = без ограничений
	MaxSuggestions     int    `json:"maxSuggestions"`       // Количество альтернатив при конфликте
}

// UpdateConfigRequest запрос на обновление конфигурации слотов
// Все поля опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	UserID             int64 `json:"userId"`
	GranularityMinutes *int  `json:"granularityMinutes,omitempty"`
	MinLeadTimeMinutes *int  `json:"minLeadTimeMinutes,omitempty"`
	AdvanceBookingDays *int  `json:"advanceBookingDays,omitempty"`
	MaxSuggestions     *int  `json:"maxSuggestions,omitempty"`
}

// GetConfigRequest запрос на получение конфигурации (для иерархического поиска)
type GetConfigRequest struct {
	SalonID    int64  `json:"salonId"`
	EmployeeID *int64 `json:"employeeId,omitempty"` // nil означает конфигурацию салона
}

// Response модели

// ConfigResponse ответ с данными конфигурации слотов
type ConfigResponse struct {
	ID                 int64     `json:"id"`
	SalonID            int64     `json:"salonId"`
	EmployeeID         *int64    `json:"employeeId,omitempty"`
	GranularityMinutes int       `json:"granularityMinutes"`
	MinLeadTimeMinutes int       `json:"minLeadTimeMinutes"`
	AdvanceBookingDays int       `json:"advanceBookingDays"`
	MaxSuggestions     int       `json:"maxSuggestions"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.SalonSlotsConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                 c.ID,
		SalonID:            c.SalonID,
		EmployeeID:         c.EmployeeID,
		GranularityMinutes: c.GranularityMinutes,
		MinLeadTimeMinutes: c.MinLeadTimeMinutes,
		AdvanceBookingDays: c.AdvanceBookingDays,
		MaxSuggestions:     c.MaxSuggestions,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.SalonSlotsConfig) *ConfigListResponse {
	if configs == nil {
		return &ConfigListResponse{
			Configs: []ConfigResponse{},
		}
	}

	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, len(configs)),
	}

	for i, config := range configs {
		if configResp := FromDomainConfig(config); configResp != nil {
			resp.Configs[i] = *configResp
		}
	}

	return resp
}

// ToDomainConfig конвертирует CreateConfigRequest в domain модель
func (r *CreateConfigRequest) ToDomainConfig() *domain.SalonSlotsConfig {
	return &domain.SalonSlotsConfig{
		SalonID:            r.SalonID,
		EmployeeID:         r.EmployeeID,
		GranularityMinutes: r.GranularityMinutes,
		MinLeadTimeMinutes: r.MinLeadTimeMinutes,
		AdvanceBookingDays: r.AdvanceBookingDays,
		MaxSuggestions:     r.MaxSuggestions,
	}
}

// ApplyToConfig применяет обновления к существующей конфигурации
// Обновляются только непустые (not nil) поля из request
func (r *UpdateConfigRequest) ApplyToConfig(config *domain.SalonSlotsConfig) {
	if r.GranularityMinutes != nil {
		config.GranularityMinutes = *r.GranularityMinutes
	}
	if r.MinLeadTimeMinutes != nil {
		config.MinLeadTimeMinutes = *r.MinLeadTimeMinutes
	}
	if r.AdvanceBookingDays != nil {
		config.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MaxSuggestions != nil {
		config.MaxSuggestions = *r.MaxSuggestions
	}
}

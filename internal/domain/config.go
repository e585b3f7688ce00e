package domain

import "time"

// SalonSlotsConfig represents the booking configuration for a salon
// Supports hierarchical configuration:
// 1. Employee-specific (salon_id, employee_id)
// 2. Salon-wide (salon_id, NULL)
type SalonSlotsConfig struct {
	ID                 int64
	SalonID            int64
	EmployeeID         *int64 // NULL = config for all employees
	GranularityMinutes int
	MinLeadTimeMinutes int
	AdvanceBookingDays int // 0 = unlimited
	MaxSuggestions     int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsSalonWide returns true if this is a salon-wide configuration
func (c *SalonSlotsConfig) IsSalonWide() bool {
	return c.EmployeeID == nil
}

// IsEmployeeSpecific returns true if this configuration is for a specific employee
func (c *SalonSlotsConfig) IsEmployeeSpecific() bool {
	return c.EmployeeID != nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *SalonSlotsConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// DefaultSlotsConfig возвращает конфигурацию с дефолтными значениями
// Используется, когда для салона конфигурация не задана
func DefaultSlotsConfig() *SalonSlotsConfig {
	return &SalonSlotsConfig{
		GranularityMinutes: DefaultGranularityMinutes,
		MinLeadTimeMinutes: DefaultMinLeadTimeMinutes,
		AdvanceBookingDays: DefaultAdvanceBookingDays,
		MaxSuggestions:     DefaultMaxSuggestions,
	}
}

package config

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/salonservice"
)

// ConfigRepository интерфейс репозитория конфигурации слотов
type ConfigRepository interface {
	Create(ctx context.Context, cfg *domain.SalonSlotsConfig) (*domain.SalonSlotsConfig, error)
	GetBySalonAndEmployee(ctx context.Context, salonID int64, employeeID *int64) (*domain.SalonSlotsConfig, error)
	GetConfigWithHierarchy(ctx context.Context, salonID int64, employeeID *int64) (*domain.SalonSlotsConfig, error)
	GetAllBySalon(ctx context.Context, salonID int64) ([]*domain.SalonSlotsConfig, error)
	Update(ctx context.Context, cfg *domain.SalonSlotsConfig) error
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*salonservice.Salon, error)
	GetEmployee(ctx context.Context, salonID, employeeID int64) (*salonservice.Employee, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_day_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/salonservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetByEmployeeAndDateRange получает записи мастера за период, занимающие слот
	// Один вызов на мастера на весь диапазон - список переиспользуется
	// при вычислении сетки по дням внутри одного запроса
	GetByEmployeeAndDateRange(ctx context.Context, employeeID int64, startDate, endDate time.Time) ([]*domain.Appointment, error)
}

// ConfigRepository интерфейс репозитория конфигурации слотов
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, salonID int64, employeeID *int64) (*domain.SalonSlotsConfig, error)
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*salonservice.Salon, error)
	GetService(ctx context.Context, salonID, serviceID int64) (*salonservice.Service, error)
	GetEmployee(ctx context.Context, salonID, employeeID int64) (*salonservice.Employee, error)
	GetActiveEmployees(ctx context.Context, salonID int64) ([]*salonservice.Employee, error)
}

// AvailabilityCache кэш сводок занятости с коротким TTL
// Ошибки кэша не фатальны: промах или сбой приводят к пересчёту
type AvailabilityCache interface {
	Get(ctx context.Context, key string) ([]domain.DayAvailability, error)
	Set(ctx context.Context, key string, days []domain.DayAvailability) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/salonservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// Create создает запись; при пересечении окон мастера возвращает ErrSlotConflict
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	// GetByEmployeeAndDate получает записи мастера на дату, занимающие слот
	// Внутри транзакции строки блокируются до её завершения
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) ([]*domain.Appointment, error)
}

// ConfigRepository интерфейс репозитория конфигурации слотов
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, salonID int64, employeeID *int64) (*domain.SalonSlotsConfig, error)
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*salonservice.Salon, error)
	GetEmployee(ctx context.Context, salonID, employeeID int64) (*salonservice.Employee, error)
	GetService(ctx context.Context, salonID, serviceID int64) (*salonservice.Service, error)
}

// TransactionManager интерфейс менеджера транзакций
// Проверка доступности и вставка выполняются в одной serializable-транзакции
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

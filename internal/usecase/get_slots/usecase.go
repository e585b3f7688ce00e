package get_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	configRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/config"
	salonClient "github.com/m04kA/SMC-SalonService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

// UseCase use case для получения слотов мастера на день
type UseCase struct {
	apptRepo     AppointmentRepository
	configRepo   ConfigRepository
	salonClient  SalonServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	configRepo ConfigRepository,
	salonClient SalonServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		configRepo:   configRepo,
		salonClient:  salonClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlots: salon=%d, employee=%d, service=%d, date=%s",
		req.SalonID, req.EmployeeID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон
	salon, err := uc.salonClient.GetSalon(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			uc.logger.Warn("GetSlots: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetSlots: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Получаем мастера
	employee, err := uc.salonClient.GetEmployee(ctx, req.SalonID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, salonClient.ErrEmployeeNotFound) {
			uc.logger.Warn("GetSlots: employee id=%d not found in salon id=%d", req.EmployeeID, req.SalonID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("GetSlots: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}
	if !employee.IsActive {
		uc.logger.Warn("GetSlots: employee id=%d is inactive", req.EmployeeID)
		return nil, ErrEmployeeNotFound
	}

	// 5. Получаем услугу
	service, err := uc.salonClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, salonClient.ErrServiceNotFound) {
			uc.logger.Warn("GetSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.DurationMinutes <= 0 {
		uc.logger.Warn("GetSlots: service id=%d has invalid duration %d", req.ServiceID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service duration must be positive", ErrInvalidInput)
	}

	// 6. Получаем конфигурацию слотов с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.SalonID, ptr.Ptr(req.EmployeeID))
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// Если конфигурация не найдена, используем дефолтные значения
	if config == nil {
		config = domain.DefaultSlotsConfig()
		uc.logger.Info("GetSlots: using default config for salon=%d, employee=%d", req.SalonID, req.EmployeeID)
	}

	// 7. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetSlots: date validation failed: %v", err)
		return nil, err
	}

	// 8. Определяем рабочие часы на дату: индивидуальное расписание мастера,
	// если задано, иначе расписание салона
	workingHours := resolveWorkingHours(salon, employee, req.Date)

	// 9. Получаем записи мастера на эту дату
	appointments, err := uc.apptRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, req.Date)
	if err != nil {
		uc.logger.Error("GetSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 10. Генерируем слоты
	slots, err := domain.GenerateSlots(workingHours, appointments, domain.SlotParams{
		ServiceDurationMinutes: service.DurationMinutes,
		GranularityMinutes:     config.GranularityMinutes,
		MinLeadTimeMinutes:     config.MinLeadTimeMinutes,
	}, req.Date, now)
	if err != nil {
		uc.logger.Error("GetSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetSlots: generated %d slots for salon=%d, employee=%d, service=%d, date=%s",
		len(slots), req.SalonID, req.EmployeeID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       req.Date,
		SalonID:    req.SalonID,
		EmployeeID: req.EmployeeID,
		ServiceID:  req.ServiceID,
		Slots:      slots,
	}, nil
}

// resolveWorkingHours возвращает расписание на дату: индивидуальное расписание
// мастера имеет приоритет над расписанием салона
func resolveWorkingHours(salon *salonClient.Salon, employee *salonClient.Employee, date time.Time) domain.DaySchedule {
	if employee != nil && employee.WorkingHours != nil {
		return employee.WorkingHours.ToDomain().HoursFor(date)
	}
	return salon.WorkingHours.ToDomain().HoursFor(date)
}

package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	apptRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	configRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/config"
	salonClient "github.com/m04kA/SMC-SalonService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SalonService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// UseCase use case создания записи на услугу
//
// Проверка доступности и вставка выполняются в одной serializable-транзакции:
// чтение записей мастера блокирует строки до коммита, а exclusion constraint
// в таблице закрывает гонку даже при конкурентной вставке вне этого сервиса
type UseCase struct {
	apptRepo     AppointmentRepository
	configRepo   ConfigRepository
	salonClient  SalonServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepository AppointmentRepository,
	configRepository ConfigRepository,
	salonClient SalonServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepository,
		configRepo:   configRepository,
		salonClient:  salonClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: customer=%d, salon=%d, employee=%d, service=%d, date=%s, start=%s",
		req.CustomerID, req.SalonID, req.EmployeeID, req.ServiceID,
		req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон
	salon, err := uc.salonClient.GetSalon(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			uc.logger.Warn("CreateAppointment: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Получаем мастера
	employee, err := uc.salonClient.GetEmployee(ctx, req.SalonID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, salonClient.ErrEmployeeNotFound) {
			uc.logger.Warn("CreateAppointment: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}
	if !employee.IsActive {
		uc.logger.Warn("CreateAppointment: employee id=%d is inactive", req.EmployeeID)
		return nil, ErrEmployeeNotFound
	}

	// 5. Получаем услугу
	service, err := uc.salonClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, salonClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}
	if service.DurationMinutes <= 0 {
		uc.logger.Warn("CreateAppointment: service id=%d has invalid duration %d", req.ServiceID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service duration must be positive", ErrInvalidInput)
	}

	// 6. Получаем конфигурацию слотов с учетом иерархии
	employeeID := req.EmployeeID
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.SalonID, &employeeID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("CreateAppointment: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if config == nil {
		config = domain.DefaultSlotsConfig()
	}

	// 7. Проверки, не зависящие от состояния хранилища - до транзакции
	if domain.IsDateInPast(req.Date, now) {
		uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrTooLateToBook
	}

	day := resolveWorkingHours(salon, employee, req.Date)
	if !day.IsWorkable() {
		uc.logger.Warn("CreateAppointment: salon id=%d is closed on %s", req.SalonID, req.Date.Format(domain.DateFormat))
		return nil, ErrSalonClosed
	}

	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil || req.StartTime.IsBefore(*day.OpenTime) || endTime.IsAfter(*day.CloseTime) {
		uc.logger.Warn("CreateAppointment: window %s+%dm is outside working hours %s-%s",
			req.StartTime, service.DurationMinutes, *day.OpenTime, *day.CloseTime)
		return nil, ErrOutsideWorkingHours
	}

	if domain.IsSameDay(req.Date, now) {
		currentTime := types.NewTimeString(now)
		minAllowedStart, addErr := currentTime.AddMinutes(config.MinLeadTimeMinutes)
		if addErr != nil || !req.StartTime.IsAfter(minAllowedStart) {
			uc.logger.Warn("CreateAppointment: start %s does not satisfy lead time buffer", req.StartTime)
			return nil, ErrTooLateToBook
		}
	}

	// 8. Проверяем доступность и создаем запись атомарно
	appointment := &domain.Appointment{
		CustomerID:      req.CustomerID,
		SalonID:         req.SalonID,
		EmployeeID:      req.EmployeeID,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: service.DurationMinutes,
		Status:          domain.StatusConfirmed,
		ServiceName:     service.Name,
		Notes:           req.Notes,
	}
	if service.Price != nil {
		appointment.ServicePrice = *service.Price
	}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Чтение с блокировкой строк мастера на дату
		// txErr оборачивается через %w: конфликт сериализации на чтении
		// должен дойти до менеджера транзакций для повтора
		appointments, txErr := uc.apptRepo.GetByEmployeeAndDate(txCtx, req.EmployeeID, req.Date)
		if txErr != nil {
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, txErr)
		}

		if domain.CountOverlapping(req.StartTime, service.DurationMinutes, appointments) > 0 {
			return uc.conflictError(day, appointments, service.DurationMinutes, config, req, now)
		}

		created, txErr := uc.apptRepo.Create(txCtx, appointment)
		if txErr != nil {
			// Гонка проиграна на constraint - проверка выше прошла по данным,
			// устаревшим к моменту вставки
			if errors.Is(txErr, apptRepo.ErrSlotConflict) {
				return ErrConflictOnCommit
			}
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, txErr)
		}

		appointment = created
		return nil
	})

	if err != nil {
		var conflictErr *ConflictError
		switch {
		case errors.As(err, &conflictErr):
			uc.logger.Warn("CreateAppointment: window %s+%dm conflicts with existing appointment",
				req.StartTime, service.DurationMinutes)
			return nil, err
		case errors.Is(err, ErrConflictOnCommit):
			uc.logger.Warn("CreateAppointment: lost insert race for employee=%d, date=%s, start=%s",
				req.EmployeeID, req.Date.Format(domain.DateFormat), req.StartTime)
			return nil, ErrConflictOnCommit
		case errors.Is(err, txmanager.ErrSerializationFailure), errors.Is(err, simpletxmanager.ErrSerializationFailure):
			// Повторы исчерпаны: для клиента это тот же конфликт за слот,
			// что и гонка на constraint - обновить календарь и повторить
			uc.logger.Warn("CreateAppointment: serialization retries exhausted for employee=%d, date=%s, start=%s",
				req.EmployeeID, req.Date.Format(domain.DateFormat), req.StartTime)
			return nil, ErrConflictOnCommit
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, err
		default:
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d for customer=%d", appointment.ID, req.CustomerID)

	return &Response{Appointment: appointment}, nil
}

// conflictError формирует ошибку конфликта с альтернативами того же дня
func (uc *UseCase) conflictError(
	day domain.DaySchedule,
	appointments []*domain.Appointment,
	durationMinutes int,
	config *domain.SalonSlotsConfig,
	req *Request,
	now time.Time,
) error {
	params := domain.SlotParams{
		ServiceDurationMinutes: durationMinutes,
		GranularityMinutes:     config.GranularityMinutes,
		MinLeadTimeMinutes:     config.MinLeadTimeMinutes,
	}

	slots, err := domain.GenerateSlots(day, appointments, params, req.Date, now)
	if err != nil {
		uc.logger.Warn("CreateAppointment: failed to generate suggestions: %v", err)
		slots = nil
	}

	return &ConflictError{
		Suggestions: domain.NearestAvailableSlots(slots, req.StartTime, config.MaxSuggestions),
	}
}

// resolveWorkingHours возвращает расписание дня: персональный график мастера
// приоритетнее графика салона
func resolveWorkingHours(salon *salonClient.Salon, employee *salonClient.Employee, date time.Time) domain.DaySchedule {
	if employee.WorkingHours != nil {
		return employee.WorkingHours.ToDomain().HoursFor(date)
	}
	return salon.WorkingHours.ToDomain().HoursFor(date)
}

package validate_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	configRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/config"
	salonClient "github.com/m04kA/SMC-SalonService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// UseCase use case предварительной проверки бронирования
//
// Повторяет проверки создания записи, но без транзакции и без записи в
// хранилище: положительный результат не резервирует окно, гонку разрешает
// только атомарная вставка при создании
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

// Execute выполняет проверку бронирования
//
// Бизнес-исходы (занято, вне рабочих часов, слишком рано) возвращаются
// в Response, а не ошибками - ошибки означают проблемы с входными данными
// или внешними системами
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateBooking: salon=%d, employee=%d, service=%d, date=%s, start=%s",
		req.SalonID, req.EmployeeID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон
	salon, err := uc.salonClient.GetSalon(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			uc.logger.Warn("ValidateBooking: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("ValidateBooking: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Получаем мастера
	employee, err := uc.salonClient.GetEmployee(ctx, req.SalonID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, salonClient.ErrEmployeeNotFound) {
			uc.logger.Warn("ValidateBooking: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("ValidateBooking: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}
	if !employee.IsActive {
		uc.logger.Warn("ValidateBooking: employee id=%d is inactive", req.EmployeeID)
		return nil, ErrEmployeeNotFound
	}

	// 5. Получаем услугу
	service, err := uc.salonClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, salonClient.ErrServiceNotFound) {
			uc.logger.Warn("ValidateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ValidateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.DurationMinutes <= 0 {
		uc.logger.Warn("ValidateBooking: service id=%d has invalid duration %d", req.ServiceID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service duration must be positive", ErrInvalidInput)
	}

	// 6. Получаем конфигурацию слотов с учетом иерархии
	employeeID := req.EmployeeID
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.SalonID, &employeeID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("ValidateBooking: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if config == nil {
		config = domain.DefaultSlotsConfig()
	}

	// 7. Дата в прошлом - окно уже недостижимо
	if domain.IsDateInPast(req.Date, now) {
		uc.logger.Info("ValidateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return invalidResponse(ReasonTooSoon), nil
	}

	// 8. Проверяем рабочие часы: график мастера приоритетнее графика салона
	// Отсутствие графика на день трактуется как закрытый день
	day := resolveWorkingHours(salon, employee, req.Date)
	if !day.IsWorkable() {
		uc.logger.Info("ValidateBooking: day %s is not workable", req.Date.Format(domain.DateFormat))
		return invalidResponse(ReasonOutsideHours), nil
	}

	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil || req.StartTime.IsBefore(*day.OpenTime) || endTime.IsAfter(*day.CloseTime) {
		uc.logger.Info("ValidateBooking: window %s+%dm is outside working hours %s-%s",
			req.StartTime, service.DurationMinutes, *day.OpenTime, *day.CloseTime)
		return invalidResponse(ReasonOutsideHours), nil
	}

	// 9. Проверяем минимальный буфер до начала (только для сегодняшней даты)
	// Граница включительно: начало ровно в now+buffer бронировать нельзя
	if domain.IsSameDay(req.Date, now) {
		currentTime := types.NewTimeString(now)
		minAllowedStart, addErr := currentTime.AddMinutes(config.MinLeadTimeMinutes)
		if addErr != nil || !req.StartTime.IsAfter(minAllowedStart) {
			uc.logger.Info("ValidateBooking: start %s does not satisfy lead time buffer", req.StartTime)
			return invalidResponse(ReasonTooSoon), nil
		}
	}

	// 10. Проверяем пересечение с существующими записями
	appointments, err := uc.apptRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, req.Date)
	if err != nil {
		uc.logger.Error("ValidateBooking: failed to get appointments for employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	if domain.CountOverlapping(req.StartTime, service.DurationMinutes, appointments) > 0 {
		uc.logger.Info("ValidateBooking: window %s+%dm conflicts with existing appointment",
			req.StartTime, service.DurationMinutes)
		return uc.conflictResponse(day, appointments, service.DurationMinutes, config, req, now), nil
	}

	return &Response{Valid: true}, nil
}

// conflictResponse формирует отказ с альтернативами того же дня
func (uc *UseCase) conflictResponse(
	day domain.DaySchedule,
	appointments []*domain.Appointment,
	durationMinutes int,
	config *domain.SalonSlotsConfig,
	req *Request,
	now time.Time,
) *Response {
	params := domain.SlotParams{
		ServiceDurationMinutes: durationMinutes,
		GranularityMinutes:     config.GranularityMinutes,
		MinLeadTimeMinutes:     config.MinLeadTimeMinutes,
	}

	slots, err := domain.GenerateSlots(day, appointments, params, req.Date, now)
	if err != nil {
		uc.logger.Warn("ValidateBooking: failed to generate suggestions: %v", err)
		slots = nil
	}

	resp := invalidResponse(ReasonDoubleBooked)
	resp.Suggestions = domain.NearestAvailableSlots(slots, req.StartTime, config.MaxSuggestions)
	return resp
}

func invalidResponse(reason string) *Response {
	return &Response{
		Valid:  false,
		Reason: &reason,
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

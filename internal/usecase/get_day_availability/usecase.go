package get_day_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/cache"
	configRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/config"
	salonClient "github.com/m04kA/SMC-SalonService/internal/integrations/salonservice"
)

// UseCase use case для получения сводки занятости по дням
//
// Работает в двух режимах:
// - конкретный мастер: сводка строится по его календарю;
// - "любой мастер" (EmployeeID = nil): сводки мастеров объединяются по дням,
//   день доступен, если хотя бы у одного мастера есть свободный слот
type UseCase struct {
	apptRepo     AppointmentRepository
	configRepo   ConfigRepository
	salonClient  SalonServiceClient
	cache        AvailabilityCache // опционально, nil = без кэша
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// cache может быть nil - тогда сводка всегда пересчитывается
func NewUseCase(
	apptRepo AppointmentRepository,
	configRepo ConfigRepository,
	salonClient SalonServiceClient,
	availabilityCache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		configRepo:   configRepo,
		salonClient:  salonClient,
		cache:        availabilityCache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения сводки занятости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDayAvailability: salon=%d, employee=%v, service=%d, range=%s..%s",
		req.SalonID, req.EmployeeID, req.ServiceID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDayAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем кэш (короткий TTL ограничивает staleness)
	cacheKey := cache.AvailabilityKey(req.SalonID, req.EmployeeID, req.ServiceID, req.StartDate, req.EndDate)
	if uc.cache != nil {
		if days, err := uc.cache.Get(ctx, cacheKey); err == nil {
			uc.logger.Info("GetDayAvailability: cache hit for %s", cacheKey)
			return uc.buildResponse(req, days), nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			// Сбой кэша не фатален - пересчитываем
			uc.logger.Warn("GetDayAvailability: cache get failed: %v", err)
		}
	}

	// 3. Получаем текущее время
	now := uc.timeProvider.Now()

	// 4. Получаем салон
	salon, err := uc.salonClient.GetSalon(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			uc.logger.Warn("GetDayAvailability: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetDayAvailability: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 5. Получаем услугу
	service, err := uc.salonClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, salonClient.ErrServiceNotFound) {
			uc.logger.Warn("GetDayAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetDayAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.DurationMinutes <= 0 {
		uc.logger.Warn("GetDayAvailability: service id=%d has invalid duration %d", req.ServiceID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service duration must be positive", ErrInvalidInput)
	}

	// 6. Получаем конфигурацию слотов с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.SalonID, req.EmployeeID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetDayAvailability: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if config == nil {
		config = domain.DefaultSlotsConfig()
	}

	params := domain.SlotParams{
		ServiceDurationMinutes: service.DurationMinutes,
		GranularityMinutes:     config.GranularityMinutes,
		MinLeadTimeMinutes:     config.MinLeadTimeMinutes,
	}

	// 7. Определяем список мастеров для агрегации
	employees, err := uc.resolveEmployees(ctx, req)
	if err != nil {
		return nil, err
	}

	dates := enumerateDates(req.StartDate, req.EndDate)

	// 8. Считаем сводку
	var days []domain.DayAvailability
	if len(employees) == 0 {
		// Салон без учёта мастеров: занятость выводится напрямую из
		// расписания салона (общий пул слотов), а не "всё недоступно"
		uc.logger.Info("GetDayAvailability: salon id=%d has no staff records, using salon-wide pool", req.SalonID)
		days = uc.summarizeSchedule(salon.WorkingHours.ToDomain(), nil, dates, params, config, now)
	} else {
		days, err = uc.summarizeEmployees(ctx, salon, employees, dates, params, config, now, req)
		if err != nil {
			return nil, err
		}
	}

	// 9. Сохраняем в кэш (best effort)
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, cacheKey, days); err != nil {
			uc.logger.Warn("GetDayAvailability: cache set failed: %v", err)
		}
	}

	uc.logger.Info("GetDayAvailability: computed %d days for salon=%d, service=%d",
		len(days), req.SalonID, req.ServiceID)

	return uc.buildResponse(req, days), nil
}

// resolveEmployees возвращает мастеров, по которым строится сводка
// Пустой список означает fallback на расписание салона
func (uc *UseCase) resolveEmployees(ctx context.Context, req *Request) ([]*salonClient.Employee, error) {
	if req.EmployeeID != nil {
		employee, err := uc.salonClient.GetEmployee(ctx, req.SalonID, *req.EmployeeID)
		if err != nil {
			if errors.Is(err, salonClient.ErrEmployeeNotFound) {
				uc.logger.Warn("GetDayAvailability: employee id=%d not found", *req.EmployeeID)
				return nil, ErrEmployeeNotFound
			}
			uc.logger.Error("GetDayAvailability: failed to get employee id=%d: %v", *req.EmployeeID, err)
			return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
		}
		if !employee.IsActive {
			uc.logger.Warn("GetDayAvailability: employee id=%d is inactive", *req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		return []*salonClient.Employee{employee}, nil
	}

	employees, err := uc.salonClient.GetActiveEmployees(ctx, req.SalonID)
	if err != nil {
		uc.logger.Error("GetDayAvailability: failed to get employees for salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get employees: %v", ErrInternal, err)
	}

	// Ограничиваем фан-аут запросов к хранилищу
	if len(employees) > domain.MaxEmployeesPerAggregation {
		employees = employees[:domain.MaxEmployeesPerAggregation]
	}

	return employees, nil
}

// summarizeEmployees строит сводку по дням, объединяя календари мастеров
//
// Объединение по дню: день доступен, если хотя бы у одного мастера есть
// свободный слот; availableSlots - МАКСИМУМ по мастерам, а не сумма
// (слоты разных мастеров не складываются - бронируется один мастер)
func (uc *UseCase) summarizeEmployees(
	ctx context.Context,
	salon *salonClient.Salon,
	employees []*salonClient.Employee,
	dates []time.Time,
	params domain.SlotParams,
	config *domain.SalonSlotsConfig,
	now time.Time,
	req *Request,
) ([]domain.DayAvailability, error) {
	merged := make([]domain.DayAvailability, len(dates))
	for i, date := range dates {
		merged[i] = domain.DayAvailability{Date: date, Status: domain.DayStatusUnavailable}
	}

	salonWeek := salon.WorkingHours.ToDomain()

	for _, employee := range employees {
		week := salonWeek
		if employee.WorkingHours != nil {
			week = employee.WorkingHours.ToDomain()
		}

		// Один запрос на мастера на весь диапазон; список переиспользуется
		// для всех дней внутри этого вызова
		appointments, err := uc.apptRepo.GetByEmployeeAndDateRange(ctx, employee.ID, req.StartDate, req.EndDate)
		if err != nil {
			uc.logger.Error("GetDayAvailability: failed to get appointments for employee id=%d: %v", employee.ID, err)
			return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		byDate := bucketByDate(appointments)

		days := uc.summarizeSchedule(week, byDate, dates, params, config, now)
		for i, day := range days {
			if day.TotalSlots > merged[i].TotalSlots {
				merged[i].TotalSlots = day.TotalSlots
			}
			if day.AvailableSlots > merged[i].AvailableSlots {
				merged[i].AvailableSlots = day.AvailableSlots
			}
			// Статус - лучший из статусов мастеров: выводить его из
			// объединённых максимумов нельзя, total и available могут
			// прийти от разных мастеров
			merged[i].Status = domain.BetterDayStatus(merged[i].Status, day.Status)
		}
	}

	return merged, nil
}

// summarizeSchedule строит сводку по дням для одного недельного расписания
// byDate может быть nil (нет записей)
func (uc *UseCase) summarizeSchedule(
	week domain.WeekSchedule,
	byDate map[string][]*domain.Appointment,
	dates []time.Time,
	params domain.SlotParams,
	config *domain.SalonSlotsConfig,
	now time.Time,
) []domain.DayAvailability {
	days := make([]domain.DayAvailability, 0, len(dates))

	var maxDate time.Time
	if config.HasAdvanceBookingLimit() {
		maxDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
			AddDate(0, 0, config.AdvanceBookingDays)
	}

	for _, date := range dates {
		// Дни за горизонтом бронирования показываются недоступными
		if config.HasAdvanceBookingLimit() && date.After(maxDate) {
			days = append(days, domain.DayAvailability{Date: date, Status: domain.DayStatusUnavailable})
			continue
		}

		slots, err := domain.GenerateSlots(week.HoursFor(date), byDate[date.Format(domain.DateFormat)], params, date, now)
		if err != nil {
			// Некорректное расписание дня эквивалентно закрытому дню
			uc.logger.Warn("GetDayAvailability: slot generation failed for %s: %v", date.Format(domain.DateFormat), err)
			days = append(days, domain.DayAvailability{Date: date, Status: domain.DayStatusUnavailable})
			continue
		}

		days = append(days, domain.SummarizeSlots(date, slots))
	}

	return days
}

func (uc *UseCase) buildResponse(req *Request, days []domain.DayAvailability) *Response {
	return &Response{
		SalonID:    req.SalonID,
		EmployeeID: req.EmployeeID,
		ServiceID:  req.ServiceID,
		Days:       days,
	}
}

// bucketByDate раскладывает записи по датам (ключ - YYYY-MM-DD)
func bucketByDate(appointments []*domain.Appointment) map[string][]*domain.Appointment {
	byDate := make(map[string][]*domain.Appointment, len(appointments))
	for _, appt := range appointments {
		key := appt.Date.Format(domain.DateFormat)
		byDate[key] = append(byDate[key], appt)
	}
	return byDate
}

// enumerateDates возвращает все даты диапазона включительно
func enumerateDates(startDate, endDate time.Time) []time.Time {
	dates := make([]time.Time, 0)
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

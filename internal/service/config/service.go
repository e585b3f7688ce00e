package config

import (
	"context"
	"errors"
	"fmt"

	configRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/config"
	salonClient "github.com/m04kA/SMC-SalonService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SalonService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией слотов
type Service struct {
	configRepo  ConfigRepository
	salonClient SalonServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	salonClient SalonServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:  configRepo,
		salonClient: salonClient,
		logger:      logger,
	}
}

// Create создает новую конфигурацию слотов
// Доступно только менеджерам салона
// Проверяет существование салона и мастера (если указан)
func (s *Service) Create(ctx context.Context, req *models.CreateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Create: creating config for salon=%d, employee=%v by user=%d",
		req.SalonID, req.EmployeeID, req.UserID)

	// 1. Валидируем входные данные
	if err := s.validateConfigData(req.GranularityMinutes, req.MinLeadTimeMinutes,
		req.AdvanceBookingDays, req.MaxSuggestions); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа (только менеджер салона)
	if err := s.checkManagerAccess(ctx, req.SalonID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Если указан employeeID, проверяем его существование
	if req.EmployeeID != nil {
		if _, err := s.salonClient.GetEmployee(ctx, req.SalonID, *req.EmployeeID); err != nil {
			if errors.Is(err, salonClient.ErrEmployeeNotFound) {
				s.logger.Warn("Create: employee id=%d not found in salon=%d", *req.EmployeeID, req.SalonID)
				return nil, ErrEmployeeNotFound
			}
			s.logger.Error("Create: failed to get employee id=%d: %v", *req.EmployeeID, err)
			return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
		}
	}

	// 4. Создаем конфигурацию
	// Дубликат по (salon_id, employee_id) отсекается уникальным индексом
	createdConfig, err := s.configRepo.Create(ctx, req.ToDomainConfig())
	if err != nil {
		if errors.Is(err, configRepo.ErrDuplicateConfig) {
			s.logger.Warn("Create: config already exists for salon=%d, employee=%v", req.SalonID, req.EmployeeID)
			return nil, ErrConfigAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created config id=%d", createdConfig.ID)
	return models.FromDomainConfig(createdConfig), nil
}

// GetWithHierarchy получает конфигурацию с учетом иерархии приоритетов
// Публичный метод - используется клиентами для отображения параметров сетки
// Приоритет: мастер > салон
func (s *Service) GetWithHierarchy(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("GetWithHierarchy: fetching config for salon=%d, employee=%v", req.SalonID, req.EmployeeID)

	config, err := s.configRepo.GetConfigWithHierarchy(ctx, req.SalonID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("GetWithHierarchy: no config found for salon=%d, employee=%v", req.SalonID, req.EmployeeID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("GetWithHierarchy: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWithHierarchy - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWithHierarchy: successfully fetched config id=%d (level: %s)",
		config.ID, configLevel(config.IsEmployeeSpecific()))
	return models.FromDomainConfig(config), nil
}

// GetAllBySalon получает все конфигурации салона (общую и для мастеров)
// Доступно только менеджерам салона
func (s *Service) GetAllBySalon(ctx context.Context, salonID int64, userID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAllBySalon: fetching configs for salon=%d by user=%d", salonID, userID)

	if err := s.checkManagerAccess(ctx, salonID, userID); err != nil {
		return nil, err
	}

	configs, err := s.configRepo.GetAllBySalon(ctx, salonID)
	if err != nil {
		s.logger.Error("GetAllBySalon: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetAllBySalon - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllBySalon: successfully fetched %d configs for salon=%d", len(configs), salonID)
	return models.FromDomainConfigList(configs), nil
}

// Update обновляет конфигурацию для салона и мастера
// Доступно только менеджерам салона
// Поддерживает частичное обновление - обновляются только указанные поля
func (s *Service) Update(ctx context.Context, salonID int64, employeeID *int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config for salon=%d, employee=%v by user=%d", salonID, employeeID, req.UserID)

	// 1. Проверяем права доступа (только менеджер салона)
	if err := s.checkManagerAccess(ctx, salonID, req.UserID); err != nil {
		return nil, err
	}

	// 2. Получаем существующую конфигурацию точного уровня (без иерархии -
	// обновление конфигурации салона не должно затрагивать мастеров)
	config, err := s.configRepo.GetBySalonAndEmployee(ctx, salonID, employeeID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Update: config not found for salon=%d, employee=%v", salonID, employeeID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Update: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 3. Применяем обновления и валидируем результат
	req.ApplyToConfig(config)
	if err := s.validateConfigData(config.GranularityMinutes, config.MinLeadTimeMinutes,
		config.AdvanceBookingDays, config.MaxSuggestions); err != nil {
		s.logger.Warn("Update: validation failed for config id=%d: %v", config.ID, err)
		return nil, err
	}

	// 4. Сохраняем конфигурацию
	if err := s.configRepo.Update(ctx, config); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Update: config id=%d not found during update", config.ID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Update: repository error for config id=%d: %v", config.ID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated config id=%d", config.ID)
	return models.FromDomainConfig(config), nil
}

// Вспомогательные методы

// checkManagerAccess проверяет, что пользователь является менеджером салона
func (s *Service) checkManagerAccess(ctx context.Context, salonID int64, userID int64) error {
	salon, err := s.salonClient.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			s.logger.Warn("checkManagerAccess: salon id=%d not found", salonID)
			return ErrSalonNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get salon id=%d: %v", salonID, err)
		return fmt.Errorf("%w: checkManagerAccess - integration error: %v", ErrInternal, err)
	}

	if !salon.HasManager(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of salon=%d", userID, salonID)
		return ErrAccessDenied
	}

	return nil
}

// validateConfigData валидирует параметры конфигурации
func (s *Service) validateConfigData(granularity, minLeadTime, advanceDays, maxSuggestions int) error {
	// Проверяем granularityMinutes
	if granularity <= 0 || granularity > 240 { // максимум 4 часа
		return fmt.Errorf("%w: granularityMinutes must be between 1 and 240", ErrInvalidInput)
	}

	// Проверяем minLeadTimeMinutes
	if minLeadTime < 0 || minLeadTime > 10080 { // максимум 7 дней в минутах
		return fmt.Errorf("%w: minLeadTimeMinutes must be between 0 and 10080", ErrInvalidInput)
	}

	// Проверяем advanceBookingDays
	if advanceDays < 0 || advanceDays > 365 {
		return fmt.Errorf("%w: advanceBookingDays must be between 0 and 365", ErrInvalidInput)
	}

	// Проверяем maxSuggestions
	if maxSuggestions < 0 || maxSuggestions > 20 {
		return fmt.Errorf("%w: maxSuggestions must be between 0 and 20", ErrInvalidInput)
	}

	return nil
}

// configLevel возвращает строковое представление уровня конфигурации для логирования
func configLevel(employeeSpecific bool) string {
	if employeeSpecific {
		return "employee"
	}
	return "salon"
}

package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	configRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/config"
	"github.com/m04kA/SMC-SalonService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SalonService/internal/service/config/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type stubConfigRepo struct {
	config  *domain.SalonSlotsConfig
	configs []*domain.SalonSlotsConfig

	createErr error
	getErr    error
	updateErr error

	created     *domain.SalonSlotsConfig
	updated     *domain.SalonSlotsConfig
	hierarchyID *int64
	exactID     *int64
}

func (s *stubConfigRepo) Create(_ context.Context, cfg *domain.SalonSlotsConfig) (*domain.SalonSlotsConfig, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	created := *cfg
	created.ID = 1
	s.created = &created
	return &created, nil
}

func (s *stubConfigRepo) GetBySalonAndEmployee(_ context.Context, _ int64, employeeID *int64) (*domain.SalonSlotsConfig, error) {
	s.exactID = employeeID
	return s.config, s.getErr
}

func (s *stubConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, employeeID *int64) (*domain.SalonSlotsConfig, error) {
	s.hierarchyID = employeeID
	return s.config, s.getErr
}

func (s *stubConfigRepo) GetAllBySalon(_ context.Context, _ int64) ([]*domain.SalonSlotsConfig, error) {
	return s.configs, s.getErr
}

func (s *stubConfigRepo) Update(_ context.Context, cfg *domain.SalonSlotsConfig) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = cfg
	return nil
}

type stubSalonClient struct {
	salon    *salonservice.Salon
	employee *salonservice.Employee

	salonErr    error
	employeeErr error
}

func (s *stubSalonClient) GetSalon(_ context.Context, _ int64) (*salonservice.Salon, error) {
	return s.salon, s.salonErr
}

func (s *stubSalonClient) GetEmployee(_ context.Context, _, _ int64) (*salonservice.Employee, error) {
	return s.employee, s.employeeErr
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const managerID = int64(200)

func managedSalon() *salonservice.Salon {
	return &salonservice.Salon{ID: 1, ManagerIDs: []int64{managerID}}
}

func salonConfig() *domain.SalonSlotsConfig {
	return &domain.SalonSlotsConfig{
		ID:                 1,
		SalonID:            1,
		GranularityMinutes: 30,
		MinLeadTimeMinutes: 15,
		AdvanceBookingDays: 14,
		MaxSuggestions:     3,
	}
}

func createRequest() *models.CreateConfigRequest {
	return &models.CreateConfigRequest{
		UserID:             managerID,
		SalonID:            1,
		GranularityMinutes: 30,
		MinLeadTimeMinutes: 15,
		AdvanceBookingDays: 14,
		MaxSuggestions:     3,
	}
}

func TestCreate_SalonWide(t *testing.T) {
	repo := &stubConfigRepo{}
	svc := NewService(repo, &stubSalonClient{salon: managedSalon()}, nopLogger{})

	resp, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Nil(t, resp.EmployeeID)
	require.NotNil(t, repo.created)
	assert.Equal(t, 30, repo.created.GranularityMinutes)
}

func TestCreate_EmployeeSpecificChecksEmployee(t *testing.T) {
	repo := &stubConfigRepo{}
	client := &stubSalonClient{salon: managedSalon(), employeeErr: salonservice.ErrEmployeeNotFound}
	svc := NewService(repo, client, nopLogger{})

	req := createRequest()
	req.EmployeeID = ptr.Ptr(int64(10))

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	assert.Nil(t, repo.created)
}

func TestCreate_Duplicate(t *testing.T) {
	repo := &stubConfigRepo{createErr: configRepo.ErrDuplicateConfig}
	svc := NewService(repo, &stubSalonClient{salon: managedSalon()}, nopLogger{})

	_, err := svc.Create(context.Background(), createRequest())
	assert.ErrorIs(t, err, ErrConfigAlreadyExists)
}

func TestCreate_NotManager(t *testing.T) {
	repo := &stubConfigRepo{}
	svc := NewService(repo, &stubSalonClient{salon: managedSalon()}, nopLogger{})

	req := createRequest()
	req.UserID = 999

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_InvalidData(t *testing.T) {
	repo := &stubConfigRepo{}
	svc := NewService(repo, &stubSalonClient{salon: managedSalon()}, nopLogger{})

	req := createRequest()
	req.GranularityMinutes = 0
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = createRequest()
	req.AdvanceBookingDays = 400
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetWithHierarchy_Public(t *testing.T) {
	repo := &stubConfigRepo{config: salonConfig()}
	// Доступно без прав менеджера - клиент салона не указан в ManagerIDs
	svc := NewService(repo, &stubSalonClient{salon: managedSalon()}, nopLogger{})

	employeeID := ptr.Ptr(int64(10))
	resp, err := svc.GetWithHierarchy(context.Background(), &models.GetConfigRequest{
		SalonID: 1, EmployeeID: employeeID,
	})
	require.NoError(t, err)
	assert.Equal(t, 30, resp.GranularityMinutes)
	assert.Equal(t, employeeID, repo.hierarchyID)
}

func TestGetWithHierarchy_NotFound(t *testing.T) {
	repo := &stubConfigRepo{getErr: configRepo.ErrConfigNotFound}
	svc := NewService(repo, &stubSalonClient{salon: managedSalon()}, nopLogger{})

	_, err := svc.GetWithHierarchy(context.Background(), &models.GetConfigRequest{SalonID: 1})
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestGetAllBySalon_ManagerOnly(t *testing.T) {
	repo := &stubConfigRepo{configs: []*domain.SalonSlotsConfig{salonConfig()}}
	svc := NewService(repo, &stubSalonClient{salon: managedSalon()}, nopLogger{})

	resp, err := svc.GetAllBySalon(context.Background(), 1, managerID)
	require.NoError(t, err)
	assert.Len(t, resp.Configs, 1)

	_, err = svc.GetAllBySalon(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_PartialUpdate(t *testing.T) {
	repo := &stubConfigRepo{config: salonConfig()}
	svc := NewService(repo, &stubSalonClient{salon: managedSalon()}, nopLogger{})

	resp, err := svc.Update(context.Background(), 1, nil, &models.UpdateConfigRequest{
		UserID:             managerID,
		GranularityMinutes: ptr.Ptr(60),
	})
	require.NoError(t, err)

	// Обновлённое поле изменилось, остальные сохранились
	assert.Equal(t, 60, resp.GranularityMinutes)
	assert.Equal(t, 15, resp.MinLeadTimeMinutes)
	assert.Equal(t, 14, resp.AdvanceBookingDays)
	require.NotNil(t, repo.updated)
	assert.Equal(t, 60, repo.updated.GranularityMinutes)

	// Поиск по точному уровню (nil = конфигурация салона), а не по иерархии
	assert.Nil(t, repo.exactID)
	assert.Nil(t, repo.hierarchyID)
}

func TestUpdate_ValidatesResult(t *testing.T) {
	repo := &stubConfigRepo{config: salonConfig()}
	svc := NewService(repo, &stubSalonClient{salon: managedSalon()}, nopLogger{})

	_, err := svc.Update(context.Background(), 1, nil, &models.UpdateConfigRequest{
		UserID:             managerID,
		GranularityMinutes: ptr.Ptr(500),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, repo.updated)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &stubConfigRepo{getErr: configRepo.ErrConfigNotFound}
	svc := NewService(repo, &stubSalonClient{salon: managedSalon()}, nopLogger{})

	_, err := svc.Update(context.Background(), 1, ptr.Ptr(int64(10)), &models.UpdateConfigRequest{
		UserID: managerID,
	})
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

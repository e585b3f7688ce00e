package validate_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	configRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/config"
	"github.com/m04kA/SMC-SalonService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

type stubApptRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (s *stubApptRepo) GetByEmployeeAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Appointment, error) {
	return s.appointments, s.err
}

type stubConfigRepo struct {
	config *domain.SalonSlotsConfig
	err    error
}

func (s *stubConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.SalonSlotsConfig, error) {
	return s.config, s.err
}

type stubSalonClient struct {
	salon    *salonservice.Salon
	employee *salonservice.Employee
	service  *salonservice.Service

	salonErr    error
	employeeErr error
	serviceErr  error
}

func (s *stubSalonClient) GetSalon(_ context.Context, _ int64) (*salonservice.Salon, error) {
	return s.salon, s.salonErr
}

func (s *stubSalonClient) GetEmployee(_ context.Context, _, _ int64) (*salonservice.Employee, error) {
	return s.employee, s.employeeErr
}

func (s *stubSalonClient) GetService(_ context.Context, _, _ int64) (*salonservice.Service, error) {
	return s.service, s.serviceErr
}

type stubTimeProvider struct {
	now time.Time
}

func (s *stubTimeProvider) Now() time.Time {
	return s.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func timeStr(t *testing.T, s string) *types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return &v
}

func testSalon(t *testing.T) *salonservice.Salon {
	t.Helper()
	day := salonservice.DaySchedule{IsOpen: true, OpenTime: timeStr(t, "09:00"), CloseTime: timeStr(t, "18:00")}
	return &salonservice.Salon{
		ID: 1,
		WorkingHours: salonservice.WeekSchedule{
			Monday: day, Tuesday: day, Wednesday: day, Thursday: day, Friday: day,
		},
	}
}

func testEmployee() *salonservice.Employee {
	return &salonservice.Employee{ID: 10, SalonID: 1, IsActive: true}
}

func testService() *salonservice.Service {
	return &salonservice.Service{ID: 5, SalonID: 1, DurationMinutes: 60, IsActive: true}
}

func newTestUseCase(apptRepo AppointmentRepository, client SalonServiceClient, now time.Time) *UseCase {
	uc := NewUseCase(apptRepo, &stubConfigRepo{err: configRepo.ErrConfigNotFound}, client, nopLogger{})
	uc.timeProvider = &stubTimeProvider{now: now}
	return uc
}

var (
	monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	now    = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
)

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		SalonID: 1, EmployeeID: 10, ServiceID: 5,
		Date: monday, StartTime: *timeStr(t, "11:00"),
	}
}

func TestExecute_Valid(t *testing.T) {
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), service: testService()}
	uc := newTestUseCase(&stubApptRepo{}, client, now)

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Nil(t, resp.Reason)
	assert.Empty(t, resp.Suggestions)
}

func TestExecute_DoubleBookedWithSuggestions(t *testing.T) {
	appointments := []*domain.Appointment{
		{StartTime: *timeStr(t, "11:00"), DurationMinutes: 60, Status: domain.StatusConfirmed},
	}
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), service: testService()}
	uc := newTestUseCase(&stubApptRepo{appointments: appointments}, client, now)

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.False(t, resp.Valid)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, ReasonDoubleBooked, *resp.Reason)

	// Альтернативы того же дня, отсортированы по близости к 11:00
	require.Len(t, resp.Suggestions, domain.DefaultMaxSuggestions)
	assert.Equal(t, "10:00", resp.Suggestions[0].StartTime.String())
	for _, s := range resp.Suggestions {
		assert.True(t, s.Available)
	}
}

func TestExecute_PartialOverlapIsConflict(t *testing.T) {
	// Запись 11:30-12:30 частично пересекает окно 11:00-12:00
	appointments := []*domain.Appointment{
		{StartTime: *timeStr(t, "11:30"), DurationMinutes: 60, Status: domain.StatusPending},
	}
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), service: testService()}
	uc := newTestUseCase(&stubApptRepo{appointments: appointments}, client, now)

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, ReasonDoubleBooked, *resp.Reason)
}

func TestExecute_AdjacentAppointmentIsNoConflict(t *testing.T) {
	// Запись 12:00-13:00 граничит с окном 11:00-12:00 - конфликта нет
	appointments := []*domain.Appointment{
		{StartTime: *timeStr(t, "12:00"), DurationMinutes: 60, Status: domain.StatusConfirmed},
	}
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), service: testService()}
	uc := newTestUseCase(&stubApptRepo{appointments: appointments}, client, now)

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.True(t, resp.Valid)
}

func TestExecute_CancelledAppointmentIsNoConflict(t *testing.T) {
	appointments := []*domain.Appointment{
		{StartTime: *timeStr(t, "11:00"), DurationMinutes: 60, Status: domain.StatusCancelled},
	}
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), service: testService()}
	uc := newTestUseCase(&stubApptRepo{appointments: appointments}, client, now)

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.True(t, resp.Valid)
}

func TestExecute_ClosedDay(t *testing.T) {
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), service: testService()}
	uc := newTestUseCase(&stubApptRepo{}, client, now)

	req := validRequest(t)
	req.Date = sunday

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, ReasonOutsideHours, *resp.Reason)
	assert.Empty(t, resp.Suggestions)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), service: testService()}
	uc := newTestUseCase(&stubApptRepo{}, client, now)

	// Начало до открытия
	req := validRequest(t)
	req.StartTime = *timeStr(t, "08:00")
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, ReasonOutsideHours, *resp.Reason)

	// Услуга не помещается до закрытия: 17:30 + 60 минут > 18:00
	req.StartTime = *timeStr(t, "17:30")
	resp, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, ReasonOutsideHours, *resp.Reason)

	// Окно ровно до закрытия - допустимо
	req.StartTime = *timeStr(t, "17:00")
	resp, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Valid)
}

func TestExecute_PastDate(t *testing.T) {
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), service: testService()}
	uc := newTestUseCase(&stubApptRepo{}, client, time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, ReasonTooSoon, *resp.Reason)
}

func TestExecute_SameDayLeadTimeBuffer(t *testing.T) {
	// Сейчас понедельник 10:50: минимальное начало 11:05
	sameDayNow := time.Date(2026, 9, 7, 10, 50, 0, 0, time.UTC)
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), service: testService()}
	uc := newTestUseCase(&stubApptRepo{}, client, sameDayNow)

	// 11:00 в пределах буфера
	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, ReasonTooSoon, *resp.Reason)

	// 11:30 за пределами буфера
	req := validRequest(t)
	req.StartTime = *timeStr(t, "11:30")
	resp, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Valid)
}

func TestExecute_NotFoundErrors(t *testing.T) {
	uc := newTestUseCase(&stubApptRepo{}, &stubSalonClient{salonErr: salonservice.ErrSalonNotFound}, now)
	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSalonNotFound)

	uc = newTestUseCase(&stubApptRepo{}, &stubSalonClient{salon: testSalon(t), employeeErr: salonservice.ErrEmployeeNotFound}, now)
	_, err = uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrEmployeeNotFound)

	uc = newTestUseCase(&stubApptRepo{}, &stubSalonClient{salon: testSalon(t), employee: testEmployee(), serviceErr: salonservice.ErrServiceNotFound}, now)
	_, err = uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), service: testService()}
	uc := newTestUseCase(&stubApptRepo{}, client, now)

	req := validRequest(t)
	req.EmployeeID = 0
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest(t)
	req.StartTime = types.TimeString("25:99")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

package get_slots

import (
	"context"
	"errors"
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

func openDay(t *testing.T, open, close string) salonservice.DaySchedule {
	t.Helper()
	return salonservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  timeStr(t, open),
		CloseTime: timeStr(t, close),
	}
}

// testWeek салон работает пн-пт 09:00-18:00
func testWeek(t *testing.T) salonservice.WeekSchedule {
	t.Helper()
	day := openDay(t, "09:00", "18:00")
	return salonservice.WeekSchedule{
		Monday:    day,
		Tuesday:   day,
		Wednesday: day,
		Thursday:  day,
		Friday:    day,
		Saturday:  salonservice.DaySchedule{IsOpen: false},
		Sunday:    salonservice.DaySchedule{IsOpen: false},
	}
}

func testSalon(t *testing.T) *salonservice.Salon {
	t.Helper()
	return &salonservice.Salon{
		ID:           1,
		Name:         "Barbershop",
		ManagerIDs:   []int64{100},
		WorkingHours: testWeek(t),
	}
}

func testEmployee() *salonservice.Employee {
	return &salonservice.Employee{ID: 10, SalonID: 1, Name: "Анна", IsActive: true}
}

func testService() *salonservice.Service {
	return &salonservice.Service{ID: 5, SalonID: 1, Name: "Стрижка", DurationMinutes: 30, IsActive: true}
}

func newTestUseCase(apptRepo AppointmentRepository, cfgRepo ConfigRepository, client SalonServiceClient, now time.Time) *UseCase {
	uc := NewUseCase(apptRepo, cfgRepo, client, nopLogger{})
	uc.timeProvider = &stubTimeProvider{now: now}
	return uc
}

var (
	monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC) // понедельник
	sunday = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
)

func TestExecute_Success(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), service: testService()}
	uc := newTestUseCase(&stubApptRepo{}, &stubConfigRepo{err: configRepo.ErrConfigNotFound}, client, now)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, EmployeeID: 10, ServiceID: 5, Date: monday,
	})
	require.NoError(t, err)

	// 09:00-18:00, шаг 30 минут = 18 слотов, все доступны
	require.Len(t, resp.Slots, 18)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
	}
	assert.Equal(t, monday, resp.Date)
	assert.Equal(t, int64(10), resp.EmployeeID)
}

func TestExecute_BookedSlotsMarked(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	appointments := []*domain.Appointment{
		{StartTime: *timeStr(t, "10:00"), DurationMinutes: 30, Status: domain.StatusConfirmed},
	}
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), service: testService()}
	uc := newTestUseCase(&stubApptRepo{appointments: appointments}, &stubConfigRepo{err: configRepo.ErrConfigNotFound}, client, now)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, EmployeeID: 10, ServiceID: 5, Date: monday,
	})
	require.NoError(t, err)

	booked := 0
	for _, slot := range resp.Slots {
		if !slot.Available {
			booked++
			assert.Equal(t, "10:00", slot.StartTime.String())
			require.NotNil(t, slot.Reason)
			assert.Equal(t, domain.ReasonAlreadyBooked, *slot.Reason)
		}
	}
	assert.Equal(t, 1, booked)
}

func TestExecute_ClosedDay(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), service: testService()}
	uc := newTestUseCase(&stubApptRepo{}, &stubConfigRepo{err: configRepo.ErrConfigNotFound}, client, now)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, EmployeeID: 10, ServiceID: 5, Date: sunday,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_EmployeeScheduleOverridesSalon(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	// Мастер работает только 12:00-15:00 в понедельник
	employeeWeek := salonservice.WeekSchedule{
		Monday: openDay(t, "12:00", "15:00"),
	}
	employee := testEmployee()
	employee.WorkingHours = &employeeWeek

	client := &stubSalonClient{salon: testSalon(t), employee: employee, service: testService()}
	uc := newTestUseCase(&stubApptRepo{}, &stubConfigRepo{err: configRepo.ErrConfigNotFound}, client, now)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, EmployeeID: 10, ServiceID: 5, Date: monday,
	})
	require.NoError(t, err)

	// 12:00-15:00 с шагом 30 минут = 6 слотов
	require.Len(t, resp.Slots, 6)
	assert.Equal(t, "12:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "14:30", resp.Slots[5].StartTime.String())
}

func TestExecute_CustomConfigApplied(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	config := &domain.SalonSlotsConfig{
		SalonID:            1,
		GranularityMinutes: 60,
		MinLeadTimeMinutes: 15,
		AdvanceBookingDays: 0,
		MaxSuggestions:     3,
	}
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), service: testService()}
	uc := newTestUseCase(&stubApptRepo{}, &stubConfigRepo{config: config}, client, now)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, EmployeeID: 10, ServiceID: 5, Date: monday,
	})
	require.NoError(t, err)

	// Шаг сетки 60 минут: 09:00-18:00 = 9 слотов
	require.Len(t, resp.Slots, 9)
}

func TestExecute_SalonNotFound(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	client := &stubSalonClient{salonErr: salonservice.ErrSalonNotFound}
	uc := newTestUseCase(&stubApptRepo{}, &stubConfigRepo{}, client, now)

	_, err := uc.Execute(context.Background(), &Request{
		SalonID: 999, EmployeeID: 10, ServiceID: 5, Date: monday,
	})
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestExecute_InactiveEmployee(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	employee := testEmployee()
	employee.IsActive = false

	client := &stubSalonClient{salon: testSalon(t), employee: employee, service: testService()}
	uc := newTestUseCase(&stubApptRepo{}, &stubConfigRepo{}, client, now)

	_, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, EmployeeID: 10, ServiceID: 5, Date: monday,
	})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), serviceErr: salonservice.ErrServiceNotFound}
	uc := newTestUseCase(&stubApptRepo{}, &stubConfigRepo{}, client, now)

	_, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, EmployeeID: 10, ServiceID: 999, Date: monday,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_PastDate(t *testing.T) {
	now := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), service: testService()}
	uc := newTestUseCase(&stubApptRepo{}, &stubConfigRepo{err: configRepo.ErrConfigNotFound}, client, now)

	_, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, EmployeeID: 10, ServiceID: 5, Date: monday,
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	config := &domain.SalonSlotsConfig{
		SalonID:            1,
		GranularityMinutes: 30,
		MinLeadTimeMinutes: 15,
		AdvanceBookingDays: 3,
		MaxSuggestions:     3,
	}
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), service: testService()}
	uc := newTestUseCase(&stubApptRepo{}, &stubConfigRepo{config: config}, client, now)

	_, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, EmployeeID: 10, ServiceID: 5, Date: monday, // через 6 дней
	})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_InvalidInput(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), service: testService()}
	uc := newTestUseCase(&stubApptRepo{}, &stubConfigRepo{}, client, now)

	_, err := uc.Execute(context.Background(), &Request{
		SalonID: 0, EmployeeID: 10, ServiceID: 5, Date: monday,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		SalonID: 1, EmployeeID: -1, ServiceID: 5, Date: monday,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_AppointmentRepoFailure(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	client := &stubSalonClient{salon: testSalon(t), employee: testEmployee(), service: testService()}
	uc := newTestUseCase(&stubApptRepo{err: errors.New("connection refused")}, &stubConfigRepo{err: configRepo.ErrConfigNotFound}, client, now)

	_, err := uc.Execute(context.Background(), &Request{
		SalonID: 1, EmployeeID: 10, ServiceID: 5, Date: monday,
	})
	assert.ErrorIs(t, err, ErrInternal)
}

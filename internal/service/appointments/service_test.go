package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	apptRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type stubApptRepo struct {
	appointment  *domain.Appointment
	appointments []*domain.Appointment
	getErr       error

	cancelledID    *int64
	cancelReason   string
	updatedStatus  *domain.AppointmentStatus
	receivedFilter *domain.SalonAppointmentsFilter
	receivedStatus *domain.AppointmentStatus
}

func (s *stubApptRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	return s.appointment, s.getErr
}

func (s *stubApptRepo) GetByCustomerID(_ context.Context, _ int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	s.receivedStatus = status
	return s.appointments, nil
}

func (s *stubApptRepo) GetBySalonWithFilter(_ context.Context, filter domain.SalonAppointmentsFilter) ([]*domain.Appointment, error) {
	s.receivedFilter = &filter
	return s.appointments, nil
}

func (s *stubApptRepo) UpdateStatus(_ context.Context, _ int64, status domain.AppointmentStatus) error {
	s.updatedStatus = &status
	return nil
}

func (s *stubApptRepo) Cancel(_ context.Context, id int64, reason string) error {
	s.cancelledID = &id
	s.cancelReason = reason
	return nil
}

type stubSalonClient struct {
	salon *salonservice.Salon
	err   error
}

func (s *stubSalonClient) GetSalon(_ context.Context, _ int64) (*salonservice.Salon, error) {
	return s.salon, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	customerID = int64(100)
	managerID  = int64(200)
	strangerID = int64(300)
)

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              1,
		CustomerID:      customerID,
		SalonID:         1,
		EmployeeID:      10,
		ServiceID:       5,
		Date:            time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:       "11:00",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		ServiceName:     "Стрижка",
		ServicePrice:    1500,
	}
}

func managedSalon() *salonservice.Salon {
	return &salonservice.Salon{ID: 1, ManagerIDs: []int64{managerID}}
}

func newTestService(repo *stubApptRepo, client *stubSalonClient) *Service {
	return NewService(repo, client, nopLogger{})
}

func TestGetByID_OwnerAccess(t *testing.T) {
	repo := &stubApptRepo{appointment: testAppointment()}
	svc := newTestService(repo, &stubSalonClient{salon: managedSalon()})

	resp, err := svc.GetByID(context.Background(), 1, customerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "11:00", resp.StartTime)
	assert.Equal(t, "2026-09-07", resp.Date)
}

func TestGetByID_ManagerAccess(t *testing.T) {
	repo := &stubApptRepo{appointment: testAppointment()}
	svc := newTestService(repo, &stubSalonClient{salon: managedSalon()})

	_, err := svc.GetByID(context.Background(), 1, managerID)
	require.NoError(t, err)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	repo := &stubApptRepo{appointment: testAppointment()}
	svc := newTestService(repo, &stubSalonClient{salon: managedSalon()})

	_, err := svc.GetByID(context.Background(), 1, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &stubApptRepo{getErr: apptRepo.ErrAppointmentNotFound}
	svc := newTestService(repo, &stubSalonClient{salon: managedSalon()})

	_, err := svc.GetByID(context.Background(), 999, customerID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetCustomerAppointments_StatusFilter(t *testing.T) {
	repo := &stubApptRepo{appointments: []*domain.Appointment{testAppointment()}}
	svc := newTestService(repo, &stubSalonClient{salon: managedSalon()})

	resp, err := svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		CustomerID: customerID,
		Status:     ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	require.NotNil(t, repo.receivedStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.receivedStatus)
}

func TestGetCustomerAppointments_InvalidStatus(t *testing.T) {
	repo := &stubApptRepo{}
	svc := newTestService(repo, &stubSalonClient{salon: managedSalon()})

	_, err := svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		CustomerID: customerID,
		Status:     ptr.Ptr("booked"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSalonAppointments_ManagerOnly(t *testing.T) {
	repo := &stubApptRepo{appointments: []*domain.Appointment{testAppointment()}}
	svc := newTestService(repo, &stubSalonClient{salon: managedSalon()})

	// Менеджер получает список с фильтром
	employeeID := ptr.Ptr(int64(10))
	resp, err := svc.GetSalonAppointments(context.Background(), &models.GetSalonAppointmentsRequest{
		SalonID: 1, UserID: managerID, EmployeeID: employeeID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)
	require.NotNil(t, repo.receivedFilter)
	assert.Equal(t, employeeID, repo.receivedFilter.EmployeeID)

	// Не-менеджер получает отказ
	_, err = svc.GetSalonAppointments(context.Background(), &models.GetSalonAppointmentsRequest{
		SalonID: 1, UserID: strangerID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_Owner(t *testing.T) {
	repo := &stubApptRepo{appointment: testAppointment()}
	svc := newTestService(repo, &stubSalonClient{salon: managedSalon()})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID:             customerID,
		CancellationReason: "передумал",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.cancelledID)
	assert.Equal(t, int64(1), *repo.cancelledID)
	assert.Equal(t, "передумал", repo.cancelReason)
}

func TestCancel_Manager(t *testing.T) {
	repo := &stubApptRepo{appointment: testAppointment()}
	svc := newTestService(repo, &stubSalonClient{salon: managedSalon()})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID: managerID,
	})
	require.NoError(t, err)
}

func TestCancel_StrangerDenied(t *testing.T) {
	repo := &stubApptRepo{appointment: testAppointment()}
	svc := newTestService(repo, &stubSalonClient{salon: managedSalon()})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID: strangerID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.cancelledID)
}

func TestCancel_AlreadyCompleted(t *testing.T) {
	appointment := testAppointment()
	appointment.Status = domain.StatusCompleted
	repo := &stubApptRepo{appointment: appointment}
	svc := newTestService(repo, &stubSalonClient{salon: managedSalon()})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID: customerID,
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_ManagerOnly(t *testing.T) {
	repo := &stubApptRepo{appointment: testAppointment()}
	svc := newTestService(repo, &stubSalonClient{salon: managedSalon()})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: managerID,
		Status: "completed",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusCompleted, *repo.updatedStatus)

	// Клиент не может менять статус своей записи
	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: customerID,
		Status: "completed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	repo := &stubApptRepo{appointment: testAppointment()}
	svc := newTestService(repo, &stubSalonClient{salon: managedSalon()})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: managerID,
		Status: "done",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/repository"
	"github.com/physiocare/physiocare-api/internal/service/notification"
	apperrors "github.com/physiocare/physiocare-api/pkg/errors"
	"github.com/physiocare/physiocare-api/pkg/logger"
)

type mockAppointmentRepo struct {
	createFn func(ctx context.Context, appointment *model.Appointment) error
	getFn    func(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	updateFn func(ctx context.Context, appointment *model.Appointment) error
}

var _ repository.AppointmentRepository = (*mockAppointmentRepo)(nil)

func (m *mockAppointmentRepo) Create(ctx context.Context, appointment *model.Appointment) error {
	return m.createFn(ctx, appointment)
}

func (m *mockAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return m.getFn(ctx, id)
}

func (m *mockAppointmentRepo) Update(ctx context.Context, appointment *model.Appointment) error {
	return m.updateFn(ctx, appointment)
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unexpected call")
}

func (m *mockAppointmentRepo) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	panic("unexpected call")
}

func (m *mockAppointmentRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error {
	panic("unexpected call")
}

type mockScheduleRepo struct {
	getSlotFn     func(ctx context.Context, id uuid.UUID) (*model.AvailabilitySlot, error)
	releaseSlotFn func(ctx context.Context, id uuid.UUID) error
}

var _ repository.ScheduleRepository = (*mockScheduleRepo)(nil)

func (m *mockScheduleRepo) CreateSlot(ctx context.Context, slot *model.AvailabilitySlot) error {
	panic("unexpected call")
}

func (m *mockScheduleRepo) GetSlot(ctx context.Context, id uuid.UUID) (*model.AvailabilitySlot, error) {
	return m.getSlotFn(ctx, id)
}

func (m *mockScheduleRepo) ListSlots(ctx context.Context, filters *model.SlotFilters) ([]*model.AvailabilitySlot, error) {
	panic("unexpected call")
}

func (m *mockScheduleRepo) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	panic("unexpected call")
}

func (m *mockScheduleRepo) ReleaseSlot(ctx context.Context, id uuid.UUID) error {
	return m.releaseSlotFn(ctx, id)
}

func (m *mockScheduleRepo) CreateLeave(ctx context.Context, leave *model.TherapistLeave) error {
	panic("unexpected call")
}

func (m *mockScheduleRepo) GetLeave(ctx context.Context, id uuid.UUID) (*model.TherapistLeave, error) {
	panic("unexpected call")
}

func (m *mockScheduleRepo) ListLeaves(ctx context.Context, therapistID uuid.UUID) ([]*model.TherapistLeave, error) {
	panic("unexpected call")
}

func (m *mockScheduleRepo) ApproveLeave(ctx context.Context, id, approverID uuid.UUID) error {
	panic("unexpected call")
}

func (m *mockScheduleRepo) CreateCoverage(ctx context.Context, coverage *model.LocationCoverage) error {
	panic("unexpected call")
}

func (m *mockScheduleRepo) GetCoverage(ctx context.Context, id uuid.UUID) (*model.LocationCoverage, error) {
	panic("unexpected call")
}

func (m *mockScheduleRepo) UpdateCoverage(ctx context.Context, coverage *model.LocationCoverage) error {
	panic("unexpected call")
}

func (m *mockScheduleRepo) DeleteCoverage(ctx context.Context, id uuid.UUID) error {
	panic("unexpected call")
}

func (m *mockScheduleRepo) ListCoverageForTherapist(ctx context.Context, therapistID uuid.UUID) ([]*model.LocationCoverage, error) {
	panic("unexpected call")
}

type mockCatalogRepo struct {
	getServiceFn func(ctx context.Context, id uuid.UUID) (*model.Service, error)
}

var _ repository.CatalogRepository = (*mockCatalogRepo)(nil)

func (m *mockCatalogRepo) CreateService(ctx context.Context, service *model.Service) error {
	panic("unexpected call")
}

func (m *mockCatalogRepo) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	return m.getServiceFn(ctx, id)
}

func (m *mockCatalogRepo) UpdateService(ctx context.Context, service *model.Service) error {
	panic("unexpected call")
}

func (m *mockCatalogRepo) DeleteService(ctx context.Context, id uuid.UUID) error {
	panic("unexpected call")
}

func (m *mockCatalogRepo) ListServices(ctx context.Context, onlyActive bool) ([]*model.Service, error) {
	panic("unexpected call")
}

func (m *mockCatalogRepo) CreateExercise(ctx context.Context, exercise *model.Exercise) error {
	panic("unexpected call")
}

func (m *mockCatalogRepo) UpdateExercise(ctx context.Context, exercise *model.Exercise) error {
	panic("unexpected call")
}

func (m *mockCatalogRepo) GetExercise(ctx context.Context, id uuid.UUID) (*model.Exercise, error) {
	panic("unexpected call")
}

func (m *mockCatalogRepo) GetExerciseByName(ctx context.Context, name string) (*model.Exercise, error) {
	panic("unexpected call")
}

func (m *mockCatalogRepo) ListExercises(ctx context.Context) ([]*model.Exercise, error) {
	panic("unexpected call")
}

type mockUserRepo struct {
	getFn func(ctx context.Context, id uuid.UUID) (*model.User, error)
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	panic("unexpected call")
}

func (m *mockUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return m.getFn(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	panic("unexpected call")
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	panic("unexpected call")
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unexpected call")
}

func (m *mockUserRepo) List(ctx context.Context, role model.Role) ([]*model.User, error) {
	panic("unexpected call")
}

func (m *mockUserRepo) CreateTherapistProfile(ctx context.Context, profile *model.TherapistProfile) error {
	panic("unexpected call")
}

func (m *mockUserRepo) CreatePatientProfile(ctx context.Context, profile *model.PatientProfile) error {
	panic("unexpected call")
}

func (m *mockUserRepo) GetTherapistProfile(ctx context.Context, userID uuid.UUID) (*model.TherapistProfile, error) {
	panic("unexpected call")
}

func (m *mockUserRepo) GetPatientProfile(ctx context.Context, userID uuid.UUID) (*model.PatientProfile, error) {
	panic("unexpected call")
}

func (m *mockUserRepo) UpdateTherapistProfile(ctx context.Context, profile *model.TherapistProfile) error {
	panic("unexpected call")
}

func (m *mockUserRepo) UpdatePatientProfile(ctx context.Context, profile *model.PatientProfile) error {
	panic("unexpected call")
}

type mockNotificationRepo struct {
	created []*model.Notification
}

var _ repository.NotificationRepository = (*mockNotificationRepo)(nil)

func (m *mockNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	n.ID = uuid.New()
	m.created = append(m.created, n)
	return nil
}

func (m *mockNotificationRepo) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*model.Notification, error) {
	panic("unexpected call")
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	panic("unexpected call")
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	panic("unexpected call")
}

type bookingFixture struct {
	svc         *Service
	notifRepo   *mockNotificationRepo
	patientID   uuid.UUID
	therapistID uuid.UUID
	serviceID   uuid.UUID
}

func newBookingFixture(t *testing.T, appointments *mockAppointmentRepo, slots *mockScheduleRepo) *bookingFixture {
	t.Helper()

	f := &bookingFixture{
		notifRepo:   &mockNotificationRepo{},
		patientID:   uuid.New(),
		therapistID: uuid.New(),
		serviceID:   uuid.New(),
	}

	users := &mockUserRepo{
		getFn: func(_ context.Context, id uuid.UUID) (*model.User, error) {
			switch id {
			case f.therapistID:
				return &model.User{Base: model.Base{ID: id}, Username: "dr_anand", Role: model.RoleTherapist}, nil
			case f.patientID:
				return &model.User{Base: model.Base{ID: id}, Username: "ravi_k", Role: model.RolePatient}, nil
			}
			return nil, fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
		},
	}
	catalog := &mockCatalogRepo{
		getServiceFn: func(_ context.Context, id uuid.UUID) (*model.Service, error) {
			return &model.Service{Base: model.Base{ID: id}, Name: "Sports Massage", IsActive: true}, nil
		},
	}

	log := logger.NewLogger(nil)
	notifSvc := notification.NewService(f.notifRepo, nil, nil, log)
	f.svc = NewService(appointments, slots, catalog, users, notifSvc, nil, log)
	return f
}

func TestBookNotifiesTherapist(t *testing.T) {
	appointments := &mockAppointmentRepo{
		createFn: func(_ context.Context, a *model.Appointment) error {
			a.ID = uuid.New()
			return nil
		},
	}
	f := newBookingFixture(t, appointments, &mockScheduleRepo{})

	appointment, err := f.svc.Book(context.Background(), f.patientID, &model.BookAppointmentRequest{
		TherapistID:   f.therapistID.String(),
		ServiceID:     f.serviceID.String(),
		ScheduledDate: "2026-09-10",
		ScheduledTime: "14:30",
	})
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, appointment.BookingStatus)

	require.Len(t, f.notifRepo.created, 1)
	n := f.notifRepo.created[0]
	assert.Equal(t, f.therapistID, n.UserID)
	assert.Equal(t, "New Appointment Scheduled", n.Title)
	assert.Equal(t, "Status: Pending | Patient: ravi_k", n.Message)
	assert.Equal(t, model.NotificationCategoryAppointment, n.Category)
}

func TestBookRejectsNonTherapist(t *testing.T) {
	f := newBookingFixture(t, &mockAppointmentRepo{}, &mockScheduleRepo{})

	_, err := f.svc.Book(context.Background(), f.patientID, &model.BookAppointmentRequest{
		TherapistID:   f.patientID.String(),
		ServiceID:     f.serviceID.String(),
		ScheduledDate: "2026-09-10",
		ScheduledTime: "14:30",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeBadRequest, appErr.Code)
}

func TestBookRejectsForeignSlot(t *testing.T) {
	slots := &mockScheduleRepo{
		getSlotFn: func(_ context.Context, id uuid.UUID) (*model.AvailabilitySlot, error) {
			return &model.AvailabilitySlot{Base: model.Base{ID: id}, TherapistID: uuid.New()}, nil
		},
	}
	f := newBookingFixture(t, &mockAppointmentRepo{}, slots)

	_, err := f.svc.Book(context.Background(), f.patientID, &model.BookAppointmentRequest{
		TherapistID:   f.therapistID.String(),
		ServiceID:     f.serviceID.String(),
		SlotID:        uuid.NewString(),
		ScheduledDate: "2026-09-10",
		ScheduledTime: "14:30",
	})
	require.Error(t, err)
	assert.Empty(t, f.notifRepo.created)
}

func TestUpdateNotifiesTherapist(t *testing.T) {
	var f *bookingFixture
	appointmentID := uuid.New()
	appointments := &mockAppointmentRepo{
		getFn: func(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
			return &model.Appointment{
				Base:          model.Base{ID: id},
				PatientID:     f.patientID,
				TherapistID:   f.therapistID,
				BookingStatus: model.BookingStatusPending,
				ScheduledDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			}, nil
		},
		updateFn: func(_ context.Context, _ *model.Appointment) error { return nil },
	}
	f = newBookingFixture(t, appointments, &mockScheduleRepo{})

	confirmed := model.BookingStatusConfirmed
	appointment, err := f.svc.Update(context.Background(), appointmentID, f.therapistID, &model.UpdateAppointmentRequest{
		BookingStatus: &confirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, appointment.BookingStatus)

	require.Len(t, f.notifRepo.created, 1)
	assert.Equal(t, "Appointment Updated", f.notifRepo.created[0].Title)
	assert.Equal(t, "Status: Confirmed | Patient: ravi_k", f.notifRepo.created[0].Message)
}

func TestUpdateScopedToOwnTherapist(t *testing.T) {
	var f *bookingFixture
	appointments := &mockAppointmentRepo{
		getFn: func(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
			return &model.Appointment{
				Base:          model.Base{ID: id},
				PatientID:     f.patientID,
				TherapistID:   f.therapistID,
				BookingStatus: model.BookingStatusPending,
			}, nil
		},
		updateFn: func(_ context.Context, _ *model.Appointment) error {
			t.Fatal("update must not run for a foreign therapist")
			return nil
		},
	}
	f = newBookingFixture(t, appointments, &mockScheduleRepo{})

	completed := model.BookingStatusCompleted
	_, err := f.svc.Update(context.Background(), uuid.New(), uuid.New(), &model.UpdateAppointmentRequest{
		BookingStatus: &completed,
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	assert.Empty(t, f.notifRepo.created)
}

func TestUpdateAdminBypassesScoping(t *testing.T) {
	var f *bookingFixture
	appointments := &mockAppointmentRepo{
		getFn: func(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
			return &model.Appointment{
				Base:          model.Base{ID: id},
				PatientID:     f.patientID,
				TherapistID:   f.therapistID,
				BookingStatus: model.BookingStatusPending,
			}, nil
		},
		updateFn: func(_ context.Context, _ *model.Appointment) error { return nil },
	}
	f = newBookingFixture(t, appointments, &mockScheduleRepo{})

	confirmed := model.BookingStatusConfirmed
	appointment, err := f.svc.Update(context.Background(), uuid.New(), uuid.Nil, &model.UpdateAppointmentRequest{
		BookingStatus: &confirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, appointment.BookingStatus)
}

func TestCancelReleasesSlot(t *testing.T) {
	var f *bookingFixture
	slotID := uuid.New()
	var released []uuid.UUID
	appointments := &mockAppointmentRepo{
		getFn: func(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
			return &model.Appointment{
				Base:          model.Base{ID: id},
				PatientID:     f.patientID,
				TherapistID:   f.therapistID,
				SlotID:        &slotID,
				BookingStatus: model.BookingStatusConfirmed,
			}, nil
		},
		updateFn: func(_ context.Context, _ *model.Appointment) error { return nil },
	}
	slots := &mockScheduleRepo{
		releaseSlotFn: func(_ context.Context, id uuid.UUID) error {
			released = append(released, id)
			return nil
		},
	}
	f = newBookingFixture(t, appointments, slots)

	appointment, err := f.svc.Cancel(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, appointment.BookingStatus)
	assert.Equal(t, []uuid.UUID{slotID}, released)
	require.Len(t, f.notifRepo.created, 1)
	assert.Equal(t, "Appointment Updated", f.notifRepo.created[0].Title)
}

func TestCancelIdempotent(t *testing.T) {
	var f *bookingFixture
	appointments := &mockAppointmentRepo{
		getFn: func(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
			return &model.Appointment{
				Base:          model.Base{ID: id},
				PatientID:     f.patientID,
				TherapistID:   f.therapistID,
				BookingStatus: model.BookingStatusCancelled,
			}, nil
		},
		updateFn: func(_ context.Context, _ *model.Appointment) error {
			t.Fatal("an already cancelled appointment must not be written again")
			return nil
		},
	}
	f = newBookingFixture(t, appointments, &mockScheduleRepo{})

	appointment, err := f.svc.Cancel(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, appointment.BookingStatus)
	assert.Empty(t, f.notifRepo.created)
}

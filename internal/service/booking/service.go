package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/repository"
	"github.com/physiocare/physiocare-api/internal/service/notification"
	apperrors "github.com/physiocare/physiocare-api/pkg/errors"
	"github.com/physiocare/physiocare-api/pkg/logger"
	"github.com/physiocare/physiocare-api/pkg/metrics"
)

type Service struct {
	repo     repository.AppointmentRepository
	slots    repository.ScheduleRepository
	catalog  repository.CatalogRepository
	users    repository.UserRepository
	notifSvc *notification.Service
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

func NewService(
	repo repository.AppointmentRepository,
	slots repository.ScheduleRepository,
	catalog repository.CatalogRepository,
	users repository.UserRepository,
	notifSvc *notification.Service,
	m *metrics.Metrics,
	logger *logger.Logger,
) *Service {
	return &Service{
		repo:     repo,
		slots:    slots,
		catalog:  catalog,
		users:    users,
		notifSvc: notifSvc,
		metrics:  m,
		logger:   logger,
	}
}

func (s *Service) Book(ctx context.Context, patientID uuid.UUID, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	therapistID, err := uuid.Parse(req.TherapistID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid therapist id", err)
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid service id", err)
	}

	therapist, err := s.users.Get(ctx, therapistID)
	if err != nil {
		return nil, err
	}
	if therapist.Role != model.RoleTherapist {
		return nil, apperrors.BadRequest("user is not a therapist", nil)
	}

	svc, err := s.catalog.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, apperrors.BadRequest("service is not bookable", nil)
	}

	date, err := time.Parse(model.DateOnly, req.ScheduledDate)
	if err != nil {
		return nil, apperrors.BadRequest("invalid scheduled date", err)
	}

	appointment := &model.Appointment{
		PatientID:     patientID,
		TherapistID:   therapistID,
		ServiceID:     serviceID,
		ScheduledDate: date,
		ScheduledTime: req.ScheduledTime,
		BookingStatus: model.BookingStatusPending,
		PaymentStatus: string(model.PaymentStatusPending),
	}

	if req.SlotID != "" {
		slotID, err := uuid.Parse(req.SlotID)
		if err != nil {
			return nil, apperrors.BadRequest("invalid slot id", err)
		}
		slot, err := s.slots.GetSlot(ctx, slotID)
		if err != nil {
			return nil, err
		}
		if slot.TherapistID != therapistID {
			return nil, apperrors.BadRequest("slot belongs to another therapist", nil)
		}
		appointment.SlotID = &slotID
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.AppointmentsBooked.Inc()
	}

	s.notifyTherapist(ctx, appointment, model.NotificationTitleAppointmentCreated)
	return appointment, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return s.repo.List(ctx, filters)
}

// Update applies the requested changes and, like every other save,
// sends the therapist an update notification. Therapists pass their
// own id and may only touch their own appointments; uuid.Nil skips
// the scoping for staff callers. A mismatch reads as not-found so the
// appointment's existence is not leaked.
func (s *Service) Update(ctx context.Context, id, therapistID uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if therapistID != uuid.Nil && appointment.TherapistID != therapistID {
		return nil, apperrors.NotFound("appointment", nil)
	}

	if req.BookingStatus != nil {
		if !req.BookingStatus.Valid() {
			return nil, apperrors.BadRequest("invalid booking status", nil)
		}
		appointment.BookingStatus = *req.BookingStatus
	}
	if req.ScheduledDate != nil {
		date, err := time.Parse(model.DateOnly, *req.ScheduledDate)
		if err != nil {
			return nil, apperrors.BadRequest("invalid scheduled date", err)
		}
		appointment.ScheduledDate = date
	}
	if req.ScheduledTime != nil {
		appointment.ScheduledTime = *req.ScheduledTime
	}

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	s.notifyTherapist(ctx, appointment, model.NotificationTitleAppointmentUpdated)
	return appointment, nil
}

// Cancel flips the status, frees the slot when one was claimed and
// notifies the therapist.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.BookingStatus == model.BookingStatusCancelled {
		return appointment, nil
	}

	appointment.BookingStatus = model.BookingStatusCancelled
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	if appointment.SlotID != nil {
		if err := s.slots.ReleaseSlot(ctx, *appointment.SlotID); err != nil {
			s.logger.Error(err, "failed to release slot", "slot_id", *appointment.SlotID)
		}
	}

	if s.metrics != nil {
		s.metrics.AppointmentsCancelled.Inc()
	}

	s.notifyTherapist(ctx, appointment, model.NotificationTitleAppointmentUpdated)
	return appointment, nil
}

// notifyTherapist delivers the per-save notification. Failures are
// logged, the appointment write already stands.
func (s *Service) notifyTherapist(ctx context.Context, appointment *model.Appointment, title string) {
	patientName := appointment.PatientID.String()
	if patient, err := s.users.Get(ctx, appointment.PatientID); err == nil {
		patientName = patient.Username
	}

	message := fmt.Sprintf("Status: %s | Patient: %s", appointment.BookingStatus, patientName)
	if _, err := s.notifSvc.Notify(ctx, appointment.TherapistID, title, message, model.NotificationCategoryAppointment); err != nil {
		s.logger.Error(err, "failed to notify therapist", "appointment_id", appointment.ID)
	}
}

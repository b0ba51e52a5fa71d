package feedback

import (
	"context"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/repository"
	apperrors "github.com/physiocare/physiocare-api/pkg/errors"
)

type Service struct {
	repo         repository.FeedbackRepository
	appointments repository.AppointmentRepository
}

func NewService(repo repository.FeedbackRepository, appointments repository.AppointmentRepository) *Service {
	return &Service{repo: repo, appointments: appointments}
}

// Submit records the feedback against the patient's own appointment.
// The therapist's ratings_average is recomputed from all feedback rows
// in the same transaction as the insert.
func (s *Service) Submit(ctx context.Context, patientID, appointmentID uuid.UUID, req *model.CreateFeedbackRequest) (*model.Feedback, error) {
	appointment, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.PatientID != patientID {
		return nil, apperrors.Forbidden("appointment belongs to another patient")
	}

	feedback := &model.Feedback{
		PatientID:     patientID,
		TherapistID:   appointment.TherapistID,
		AppointmentID: appointmentID,
		Rating:        req.Rating,
	}
	if req.Comments != "" {
		feedback.Comments = &req.Comments
	}

	if _, err := s.repo.CreateAndRecompute(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *Service) ListForTherapist(ctx context.Context, therapistID uuid.UUID) ([]*model.Feedback, error) {
	return s.repo.ListForTherapist(ctx, therapistID)
}

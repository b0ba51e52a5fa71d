package treatment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/repository"
	apperrors "github.com/physiocare/physiocare-api/pkg/errors"
	"github.com/physiocare/physiocare-api/pkg/logger"
)

type Service struct {
	repo         repository.TreatmentRepository
	appointments repository.AppointmentRepository
	catalog      repository.CatalogRepository
	logger       *logger.Logger
}

func NewService(repo repository.TreatmentRepository, appointments repository.AppointmentRepository, catalog repository.CatalogRepository, logger *logger.Logger) *Service {
	return &Service{
		repo:         repo,
		appointments: appointments,
		catalog:      catalog,
		logger:       logger,
	}
}

// CreatePlan stores the plan and fans out exercise and progress rows
// for each listed name. Fan-out failures are logged per exercise and
// never fail the plan itself.
func (s *Service) CreatePlan(ctx context.Context, prescriberID uuid.UUID, req *model.CreateTreatmentPlanRequest) (*model.TreatmentPlan, error) {
	appointmentID, err := uuid.Parse(req.AppointmentID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid appointment id", err)
	}

	appointment, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	// Scoped lookup: a foreign appointment reads as not-found so its
	// existence is not leaked.
	if appointment.TherapistID != prescriberID {
		return nil, apperrors.NotFound("appointment", nil)
	}

	plan := &model.TreatmentPlan{
		AppointmentID:    appointmentID,
		ExercisesList:    req.ExercisesList,
		PrescribedBy:     prescriberID,
		FollowUpRequired: req.FollowUpRequired,
		Status:           model.TreatmentPlanStatusActive,
		Instructions:     req.Instructions,
	}
	if err := s.repo.CreatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to create treatment plan: %w", err)
	}

	s.fanOut(ctx, plan, appointment.PatientID)
	return plan, nil
}

func (s *Service) fanOut(ctx context.Context, plan *model.TreatmentPlan, patientID uuid.UUID) {
	for _, name := range plan.Exercises() {
		exercise, err := s.findOrCreateExercise(ctx, name)
		if err != nil {
			s.logger.Error(err, "failed to resolve exercise", "name", name, "plan_id", plan.ID)
			continue
		}
		if _, err := s.repo.FindOrCreateProgress(ctx, patientID, exercise.ID, plan.ID); err != nil {
			s.logger.Error(err, "failed to create progress entry", "exercise_id", exercise.ID, "plan_id", plan.ID)
		}
	}
}

func (s *Service) findOrCreateExercise(ctx context.Context, name string) (*model.Exercise, error) {
	exercise, err := s.catalog.GetExerciseByName(ctx, name)
	if err == nil {
		return exercise, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	exercise = &model.Exercise{Name: name}
	if err := s.catalog.CreateExercise(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *Service) GetPlan(ctx context.Context, id uuid.UUID) (*model.TreatmentPlan, error) {
	return s.repo.GetPlan(ctx, id)
}

// UpdatePlan edits the plan row only. The exercise fan-out happens at
// creation time and is never re-run, so progress rows are untouched
// even when the list changes. Therapists pass their own id and may
// only touch plans for their own appointments; uuid.Nil skips the
// scoping for admin callers, and a mismatch reads as not-found.
func (s *Service) UpdatePlan(ctx context.Context, id, therapistID uuid.UUID, req *model.UpdateTreatmentPlanRequest) (*model.TreatmentPlan, error) {
	plan, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}

	if therapistID != uuid.Nil {
		appointment, err := s.appointments.Get(ctx, plan.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appointment.TherapistID != therapistID {
			return nil, apperrors.NotFound("treatment plan", nil)
		}
	}

	if req.ExercisesList != nil {
		plan.ExercisesList = *req.ExercisesList
	}
	if req.FollowUpRequired != nil {
		plan.FollowUpRequired = *req.FollowUpRequired
	}
	if req.Status != nil {
		plan.Status = *req.Status
	}
	if req.Instructions != nil {
		plan.Instructions = *req.Instructions
	}

	if err := s.repo.UpdatePlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *Service) ListPlansForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.TreatmentPlan, error) {
	return s.repo.ListPlansForPatient(ctx, patientID)
}

func (s *Service) GetProgress(ctx context.Context, id uuid.UUID) (*model.ProgressTracking, error) {
	return s.repo.GetProgress(ctx, id)
}

func (s *Service) UpdateProgress(ctx context.Context, id, patientID uuid.UUID, req *model.UpdateProgressRequest) (*model.ProgressTracking, error) {
	progress, err := s.repo.GetProgress(ctx, id)
	if err != nil {
		return nil, err
	}
	if progress.PatientID != patientID {
		return nil, apperrors.Forbidden("progress belongs to another patient")
	}

	if req.CompletionPercentage != nil {
		progress.CompletionPercentage = *req.CompletionPercentage
	}
	if req.FeedbackNotes != nil {
		progress.FeedbackNotes = req.FeedbackNotes
	}

	if err := s.repo.UpdateProgress(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *Service) ListProgressForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.ProgressTracking, error) {
	return s.repo.ListProgressForPatient(ctx, patientID)
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
	apperrors "github.com/physiocare/physiocare-api/pkg/errors"
)

func (r *treatmentRepository) CreatePlan(ctx context.Context, plan *model.TreatmentPlan) error {
	query := `
		INSERT INTO treatment_plans (
			id, appointment_id, exercises_list, prescribed_by,
			follow_up_required, status, instructions, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	plan.ID = uuid.New()
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		plan.ID,
		plan.AppointmentID,
		plan.ExercisesList,
		plan.PrescribedBy,
		plan.FollowUpRequired,
		plan.Status,
		plan.Instructions,
		plan.CreatedAt,
		plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create treatment plan: %w", err)
	}
	return nil
}

func (r *treatmentRepository) GetPlan(ctx context.Context, id uuid.UUID) (*model.TreatmentPlan, error) {
	query := `
		SELECT id, appointment_id, exercises_list, prescribed_by,
			   follow_up_required, status, instructions, created_at, updated_at
		FROM treatment_plans
		WHERE id = $1
	`
	var plan model.TreatmentPlan
	err := r.db.GetContext(ctx, &plan, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("treatment plan %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get treatment plan: %w", err)
	}
	return &plan, nil
}

func (r *treatmentRepository) UpdatePlan(ctx context.Context, plan *model.TreatmentPlan) error {
	query := `
		UPDATE treatment_plans
		SET exercises_list = $1, follow_up_required = $2, status = $3,
			instructions = $4, updated_at = $5
		WHERE id = $6
	`
	plan.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		plan.ExercisesList,
		plan.FollowUpRequired,
		plan.Status,
		plan.Instructions,
		plan.UpdatedAt,
		plan.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update treatment plan: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("treatment plan %s: %w", plan.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *treatmentRepository) ListPlansForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.TreatmentPlan, error) {
	query := `
		SELECT tp.id, tp.appointment_id, tp.exercises_list, tp.prescribed_by,
			   tp.follow_up_required, tp.status, tp.instructions,
			   tp.created_at, tp.updated_at
		FROM treatment_plans tp
		JOIN appointments a ON a.id = tp.appointment_id
		WHERE a.patient_id = $1
		ORDER BY tp.created_at DESC
	`
	var plans []*model.TreatmentPlan
	if err := r.db.SelectContext(ctx, &plans, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list treatment plans: %w", err)
	}
	return plans, nil
}

func (r *treatmentRepository) FindOrCreateProgress(ctx context.Context, patientID, exerciseID, planID uuid.UUID) (*model.ProgressTracking, error) {
	query := `
		SELECT id, patient_id, exercise_id, treatment_plan_id,
			   completion_percentage, feedback_notes, created_at, updated_at
		FROM progress_tracking
		WHERE patient_id = $1 AND exercise_id = $2 AND treatment_plan_id = $3
	`
	var progress model.ProgressTracking
	err := r.db.GetContext(ctx, &progress, query, patientID, exerciseID, planID)
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	progress = model.ProgressTracking{
		PatientID:       patientID,
		ExerciseID:      exerciseID,
		TreatmentPlanID: planID,
	}
	progress.ID = uuid.New()
	progress.CreatedAt = time.Now()
	progress.UpdatedAt = time.Now()

	insert := `
		INSERT INTO progress_tracking (
			id, patient_id, exercise_id, treatment_plan_id,
			completion_percentage, feedback_notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.ExecContext(ctx, insert,
		progress.ID,
		progress.PatientID,
		progress.ExerciseID,
		progress.TreatmentPlanID,
		progress.CompletionPercentage,
		progress.FeedbackNotes,
		progress.CreatedAt,
		progress.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create progress: %w", err)
	}
	return &progress, nil
}

func (r *treatmentRepository) GetProgress(ctx context.Context, id uuid.UUID) (*model.ProgressTracking, error) {
	query := `
		SELECT id, patient_id, exercise_id, treatment_plan_id,
			   completion_percentage, feedback_notes, created_at, updated_at
		FROM progress_tracking
		WHERE id = $1
	`
	var progress model.ProgressTracking
	err := r.db.GetContext(ctx, &progress, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("progress %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return &progress, nil
}

func (r *treatmentRepository) UpdateProgress(ctx context.Context, progress *model.ProgressTracking) error {
	query := `
		UPDATE progress_tracking
		SET completion_percentage = $1, feedback_notes = $2, updated_at = $3
		WHERE id = $4
	`
	progress.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		progress.CompletionPercentage,
		progress.FeedbackNotes,
		progress.UpdatedAt,
		progress.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("progress %s: %w", progress.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *treatmentRepository) ListProgressForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.ProgressTracking, error) {
	query := `
		SELECT id, patient_id, exercise_id, treatment_plan_id,
			   completion_percentage, feedback_notes, created_at, updated_at
		FROM progress_tracking
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`
	var entries []*model.ProgressTracking
	if err := r.db.SelectContext(ctx, &entries, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	return entries, nil
}

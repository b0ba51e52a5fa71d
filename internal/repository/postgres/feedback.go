package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
)

func (r *feedbackRepository) CreateAndRecompute(ctx context.Context, feedback *model.Feedback) (float64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the therapist row first so concurrent submissions
	// serialize and the average always reflects every inserted row.
	var therapistID uuid.UUID
	err = tx.GetContext(ctx, &therapistID,
		`SELECT id FROM users WHERE id = $1 FOR UPDATE`, feedback.TherapistID)
	if err != nil {
		return 0, fmt.Errorf("failed to lock therapist: %w", err)
	}

	feedback.ID = uuid.New()
	feedback.CreatedAt = time.Now()
	feedback.UpdatedAt = time.Now()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO feedbacks (
			id, patient_id, therapist_id, appointment_id, rating, comments,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		feedback.ID,
		feedback.PatientID,
		feedback.TherapistID,
		feedback.AppointmentID,
		feedback.Rating,
		feedback.Comments,
		feedback.CreatedAt,
		feedback.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create feedback: %w", err)
	}

	var average float64
	err = tx.GetContext(ctx, &average,
		`SELECT COALESCE(AVG(rating), 0) FROM feedbacks WHERE therapist_id = $1`,
		feedback.TherapistID)
	if err != nil {
		return 0, fmt.Errorf("failed to compute rating average: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET ratings_average = $1, updated_at = $2 WHERE id = $3`,
		average, time.Now(), feedback.TherapistID)
	if err != nil {
		return 0, fmt.Errorf("failed to update rating average: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return average, nil
}

func (r *feedbackRepository) ListForTherapist(ctx context.Context, therapistID uuid.UUID) ([]*model.Feedback, error) {
	query := `
		SELECT id, patient_id, therapist_id, appointment_id, rating, comments,
			   created_at, updated_at
		FROM feedbacks
		WHERE therapist_id = $1
		ORDER BY created_at DESC
	`
	var feedbacks []*model.Feedback
	if err := r.db.SelectContext(ctx, &feedbacks, query, therapistID); err != nil {
		return nil, fmt.Errorf("failed to list feedbacks: %w", err)
	}
	return feedbacks, nil
}

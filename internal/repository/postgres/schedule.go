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

func (r *scheduleRepository) CreateSlot(ctx context.Context, slot *model.AvailabilitySlot) error {
	query := `
		INSERT INTO availability_slots (
			id, therapist_id, date, start_time, end_time, is_booked,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	slot.ID = uuid.New()
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		slot.ID,
		slot.TherapistID,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		slot.IsBooked,
		slot.CreatedAt,
		slot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create slot: %w", err)
	}
	return nil
}

func (r *scheduleRepository) GetSlot(ctx context.Context, id uuid.UUID) (*model.AvailabilitySlot, error) {
	query := `
		SELECT id, therapist_id, date, start_time, end_time, is_booked,
			   created_at, updated_at
		FROM availability_slots
		WHERE id = $1
	`
	var slot model.AvailabilitySlot
	err := r.db.GetContext(ctx, &slot, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("slot %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return &slot, nil
}

func (r *scheduleRepository) ListSlots(ctx context.Context, filters *model.SlotFilters) ([]*model.AvailabilitySlot, error) {
	query := `
		SELECT id, therapist_id, date, start_time, end_time, is_booked,
			   created_at, updated_at
		FROM availability_slots
		WHERE 1=1
	`
	args := []interface{}{}
	idx := 1

	if filters.TherapistID != uuid.Nil {
		query += fmt.Sprintf(" AND therapist_id = $%d", idx)
		args = append(args, filters.TherapistID)
		idx++
	}
	if !filters.Date.IsZero() {
		query += fmt.Sprintf(" AND date = $%d", idx)
		args = append(args, filters.Date)
		idx++
	}
	if filters.OnlyOpen {
		query += " AND is_booked = false"
	}
	query += " ORDER BY date, start_time"

	var slots []*model.AvailabilitySlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

func (r *scheduleRepository) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM availability_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("slot %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *scheduleRepository) ReleaseSlot(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE availability_slots
		SET is_booked = false, updated_at = $1
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("slot %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *scheduleRepository) CreateLeave(ctx context.Context, leave *model.TherapistLeave) error {
	query := `
		INSERT INTO therapist_leaves (
			id, therapist_id, from_date, to_date, reason,
			approved_by, is_approved, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	leave.ID = uuid.New()
	leave.CreatedAt = time.Now()
	leave.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		leave.ID,
		leave.TherapistID,
		leave.FromDate,
		leave.ToDate,
		leave.Reason,
		leave.ApprovedBy,
		leave.IsApproved,
		leave.CreatedAt,
		leave.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create leave: %w", err)
	}
	return nil
}

func (r *scheduleRepository) GetLeave(ctx context.Context, id uuid.UUID) (*model.TherapistLeave, error) {
	query := `
		SELECT id, therapist_id, from_date, to_date, reason,
			   approved_by, is_approved, created_at, updated_at
		FROM therapist_leaves
		WHERE id = $1
	`
	var leave model.TherapistLeave
	err := r.db.GetContext(ctx, &leave, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("leave %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get leave: %w", err)
	}
	return &leave, nil
}

func (r *scheduleRepository) ListLeaves(ctx context.Context, therapistID uuid.UUID) ([]*model.TherapistLeave, error) {
	query := `
		SELECT id, therapist_id, from_date, to_date, reason,
			   approved_by, is_approved, created_at, updated_at
		FROM therapist_leaves
	`
	args := []interface{}{}
	if therapistID != uuid.Nil {
		query += ` WHERE therapist_id = $1`
		args = append(args, therapistID)
	}
	query += ` ORDER BY from_date DESC`

	var leaves []*model.TherapistLeave
	if err := r.db.SelectContext(ctx, &leaves, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	return leaves, nil
}

func (r *scheduleRepository) ApproveLeave(ctx context.Context, id, approverID uuid.UUID) error {
	query := `
		UPDATE therapist_leaves
		SET is_approved = true, approved_by = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, approverID, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to approve leave: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("leave %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *scheduleRepository) CreateCoverage(ctx context.Context, coverage *model.LocationCoverage) error {
	query := `
		INSERT INTO location_coverage (
			id, therapist_id, service_area_name, location,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	coverage.ID = uuid.New()
	coverage.CreatedAt = time.Now()
	coverage.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		coverage.ID,
		coverage.TherapistID,
		coverage.ServiceAreaName,
		coverage.Location,
		coverage.CreatedAt,
		coverage.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create coverage area: %w", err)
	}
	return nil
}

func (r *scheduleRepository) GetCoverage(ctx context.Context, id uuid.UUID) (*model.LocationCoverage, error) {
	query := `
		SELECT id, therapist_id, service_area_name, location, created_at, updated_at
		FROM location_coverage
		WHERE id = $1
	`
	var coverage model.LocationCoverage
	err := r.db.GetContext(ctx, &coverage, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("coverage area %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get coverage area: %w", err)
	}
	return &coverage, nil
}

func (r *scheduleRepository) UpdateCoverage(ctx context.Context, coverage *model.LocationCoverage) error {
	query := `
		UPDATE location_coverage
		SET service_area_name = $1, location = $2, updated_at = $3
		WHERE id = $4
	`
	coverage.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		coverage.ServiceAreaName,
		coverage.Location,
		coverage.UpdatedAt,
		coverage.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update coverage area: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("coverage area %s: %w", coverage.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *scheduleRepository) DeleteCoverage(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM location_coverage WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coverage area: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("coverage area %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *scheduleRepository) ListCoverageForTherapist(ctx context.Context, therapistID uuid.UUID) ([]*model.LocationCoverage, error) {
	query := `
		SELECT id, therapist_id, service_area_name, location, created_at, updated_at
		FROM location_coverage
		WHERE therapist_id = $1
		ORDER BY service_area_name
	`
	var areas []*model.LocationCoverage
	if err := r.db.SelectContext(ctx, &areas, query, therapistID); err != nil {
		return nil, fmt.Errorf("failed to list coverage areas: %w", err)
	}
	return areas, nil
}

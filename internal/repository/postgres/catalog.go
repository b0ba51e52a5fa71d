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

func (r *catalogRepository) CreateService(ctx context.Context, service *model.Service) error {
	query := `
		INSERT INTO services (
			id, name, description, duration_minutes, base_fee,
			image, required_equipment, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	service.ID = uuid.New()
	service.CreatedAt = time.Now()
	service.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		service.ID,
		service.Name,
		service.Description,
		service.DurationMinutes,
		service.BaseFee,
		service.Image,
		service.RequiredEquipment,
		service.IsActive,
		service.CreatedAt,
		service.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *catalogRepository) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `
		SELECT id, name, description, duration_minutes, base_fee,
			   image, required_equipment, is_active, created_at, updated_at
		FROM services
		WHERE id = $1
	`
	var service model.Service
	err := r.db.GetContext(ctx, &service, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("service %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}

func (r *catalogRepository) UpdateService(ctx context.Context, service *model.Service) error {
	query := `
		UPDATE services
		SET name = $1, description = $2, duration_minutes = $3, base_fee = $4,
			image = $5, required_equipment = $6, is_active = $7, updated_at = $8
		WHERE id = $9
	`
	service.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		service.Name,
		service.Description,
		service.DurationMinutes,
		service.BaseFee,
		service.Image,
		service.RequiredEquipment,
		service.IsActive,
		service.UpdatedAt,
		service.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("service %s: %w", service.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *catalogRepository) DeleteService(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("service %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *catalogRepository) ListServices(ctx context.Context, onlyActive bool) ([]*model.Service, error) {
	query := `
		SELECT id, name, description, duration_minutes, base_fee,
			   image, required_equipment, is_active, created_at, updated_at
		FROM services
	`
	if onlyActive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name`

	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *catalogRepository) CreateExercise(ctx context.Context, exercise *model.Exercise) error {
	query := `
		INSERT INTO exercises (
			id, name, description, demo_video_url, repetition_count,
			difficulty_level, focus_area, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	exercise.ID = uuid.New()
	exercise.CreatedAt = time.Now()
	exercise.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		exercise.ID,
		exercise.Name,
		exercise.Description,
		exercise.DemoVideoURL,
		exercise.RepetitionCount,
		exercise.DifficultyLevel,
		exercise.FocusArea,
		exercise.CreatedAt,
		exercise.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create exercise: %w", err)
	}
	return nil
}

func (r *catalogRepository) UpdateExercise(ctx context.Context, exercise *model.Exercise) error {
	query := `
		UPDATE exercises
		SET name = $1, description = $2, demo_video_url = $3, repetition_count = $4,
			difficulty_level = $5, focus_area = $6, updated_at = $7
		WHERE id = $8
	`
	exercise.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		exercise.Name,
		exercise.Description,
		exercise.DemoVideoURL,
		exercise.RepetitionCount,
		exercise.DifficultyLevel,
		exercise.FocusArea,
		exercise.UpdatedAt,
		exercise.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update exercise: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("exercise %s: %w", exercise.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *catalogRepository) GetExercise(ctx context.Context, id uuid.UUID) (*model.Exercise, error) {
	query := `
		SELECT id, name, description, demo_video_url, repetition_count,
			   difficulty_level, focus_area, created_at, updated_at
		FROM exercises
		WHERE id = $1
	`
	var exercise model.Exercise
	err := r.db.GetContext(ctx, &exercise, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("exercise %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get exercise: %w", err)
	}
	return &exercise, nil
}

func (r *catalogRepository) GetExerciseByName(ctx context.Context, name string) (*model.Exercise, error) {
	query := `
		SELECT id, name, description, demo_video_url, repetition_count,
			   difficulty_level, focus_area, created_at, updated_at
		FROM exercises
		WHERE name = $1
	`
	var exercise model.Exercise
	err := r.db.GetContext(ctx, &exercise, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("exercise %q: %w", name, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get exercise by name: %w", err)
	}
	return &exercise, nil
}

func (r *catalogRepository) ListExercises(ctx context.Context) ([]*model.Exercise, error) {
	query := `
		SELECT id, name, description, demo_video_url, repetition_count,
			   difficulty_level, focus_area, created_at, updated_at
		FROM exercises
		ORDER BY name
	`
	var exercises []*model.Exercise
	if err := r.db.SelectContext(ctx, &exercises, query); err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return exercises, nil
}

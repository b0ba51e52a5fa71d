package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/repository"
)

type Service struct {
	repo repository.CatalogRepository
}

func NewService(repo repository.CatalogRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	svc := &model.Service{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		BaseFee:         req.BaseFee,
		IsActive:        true,
	}
	if req.RequiredEquipment != "" {
		svc.RequiredEquipment = &req.RequiredEquipment
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	return s.repo.GetService(ctx, id)
}

func (s *Service) UpdateService(ctx context.Context, svc *model.Service) error {
	return s.repo.UpdateService(ctx, svc)
}

func (s *Service) DeleteService(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteService(ctx, id)
}

func (s *Service) ListServices(ctx context.Context, onlyActive bool) ([]*model.Service, error) {
	return s.repo.ListServices(ctx, onlyActive)
}

func (s *Service) CreateExercise(ctx context.Context, req *model.CreateExerciseRequest) (*model.Exercise, error) {
	exercise := &model.Exercise{
		Name:            req.Name,
		RepetitionCount: req.RepetitionCount,
	}
	if req.Description != "" {
		exercise.Description = &req.Description
	}
	if req.DemoVideoURL != "" {
		exercise.DemoVideoURL = &req.DemoVideoURL
	}
	if req.DifficultyLevel != "" {
		exercise.DifficultyLevel = &req.DifficultyLevel
	}
	if req.FocusArea != "" {
		exercise.FocusArea = &req.FocusArea
	}

	if err := s.repo.CreateExercise(ctx, exercise); err != nil {
		return nil, fmt.Errorf("failed to create exercise: %w", err)
	}
	return exercise, nil
}

func (s *Service) UpdateExercise(ctx context.Context, exercise *model.Exercise) error {
	return s.repo.UpdateExercise(ctx, exercise)
}

func (s *Service) GetExercise(ctx context.Context, id uuid.UUID) (*model.Exercise, error) {
	return s.repo.GetExercise(ctx, id)
}

func (s *Service) ListExercises(ctx context.Context) ([]*model.Exercise, error) {
	return s.repo.ListExercises(ctx)
}

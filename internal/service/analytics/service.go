package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/repository"
	apperrors "github.com/physiocare/physiocare-api/pkg/errors"
)

type Service struct {
	repo  repository.AnalyticsRepository
	users repository.UserRepository
}

func NewService(repo repository.AnalyticsRepository, users repository.UserRepository) *Service {
	return &Service{repo: repo, users: users}
}

func (s *Service) CreateReport(ctx context.Context, req *model.CreateAnalyticsReportRequest) (*model.AnalyticsReport, error) {
	therapistID, err := uuid.Parse(req.TherapistID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid therapist id", err)
	}
	therapist, err := s.users.Get(ctx, therapistID)
	if err != nil {
		return nil, err
	}
	if therapist.Role != model.RoleTherapist {
		return nil, apperrors.BadRequest("user is not a therapist", nil)
	}

	report := &model.AnalyticsReport{
		TherapistID:          therapistID,
		TotalSessions:        req.TotalSessions,
		AvgRating:            req.AvgRating,
		RevenueGenerated:     req.RevenueGenerated,
		PatientRetentionRate: req.PatientRetentionRate,
		PopularServices:      req.PopularServices,
	}
	if err := s.repo.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return report, nil
}

func (s *Service) ListReportsForTherapist(ctx context.Context, therapistID uuid.UUID) ([]*model.AnalyticsReport, error) {
	return s.repo.ListReportsForTherapist(ctx, therapistID)
}

func (s *Service) CreatePrediction(ctx context.Context, req *model.CreateRecoveryPredictionRequest) (*model.RecoveryPrediction, error) {
	prediction := &model.RecoveryPrediction{
		ModelVersion:          req.ModelVersion,
		InputFeatures:         req.InputFeatures,
		PredictedRecoveryDays: req.PredictedRecoveryDays,
		ConfidenceScore:       req.ConfidenceScore,
	}
	if err := s.repo.CreatePrediction(ctx, prediction); err != nil {
		return nil, fmt.Errorf("failed to create prediction: %w", err)
	}
	return prediction, nil
}

func (s *Service) ListPredictions(ctx context.Context) ([]*model.RecoveryPrediction, error) {
	return s.repo.ListPredictions(ctx)
}

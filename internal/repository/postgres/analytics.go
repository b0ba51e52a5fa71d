package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
)

func (r *analyticsRepository) CreateReport(ctx context.Context, report *model.AnalyticsReport) error {
	query := `
		INSERT INTO analytics_reports (
			id, therapist_id, total_sessions, avg_rating, revenue_generated,
			patient_retention_rate, popular_services, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	report.ID = uuid.New()
	report.CreatedAt = time.Now()
	report.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.TherapistID,
		report.TotalSessions,
		report.AvgRating,
		report.RevenueGenerated,
		report.PatientRetentionRate,
		report.PopularServices,
		report.CreatedAt,
		report.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create analytics report: %w", err)
	}
	return nil
}

func (r *analyticsRepository) ListReportsForTherapist(ctx context.Context, therapistID uuid.UUID) ([]*model.AnalyticsReport, error) {
	query := `
		SELECT id, therapist_id, total_sessions, avg_rating, revenue_generated,
			   patient_retention_rate, popular_services, created_at, updated_at
		FROM analytics_reports
		WHERE therapist_id = $1
		ORDER BY created_at DESC
	`
	var reports []*model.AnalyticsReport
	if err := r.db.SelectContext(ctx, &reports, query, therapistID); err != nil {
		return nil, fmt.Errorf("failed to list analytics reports: %w", err)
	}
	return reports, nil
}

func (r *analyticsRepository) CreatePrediction(ctx context.Context, prediction *model.RecoveryPrediction) error {
	query := `
		INSERT INTO recovery_predictions (
			id, model_version, input_features, predicted_recovery_days,
			confidence_score, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	prediction.ID = uuid.New()
	prediction.CreatedAt = time.Now()
	prediction.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		prediction.ID,
		prediction.ModelVersion,
		prediction.InputFeatures,
		prediction.PredictedRecoveryDays,
		prediction.ConfidenceScore,
		prediction.CreatedAt,
		prediction.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create recovery prediction: %w", err)
	}
	return nil
}

func (r *analyticsRepository) ListPredictions(ctx context.Context) ([]*model.RecoveryPrediction, error) {
	query := `
		SELECT id, model_version, input_features, predicted_recovery_days,
			   confidence_score, created_at, updated_at
		FROM recovery_predictions
		ORDER BY created_at DESC
	`
	var predictions []*model.RecoveryPrediction
	if err := r.db.SelectContext(ctx, &predictions, query); err != nil {
		return nil, fmt.Errorf("failed to list recovery predictions: %w", err)
	}
	return predictions, nil
}

package model

import (
	"github.com/google/uuid"
)

type AnalyticsReport struct {
	Base
	TherapistID          uuid.UUID `json:"therapist_id" db:"therapist_id"`
	TotalSessions        int       `json:"total_sessions" db:"total_sessions"`
	AvgRating            float64   `json:"avg_rating" db:"avg_rating"`
	RevenueGenerated     float64   `json:"revenue_generated" db:"revenue_generated"`
	PatientRetentionRate float64   `json:"patient_retention_rate" db:"patient_retention_rate"`
	PopularServices      string    `json:"popular_services" db:"popular_services"`
}

type CreateAnalyticsReportRequest struct {
	TherapistID          string  `json:"therapist_id" binding:"required,uuid"`
	TotalSessions        int     `json:"total_sessions" binding:"gte=0"`
	AvgRating            float64 `json:"avg_rating" binding:"gte=0,lte=5"`
	RevenueGenerated     float64 `json:"revenue_generated" binding:"gte=0"`
	PatientRetentionRate float64 `json:"patient_retention_rate" binding:"gte=0,lte=100"`
	PopularServices      string  `json:"popular_services" binding:"max=100"`
}

type RecoveryPrediction struct {
	Base
	ModelVersion          string  `json:"model_version" db:"model_version"`
	InputFeatures         string  `json:"input_features" db:"input_features"`
	PredictedRecoveryDays float64 `json:"predicted_recovery_days" db:"predicted_recovery_days"`
	ConfidenceScore       float64 `json:"confidence_score" db:"confidence_score"`
}

type CreateRecoveryPredictionRequest struct {
	ModelVersion          string  `json:"model_version" binding:"required,max=50"`
	InputFeatures         string  `json:"input_features" binding:"required"`
	PredictedRecoveryDays float64 `json:"predicted_recovery_days" binding:"required,gt=0"`
	ConfidenceScore       float64 `json:"confidence_score" binding:"gte=0,lte=1"`
}

package model

import (
	"strings"

	"github.com/google/uuid"
)

type TreatmentPlanStatus string

const (
	TreatmentPlanStatusActive    TreatmentPlanStatus = "active"
	TreatmentPlanStatusCompleted TreatmentPlanStatus = "completed"
	TreatmentPlanStatusCancelled TreatmentPlanStatus = "cancelled"
)

// TreatmentPlan prescribes a newline-delimited exercise list for an
// appointment. Creation fans out Exercise and ProgressTracking rows.
type TreatmentPlan struct {
	Base
	AppointmentID    uuid.UUID           `json:"appointment_id" db:"appointment_id"`
	ExercisesList    string              `json:"exercises_list" db:"exercises_list"`
	PrescribedBy     uuid.UUID           `json:"prescribed_by" db:"prescribed_by"`
	FollowUpRequired bool                `json:"follow_up_required" db:"follow_up_required"`
	Status           TreatmentPlanStatus `json:"status" db:"status"`
	Instructions     string              `json:"instructions" db:"instructions"`
}

// Exercises splits ExercisesList into trimmed, non-empty names.
func (p *TreatmentPlan) Exercises() []string {
	var out []string
	for _, line := range strings.Split(p.ExercisesList, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			out = append(out, name)
		}
	}
	return out
}

type CreateTreatmentPlanRequest struct {
	AppointmentID    string `json:"appointment_id" binding:"required,uuid"`
	ExercisesList    string `json:"exercises_list" binding:"required"`
	FollowUpRequired bool   `json:"follow_up_required"`
	Instructions     string `json:"instructions"`
}

type UpdateTreatmentPlanRequest struct {
	ExercisesList    *string              `json:"exercises_list"`
	FollowUpRequired *bool                `json:"follow_up_required"`
	Status           *TreatmentPlanStatus `json:"status" binding:"omitempty,oneof=active completed cancelled"`
	Instructions     *string              `json:"instructions"`
}

// ProgressTracking is one row per (patient, exercise, plan), created by
// the treatment-plan fan-out.
type ProgressTracking struct {
	Base
	PatientID            uuid.UUID `json:"patient_id" db:"patient_id"`
	ExerciseID           uuid.UUID `json:"exercise_id" db:"exercise_id"`
	TreatmentPlanID      uuid.UUID `json:"treatment_plan_id" db:"treatment_plan_id"`
	CompletionPercentage float64   `json:"completion_percentage" db:"completion_percentage"`
	FeedbackNotes        *string   `json:"feedback_notes" db:"feedback_notes"`
}

type UpdateProgressRequest struct {
	CompletionPercentage *float64 `json:"completion_percentage" binding:"omitempty,gte=0,lte=100"`
	FeedbackNotes        *string  `json:"feedback_notes"`
}

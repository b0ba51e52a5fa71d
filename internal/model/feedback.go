package model

import (
	"github.com/google/uuid"
)

// Feedback triggers a full recompute of the therapist's ratings_average.
type Feedback struct {
	Base
	PatientID     uuid.UUID `json:"patient_id" db:"patient_id"`
	TherapistID   uuid.UUID `json:"therapist_id" db:"therapist_id"`
	AppointmentID uuid.UUID `json:"appointment_id" db:"appointment_id"`
	Rating        int       `json:"rating" db:"rating"`
	Comments      *string   `json:"comments" db:"comments"`
}

type CreateFeedbackRequest struct {
	Rating   int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comments string `json:"comments"`
}

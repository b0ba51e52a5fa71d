package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending     BookingStatus = "Pending"
	BookingStatusConfirmed   BookingStatus = "Confirmed"
	BookingStatusCompleted   BookingStatus = "Completed"
	BookingStatusCancelled   BookingStatus = "Cancelled"
	BookingStatusRescheduled BookingStatus = "Rescheduled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted,
		BookingStatusCancelled, BookingStatusRescheduled:
		return true
	}
	return false
}

// Appointment is the stateful core of a care episode. Every save
// produces one notification for the therapist.
type Appointment struct {
	Base
	PatientID     uuid.UUID     `json:"patient_id" db:"patient_id"`
	TherapistID   uuid.UUID     `json:"therapist_id" db:"therapist_id"`
	ServiceID     uuid.UUID     `json:"service_id" db:"service_id"`
	SlotID        *uuid.UUID    `json:"slot_id" db:"slot_id"`
	ScheduledDate time.Time     `json:"scheduled_date" db:"scheduled_date"`
	ScheduledTime string        `json:"scheduled_time" db:"scheduled_time"`
	BookingStatus BookingStatus `json:"booking_status" db:"booking_status"`
	PaymentStatus string        `json:"payment_status" db:"payment_status"`
}

type BookAppointmentRequest struct {
	TherapistID   string `json:"therapist_id" binding:"required,uuid"`
	ServiceID     string `json:"service_id" binding:"required,uuid"`
	SlotID        string `json:"slot_id" binding:"omitempty,uuid"`
	ScheduledDate string `json:"scheduled_date" binding:"required,datetime=2006-01-02"`
	ScheduledTime string `json:"scheduled_time" binding:"required,datetime=15:04"`
}

type UpdateAppointmentRequest struct {
	BookingStatus *BookingStatus `json:"booking_status" binding:"omitempty,oneof=Pending Confirmed Completed Cancelled Rescheduled"`
	ScheduledDate *string        `json:"scheduled_date" binding:"omitempty,datetime=2006-01-02"`
	ScheduledTime *string        `json:"scheduled_time" binding:"omitempty,datetime=15:04"`
}

type AppointmentFilters struct {
	PatientID   uuid.UUID
	TherapistID uuid.UUID
	Status      BookingStatus
}

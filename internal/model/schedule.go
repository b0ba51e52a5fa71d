package model

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is a therapist-declared bookable window.
// (therapist_id, date, start_time, end_time) is unique in the store.
type AvailabilitySlot struct {
	Base
	TherapistID uuid.UUID `json:"therapist_id" db:"therapist_id"`
	Date        time.Time `json:"date" db:"date"`
	StartTime   string    `json:"start_time" db:"start_time"`
	EndTime     string    `json:"end_time" db:"end_time"`
	IsBooked    bool      `json:"is_booked" db:"is_booked"`
}

type CreateSlotRequest struct {
	TherapistID string `json:"therapist_id" binding:"omitempty,uuid"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime     string `json:"end_time" binding:"required,datetime=15:04"`
}

type SlotFilters struct {
	TherapistID uuid.UUID
	Date        time.Time
	OnlyOpen    bool
}

// TherapistLeave is a leave request; Admin approval stamps approved_by.
type TherapistLeave struct {
	Base
	TherapistID uuid.UUID  `json:"therapist_id" db:"therapist_id"`
	FromDate    time.Time  `json:"from_date" db:"from_date"`
	ToDate      time.Time  `json:"to_date" db:"to_date"`
	Reason      string     `json:"reason" db:"reason"`
	ApprovedBy  *uuid.UUID `json:"approved_by" db:"approved_by"`
	IsApproved  bool       `json:"is_approved" db:"is_approved"`
}

type CreateLeaveRequest struct {
	TherapistID string `json:"therapist_id" binding:"omitempty,uuid"`
	FromDate    string `json:"from_date" binding:"required,datetime=2006-01-02"`
	ToDate      string `json:"to_date" binding:"required,datetime=2006-01-02"`
	Reason      string `json:"reason" binding:"required"`
}

// LocationCoverage is a home-visit service area a therapist covers.
// Location is free text, a description or lat/lng pair.
type LocationCoverage struct {
	Base
	TherapistID     uuid.UUID `json:"therapist_id" db:"therapist_id"`
	ServiceAreaName string    `json:"service_area_name" db:"service_area_name"`
	Location        string    `json:"location" db:"location"`
}

type CreateCoverageRequest struct {
	ServiceAreaName string `json:"service_area_name" binding:"required,max=100"`
	Location        string `json:"location" binding:"required"`
}

type UpdateCoverageRequest struct {
	ServiceAreaName *string `json:"service_area_name" binding:"omitempty,max=100"`
	Location        *string `json:"location"`
}

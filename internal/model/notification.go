package model

import (
	"github.com/google/uuid"
)

const (
	NotificationCategoryReminder    = "Reminder"
	NotificationCategoryUpdate      = "Update"
	NotificationCategoryPromotion   = "Promotion"
	NotificationCategoryAppointment = "Appointment"
)

// Titles used by the booking workflow's notify-on-save hook.
const (
	NotificationTitleAppointmentCreated = "New Appointment Scheduled"
	NotificationTitleAppointmentUpdated = "Appointment Updated"
)

type Notification struct {
	Base
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	Title    string    `json:"title" db:"title"`
	Message  string    `json:"message" db:"message"`
	Category string    `json:"category" db:"category"`
	IsRead   bool      `json:"is_read" db:"is_read"`
}

type CreateNotificationRequest struct {
	UserID   string `json:"user_id" binding:"required,uuid"`
	Title    string `json:"title" binding:"required,max=100"`
	Message  string `json:"message" binding:"required"`
	Category string `json:"category" binding:"required,oneof=Reminder Update Promotion Appointment"`
}

// NotificationEvent is the payload published on the notifications
// channel when a row is created.
type NotificationEvent struct {
	NotificationID uuid.UUID `json:"notification_id"`
	UserID         uuid.UUID `json:"user_id"`
	Title          string    `json:"title"`
	Category       string    `json:"category"`
}

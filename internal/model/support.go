package model

import (
	"time"

	"github.com/google/uuid"
)

type EmergencyStatus string

const (
	EmergencyStatusOpen       EmergencyStatus = "Open"
	EmergencyStatusInProgress EmergencyStatus = "InProgress"
	EmergencyStatusResolved   EmergencyStatus = "Resolved"
)

// EmergencyRequest requires an assigned therapist once it leaves Open.
type EmergencyRequest struct {
	Base
	PatientID            uuid.UUID       `json:"patient_id" db:"patient_id"`
	ConditionDescription string          `json:"condition_description" db:"condition_description"`
	AssignedTherapistID  *uuid.UUID      `json:"assigned_therapist_id" db:"assigned_therapist_id"`
	Status               EmergencyStatus `json:"status" db:"status"`
}

type CreateEmergencyRequest struct {
	ConditionDescription string `json:"condition_description" binding:"required"`
}

type UpdateEmergencyRequest struct {
	Status              *EmergencyStatus `json:"status" binding:"omitempty,oneof=Open InProgress Resolved"`
	AssignedTherapistID *string          `json:"assigned_therapist_id" binding:"omitempty,uuid"`
}

type ChatMessage struct {
	Base
	SenderID    uuid.UUID `json:"sender_id" db:"sender_id"`
	ReceiverID  uuid.UUID `json:"receiver_id" db:"receiver_id"`
	MessageText string    `json:"message_text" db:"message_text"`
	Attachment  *string   `json:"attachment" db:"attachment"`
}

type SendChatMessageRequest struct {
	ReceiverID  string `json:"receiver_id" binding:"required,uuid"`
	MessageText string `json:"message_text" binding:"required"`
	Attachment  string `json:"attachment"`
}

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "InProgress"
	TicketStatusClosed     TicketStatus = "Closed"
)

type SupportTicket struct {
	Base
	UserID          uuid.UUID    `json:"user_id" db:"user_id"`
	IssueCategory   string       `json:"issue_category" db:"issue_category"`
	Description     string       `json:"description" db:"description"`
	Status          TicketStatus `json:"status" db:"status"`
	ResponseMessage *string      `json:"response_message" db:"response_message"`
}

type CreateTicketRequest struct {
	IssueCategory string `json:"issue_category" binding:"required,max=100"`
	Description   string `json:"description" binding:"required"`
}

type UpdateTicketRequest struct {
	Status          *TicketStatus `json:"status" binding:"omitempty,oneof=Open InProgress Closed"`
	ResponseMessage *string       `json:"response_message"`
}

const (
	ReminderChannelSMS      = "SMS"
	ReminderChannelEmail    = "Email"
	ReminderChannelWhatsApp = "WhatsApp"
)

// HomeExerciseReminder is dispatched by the background worker once due.
type HomeExerciseReminder struct {
	Base
	PatientID    uuid.UUID `json:"patient_id" db:"patient_id"`
	ExerciseID   uuid.UUID `json:"exercise_id" db:"exercise_id"`
	ReminderTime time.Time `json:"reminder_time" db:"reminder_time"`
	IsCompleted  bool      `json:"is_completed" db:"is_completed"`
	SentVia      string    `json:"sent_via" db:"sent_via"`
	DispatchedAt *time.Time `json:"dispatched_at" db:"dispatched_at"`
}

type CreateReminderRequest struct {
	PatientID    string `json:"patient_id" binding:"required,uuid"`
	ExerciseID   string `json:"exercise_id" binding:"required,uuid"`
	ReminderTime string `json:"reminder_time" binding:"required"`
	SentVia      string `json:"sent_via" binding:"omitempty,oneof=SMS Email WhatsApp"`
}

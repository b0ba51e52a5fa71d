package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
	apperrors "github.com/physiocare/physiocare-api/pkg/errors"
)

func (r *supportRepository) CreateEmergency(ctx context.Context, req *model.EmergencyRequest) error {
	query := `
		INSERT INTO emergency_requests (
			id, patient_id, condition_description, assigned_therapist_id, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	req.ID = uuid.New()
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		req.ID,
		req.PatientID,
		req.ConditionDescription,
		req.AssignedTherapistID,
		req.Status,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create emergency request: %w", err)
	}
	return nil
}

func (r *supportRepository) GetEmergency(ctx context.Context, id uuid.UUID) (*model.EmergencyRequest, error) {
	query := `
		SELECT id, patient_id, condition_description, assigned_therapist_id, status,
			   created_at, updated_at
		FROM emergency_requests
		WHERE id = $1
	`
	var req model.EmergencyRequest
	err := r.db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("emergency request %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get emergency request: %w", err)
	}
	return &req, nil
}

func (r *supportRepository) UpdateEmergency(ctx context.Context, req *model.EmergencyRequest) error {
	query := `
		UPDATE emergency_requests
		SET condition_description = $1, assigned_therapist_id = $2, status = $3,
			updated_at = $4
		WHERE id = $5
	`
	req.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		req.ConditionDescription,
		req.AssignedTherapistID,
		req.Status,
		req.UpdatedAt,
		req.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update emergency request: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("emergency request %s: %w", req.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *supportRepository) ListEmergencies(ctx context.Context, status model.EmergencyStatus) ([]*model.EmergencyRequest, error) {
	query := `
		SELECT id, patient_id, condition_description, assigned_therapist_id, status,
			   created_at, updated_at
		FROM emergency_requests
	`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	var reqs []*model.EmergencyRequest
	if err := r.db.SelectContext(ctx, &reqs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list emergency requests: %w", err)
	}
	return reqs, nil
}

func (r *supportRepository) CreateChatMessage(ctx context.Context, msg *model.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (
			id, sender_id, receiver_id, message_text, attachment,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	msg.ID = uuid.New()
	msg.CreatedAt = time.Now()
	msg.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		msg.ID,
		msg.SenderID,
		msg.ReceiverID,
		msg.MessageText,
		msg.Attachment,
		msg.CreatedAt,
		msg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

func (r *supportRepository) GetChatMessage(ctx context.Context, id uuid.UUID) (*model.ChatMessage, error) {
	query := `
		SELECT id, sender_id, receiver_id, message_text, attachment,
			   created_at, updated_at
		FROM chat_messages
		WHERE id = $1
	`
	var msg model.ChatMessage
	err := r.db.GetContext(ctx, &msg, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("chat message %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat message: %w", err)
	}
	return &msg, nil
}

func (r *supportRepository) DeleteChatMessage(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete chat message: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("chat message %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *supportRepository) ListConversation(ctx context.Context, userA, userB uuid.UUID) ([]*model.ChatMessage, error) {
	query := `
		SELECT id, sender_id, receiver_id, message_text, attachment,
			   created_at, updated_at
		FROM chat_messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at
	`
	var messages []*model.ChatMessage
	if err := r.db.SelectContext(ctx, &messages, query, userA, userB); err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	return messages, nil
}

func (r *supportRepository) CreateTicket(ctx context.Context, ticket *model.SupportTicket) error {
	query := `
		INSERT INTO support_tickets (
			id, user_id, issue_category, description, status, response_message,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	ticket.ID = uuid.New()
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		ticket.ID,
		ticket.UserID,
		ticket.IssueCategory,
		ticket.Description,
		ticket.Status,
		ticket.ResponseMessage,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

func (r *supportRepository) GetTicket(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error) {
	query := `
		SELECT id, user_id, issue_category, description, status, response_message,
			   created_at, updated_at
		FROM support_tickets
		WHERE id = $1
	`
	var ticket model.SupportTicket
	err := r.db.GetContext(ctx, &ticket, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ticket %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return &ticket, nil
}

func (r *supportRepository) UpdateTicket(ctx context.Context, ticket *model.SupportTicket) error {
	query := `
		UPDATE support_tickets
		SET status = $1, response_message = $2, updated_at = $3
		WHERE id = $4
	`
	ticket.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		ticket.Status,
		ticket.ResponseMessage,
		ticket.UpdatedAt,
		ticket.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("ticket %s: %w", ticket.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *supportRepository) ListTickets(ctx context.Context, userID uuid.UUID) ([]*model.SupportTicket, error) {
	query := `
		SELECT id, user_id, issue_category, description, status, response_message,
			   created_at, updated_at
		FROM support_tickets
	`
	args := []interface{}{}
	if userID != uuid.Nil {
		query += ` WHERE user_id = $1`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC`

	var tickets []*model.SupportTicket
	if err := r.db.SelectContext(ctx, &tickets, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

func (r *supportRepository) CreateReminder(ctx context.Context, reminder *model.HomeExerciseReminder) error {
	query := `
		INSERT INTO home_exercise_reminders (
			id, patient_id, exercise_id, reminder_time, is_completed,
			sent_via, dispatched_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	reminder.ID = uuid.New()
	reminder.CreatedAt = time.Now()
	reminder.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		reminder.ID,
		reminder.PatientID,
		reminder.ExerciseID,
		reminder.ReminderTime,
		reminder.IsCompleted,
		reminder.SentVia,
		reminder.DispatchedAt,
		reminder.CreatedAt,
		reminder.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

func (r *supportRepository) ListRemindersForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.HomeExerciseReminder, error) {
	query := `
		SELECT id, patient_id, exercise_id, reminder_time, is_completed,
			   sent_via, dispatched_at, created_at, updated_at
		FROM home_exercise_reminders
		WHERE patient_id = $1
		ORDER BY reminder_time
	`
	var reminders []*model.HomeExerciseReminder
	if err := r.db.SelectContext(ctx, &reminders, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

func (r *supportRepository) ListDueReminders(ctx context.Context, now time.Time) ([]*model.HomeExerciseReminder, error) {
	query := `
		SELECT id, patient_id, exercise_id, reminder_time, is_completed,
			   sent_via, dispatched_at, created_at, updated_at
		FROM home_exercise_reminders
		WHERE reminder_time <= $1
		  AND dispatched_at IS NULL
		  AND is_completed = false
		ORDER BY reminder_time
	`
	var reminders []*model.HomeExerciseReminder
	if err := r.db.SelectContext(ctx, &reminders, query, now); err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}
	return reminders, nil
}

func (r *supportRepository) MarkReminderDispatched(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE home_exercise_reminders
		SET dispatched_at = $1, updated_at = $2
		WHERE id = $3 AND dispatched_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, at, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to mark reminder dispatched: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("reminder %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *supportRepository) CompleteReminder(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE home_exercise_reminders
		SET is_completed = true, updated_at = $1
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to complete reminder: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("reminder %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

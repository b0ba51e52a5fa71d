package support

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/repository"
	apperrors "github.com/physiocare/physiocare-api/pkg/errors"
)

type Service struct {
	repo  repository.SupportRepository
	users repository.UserRepository
}

func NewService(repo repository.SupportRepository, users repository.UserRepository) *Service {
	return &Service{repo: repo, users: users}
}

func (s *Service) CreateEmergency(ctx context.Context, patientID uuid.UUID, req *model.CreateEmergencyRequest) (*model.EmergencyRequest, error) {
	er := &model.EmergencyRequest{
		PatientID:            patientID,
		ConditionDescription: req.ConditionDescription,
		Status:               model.EmergencyStatusOpen,
	}
	if err := s.repo.CreateEmergency(ctx, er); err != nil {
		return nil, fmt.Errorf("failed to create emergency request: %w", err)
	}
	return er, nil
}

func (s *Service) GetEmergency(ctx context.Context, id uuid.UUID) (*model.EmergencyRequest, error) {
	return s.repo.GetEmergency(ctx, id)
}

// UpdateEmergency enforces that any status past Open carries an
// assigned therapist.
func (s *Service) UpdateEmergency(ctx context.Context, id uuid.UUID, req *model.UpdateEmergencyRequest) (*model.EmergencyRequest, error) {
	er, err := s.repo.GetEmergency(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AssignedTherapistID != nil {
		therapistID, err := uuid.Parse(*req.AssignedTherapistID)
		if err != nil {
			return nil, apperrors.BadRequest("invalid therapist id", err)
		}
		therapist, err := s.users.Get(ctx, therapistID)
		if err != nil {
			return nil, err
		}
		if therapist.Role != model.RoleTherapist {
			return nil, apperrors.BadRequest("assigned user is not a therapist", nil)
		}
		er.AssignedTherapistID = &therapistID
	}
	if req.Status != nil {
		if *req.Status != model.EmergencyStatusOpen && er.AssignedTherapistID == nil {
			return nil, apperrors.BadRequest("a therapist must be assigned before progressing the request", nil)
		}
		er.Status = *req.Status
	}

	if err := s.repo.UpdateEmergency(ctx, er); err != nil {
		return nil, err
	}
	return er, nil
}

func (s *Service) ListEmergencies(ctx context.Context, status model.EmergencyStatus) ([]*model.EmergencyRequest, error) {
	return s.repo.ListEmergencies(ctx, status)
}

func (s *Service) SendChatMessage(ctx context.Context, senderID uuid.UUID, req *model.SendChatMessageRequest) (*model.ChatMessage, error) {
	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid receiver id", err)
	}
	if receiverID == senderID {
		return nil, apperrors.BadRequest("cannot message yourself", nil)
	}
	if _, err := s.users.Get(ctx, receiverID); err != nil {
		return nil, err
	}

	msg := &model.ChatMessage{
		SenderID:    senderID,
		ReceiverID:  receiverID,
		MessageText: req.MessageText,
	}
	if req.Attachment != "" {
		msg.Attachment = &req.Attachment
	}

	if err := s.repo.CreateChatMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return msg, nil
}

func (s *Service) DeleteChatMessage(ctx context.Context, id, senderID uuid.UUID) error {
	msg, err := s.repo.GetChatMessage(ctx, id)
	if err != nil {
		return err
	}
	if msg.SenderID != senderID {
		return apperrors.Forbidden("only the sender can delete a message")
	}
	return s.repo.DeleteChatMessage(ctx, id)
}

func (s *Service) ListConversation(ctx context.Context, userA, userB uuid.UUID) ([]*model.ChatMessage, error) {
	return s.repo.ListConversation(ctx, userA, userB)
}

func (s *Service) CreateTicket(ctx context.Context, userID uuid.UUID, req *model.CreateTicketRequest) (*model.SupportTicket, error) {
	ticket := &model.SupportTicket{
		UserID:        userID,
		IssueCategory: req.IssueCategory,
		Description:   req.Description,
		Status:        model.TicketStatusOpen,
	}
	if err := s.repo.CreateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	return ticket, nil
}

func (s *Service) GetTicket(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error) {
	return s.repo.GetTicket(ctx, id)
}

func (s *Service) UpdateTicket(ctx context.Context, id uuid.UUID, req *model.UpdateTicketRequest) (*model.SupportTicket, error) {
	ticket, err := s.repo.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		ticket.Status = *req.Status
	}
	if req.ResponseMessage != nil {
		ticket.ResponseMessage = req.ResponseMessage
	}

	if err := s.repo.UpdateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *Service) ListTickets(ctx context.Context, userID uuid.UUID) ([]*model.SupportTicket, error) {
	return s.repo.ListTickets(ctx, userID)
}

func (s *Service) CreateReminder(ctx context.Context, req *model.CreateReminderRequest) (*model.HomeExerciseReminder, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid patient id", err)
	}
	exerciseID, err := uuid.Parse(req.ExerciseID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid exercise id", err)
	}
	reminderTime, err := time.Parse(time.RFC3339, req.ReminderTime)
	if err != nil {
		return nil, apperrors.BadRequest("invalid reminder time", err)
	}

	reminder := &model.HomeExerciseReminder{
		PatientID:    patientID,
		ExerciseID:   exerciseID,
		ReminderTime: reminderTime,
		SentVia:      req.SentVia,
	}
	if reminder.SentVia == "" {
		reminder.SentVia = model.ReminderChannelEmail
	}

	if err := s.repo.CreateReminder(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return reminder, nil
}

func (s *Service) ListRemindersForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.HomeExerciseReminder, error) {
	return s.repo.ListRemindersForPatient(ctx, patientID)
}

func (s *Service) CompleteReminder(ctx context.Context, id uuid.UUID) error {
	return s.repo.CompleteReminder(ctx, id)
}

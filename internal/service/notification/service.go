package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/physiocare/physiocare-api/internal/model"
	"github.com/physiocare/physiocare-api/internal/repository"
	"github.com/physiocare/physiocare-api/pkg/logger"
	"github.com/physiocare/physiocare-api/pkg/messaging"
	"github.com/physiocare/physiocare-api/pkg/metrics"
)

const channelNotifications = "notifications"

type Service struct {
	repo    repository.NotificationRepository
	broker  messaging.Broker
	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewService(repo repository.NotificationRepository, broker messaging.Broker, m *metrics.Metrics, logger *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		broker:  broker,
		metrics: m,
		logger:  logger,
	}
}

// Notify persists the row and publishes the event. Broker failures are
// logged and counted, the row still stands.
func (s *Service) Notify(ctx context.Context, userID uuid.UUID, title, message, category string) (*model.Notification, error) {
	notification := &model.Notification{
		UserID:   userID,
		Title:    title,
		Message:  message,
		Category: category,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	if s.metrics != nil {
		s.metrics.NotificationsCreated.WithLabelValues(category).Inc()
	}

	if s.broker != nil {
		event := model.NotificationEvent{
			NotificationID: notification.ID,
			UserID:         userID,
			Title:          title,
			Category:       category,
		}
		if err := s.broker.Publish(ctx, channelNotifications, event); err != nil {
			s.logger.Error(err, "failed to publish notification event", "notification_id", notification.ID)
			if s.metrics != nil {
				s.metrics.NotificationPublishErr.Inc()
			}
		}
	}

	return notification, nil
}

func (s *Service) Create(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	return s.Notify(ctx, userID, req.Title, req.Message, req.Category)
}

func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*model.Notification, error) {
	return s.repo.ListForUser(ctx, userID, unreadOnly)
}

func (s *Service) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *Service) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

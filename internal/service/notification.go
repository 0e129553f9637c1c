package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskdeckapp/taskdeck-server/internal/domain"
	"github.com/taskdeckapp/taskdeck-server/internal/id"
	"github.com/taskdeckapp/taskdeck-server/internal/store"
)

// NotificationService manages per-user notification feeds.
// Emission is best effort: a failed insert is logged and never fails the
// operation that triggered it.
type NotificationService struct {
	store  store.Store
	logger *slog.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(store store.Store, logger *slog.Logger) *NotificationService {
	return &NotificationService{store: store, logger: logger}
}

// Emit records a notification for a user. Errors are swallowed after logging
// so callers can fire and forget.
func (s *NotificationService) Emit(ctx context.Context, userID string, ntype domain.NotificationType, message, boardID, cardID string) {
	n := &domain.Notification{
		UserID:         userID,
		Type:           ntype,
		Message:        message,
		RelatedBoardID: boardID,
		RelatedCardID:  cardID,
	}

	nid, err := id.Generate("ntf")
	if err != nil {
		s.logger.Error("generate notification ID", "error", err)
		return
	}
	n.ID = nid
	n.InitTimestamps()

	if err := s.store.CreateNotification(ctx, n); err != nil {
		s.logger.Error("emit notification",
			"user_id", userID,
			"type", string(ntype),
			"error", err,
		)
	}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string) ([]*domain.Notification, error) {
	notifications, err := s.store.ListNotifications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	if notifications == nil {
		notifications = []*domain.Notification{}
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for the user.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.store.CountUnreadNotifications(ctx, userID)
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.store.MarkNotificationRead(ctx, notificationID, userID)
}

// MarkAllRead marks all of the user's notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.store.MarkAllNotificationsRead(ctx, userID)
}

// Delete removes one of the user's notifications.
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID string) error {
	return s.store.DeleteNotification(ctx, notificationID, userID)
}

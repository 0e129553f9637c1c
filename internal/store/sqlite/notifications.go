package sqlite

import (
	"context"
	"database/sql"

	"github.com/taskdeckapp/taskdeck-server/internal/domain"
	domainerrors "github.com/taskdeckapp/taskdeck-server/internal/errors"
)

const notificationColumns = `id, created_at, updated_at, user_id, type, message, related_board_id, related_card_id, is_read`

func scanNotification(scanner interface{ Scan(dest ...any) error }) (*domain.Notification, error) {
	var n domain.Notification
	var createdAt, updatedAt, ntype string
	var relatedBoard, relatedCard sql.NullString
	var isRead int

	err := scanner.Scan(
		&n.ID,
		&createdAt,
		&updatedAt,
		&n.UserID,
		&ntype,
		&n.Message,
		&relatedBoard,
		&relatedCard,
		&isRead,
	)
	if err != nil {
		return nil, err
	}

	if n.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if n.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	n.Type = domain.NotificationType(ntype)
	n.RelatedBoardID = relatedBoard.String
	n.RelatedCardID = relatedCard.String
	n.IsRead = isRead != 0

	return &n, nil
}

// CreateNotification inserts a notification.
func (s *Store) CreateNotification(ctx context.Context, n *domain.Notification) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, created_at, updated_at, user_id, type, message, related_board_id, related_card_id, is_read)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID,
		formatTime(n.CreatedAt),
		formatTime(n.UpdatedAt),
		n.UserID,
		string(n.Type),
		n.Message,
		nullString(n.RelatedBoardID),
		nullString(n.RelatedCardID),
		boolToInt(n.IsRead),
	)
	return translateError(err)
}

// ListNotifications returns the user's notifications, newest first.
func (s *Store) ListNotifications(ctx context.Context, userID string) ([]*domain.Notification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE user_id = ? ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// CountUnreadNotifications returns how many unread notifications the user has.
func (s *Store) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`, userID).Scan(&n)
	return n, err
}

// MarkNotificationRead marks a single notification as read.
// The user ID guards against marking someone else's notification.
func (s *Store) MarkNotificationRead(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE notifications SET updated_at = ?, is_read = 1
		WHERE id = ? AND user_id = ?`,
		formatTime(timeNowUTC()), id, userID)
	if err != nil {
		return translateError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteNotification removes a single notification.
// The user ID guards against deleting someone else's notification.
func (s *Store) DeleteNotification(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return translateError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// MarkAllNotificationsRead marks every unread notification for the user as read.
func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE notifications SET updated_at = ?, is_read = 1
		WHERE user_id = ? AND is_read = 0`,
		formatTime(timeNowUTC()), userID)
	return translateError(err)
}

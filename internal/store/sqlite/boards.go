package sqlite

import (
	"context"

	"github.com/taskdeckapp/taskdeck-server/internal/domain"
	domainerrors "github.com/taskdeckapp/taskdeck-server/internal/errors"
)

const boardColumns = `id, created_at, updated_at, title, description, thumbnail, owner_id`

func scanBoard(scanner interface{ Scan(dest ...any) error }) (*domain.Board, error) {
	var b domain.Board
	var createdAt, updatedAt string

	err := scanner.Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
		&b.Title,
		&b.Description,
		&b.Thumbnail,
		&b.OwnerID,
	)
	if err != nil {
		return nil, err
	}

	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBoard inserts a new board.
func (s *Store) CreateBoard(ctx context.Context, board *domain.Board) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO boards (id, created_at, updated_at, title, description, thumbnail, owner_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		board.ID,
		formatTime(board.CreatedAt),
		formatTime(board.UpdatedAt),
		board.Title,
		board.Description,
		board.Thumbnail,
		board.OwnerID,
	)
	return translateError(err)
}

// GetBoard retrieves a board by ID.
func (s *Store) GetBoard(ctx context.Context, id string) (*domain.Board, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+boardColumns+` FROM boards WHERE id = ?`, id)

	b, err := scanBoard(row)
	if err != nil {
		return nil, translateError(err)
	}
	return b, nil
}

// UpdateBoard persists changes to a board's title, description, and thumbnail.
// The owner is never updated.
func (s *Store) UpdateBoard(ctx context.Context, board *domain.Board) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE boards SET updated_at = ?, title = ?, description = ?, thumbnail = ?
		WHERE id = ?`,
		formatTime(board.UpdatedAt),
		board.Title,
		board.Description,
		board.Thumbnail,
		board.ID,
	)
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

// DeleteBoard removes a board. Lists, cards, comments, assignments, and
// memberships go with it via foreign key cascades.
func (s *Store) DeleteBoard(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
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

// ListBoardsForUser returns every board the user owns or is a member of.
// Owned boards come first by creation time, then member boards by most
// recent activity.
func (s *Store) ListBoardsForUser(ctx context.Context, userID string) ([]*domain.Board, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+boardColumns+` FROM boards
		WHERE owner_id = ?
		   OR id IN (SELECT board_id FROM board_members WHERE user_id = ?)
		ORDER BY CASE WHEN owner_id = ? THEN 0 ELSE 1 END,
		         CASE WHEN owner_id = ? THEN created_at ELSE updated_at END DESC`,
		userID, userID, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []*domain.Board
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

// CountBoardMembers returns the number of membership rows for a board.
// The owner has no membership row, so callers add one for display counts.
func (s *Store) CountBoardMembers(ctx context.Context, boardID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM board_members WHERE board_id = ?`, boardID).Scan(&n)
	return n, err
}

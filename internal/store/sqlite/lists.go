package sqlite

import (
	"context"
	"database/sql"

	"github.com/taskdeckapp/taskdeck-server/internal/domain"
	domainerrors "github.com/taskdeckapp/taskdeck-server/internal/errors"
)

const listColumns = `id, created_at, updated_at, title, position, board_id`

func scanList(scanner interface{ Scan(dest ...any) error }) (*domain.List, error) {
	var l domain.List
	var createdAt, updatedAt string

	err := scanner.Scan(
		&l.ID,
		&createdAt,
		&updatedAt,
		&l.Title,
		&l.Position,
		&l.BoardID,
	)
	if err != nil {
		return nil, err
	}

	if l.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if l.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &l, nil
}

// CreateList inserts a new list.
func (s *Store) CreateList(ctx context.Context, list *domain.List) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lists (id, created_at, updated_at, title, position, board_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		list.ID,
		formatTime(list.CreatedAt),
		formatTime(list.UpdatedAt),
		list.Title,
		list.Position,
		list.BoardID,
	)
	return translateError(err)
}

// GetList retrieves a list by ID.
func (s *Store) GetList(ctx context.Context, id string) (*domain.List, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+listColumns+` FROM lists WHERE id = ?`, id)

	l, err := scanList(row)
	if err != nil {
		return nil, translateError(err)
	}
	return l, nil
}

// UpdateList persists changes to a list's title and position.
// The owning board is never changed.
func (s *Store) UpdateList(ctx context.Context, list *domain.List) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE lists SET updated_at = ?, title = ?, position = ?
		WHERE id = ?`,
		formatTime(list.UpdatedAt),
		list.Title,
		list.Position,
		list.ID,
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

// DeleteList removes a list. Its cards cascade.
func (s *Store) DeleteList(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id)
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

// ListsForBoard returns the board's lists ordered ascending by position.
func (s *Store) ListsForBoard(ctx context.Context, boardID string) ([]*domain.List, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+listColumns+` FROM lists WHERE board_id = ? ORDER BY position ASC`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []*domain.List
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// MaxListPosition returns the highest list position on a board.
// The bool is false when the board has no lists.
func (s *Store) MaxListPosition(ctx context.Context, boardID string) (int, bool, error) {
	var max sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(position) FROM lists WHERE board_id = ?`, boardID).Scan(&max)
	if err != nil {
		return 0, false, err
	}
	if !max.Valid {
		return 0, false, nil
	}
	return int(max.Int64), true, nil
}

// BoardIDForList resolves the board that owns a list.
func (s *Store) BoardIDForList(ctx context.Context, listID string) (string, error) {
	var boardID string
	err := s.db.QueryRowContext(ctx,
		`SELECT board_id FROM lists WHERE id = ?`, listID).Scan(&boardID)
	if err != nil {
		return "", translateError(err)
	}
	return boardID, nil
}

package sqlite

import (
	"context"

	"github.com/taskdeckapp/taskdeck-server/internal/domain"
	domainerrors "github.com/taskdeckapp/taskdeck-server/internal/errors"
)

const memberColumns = `id, created_at, updated_at, board_id, user_id, role`

func scanMember(scanner interface{ Scan(dest ...any) error }) (*domain.BoardMember, error) {
	var m domain.BoardMember
	var createdAt, updatedAt, role string

	err := scanner.Scan(
		&m.ID,
		&createdAt,
		&updatedAt,
		&m.BoardID,
		&m.UserID,
		&role,
	)
	if err != nil {
		return nil, err
	}

	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	m.Role = domain.Role(role)

	return &m, nil
}

// AddBoardMember inserts a membership row.
// Returns errors.ErrAlreadyExists if the user is already a member.
func (s *Store) AddBoardMember(ctx context.Context, member *domain.BoardMember) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO board_members (id, created_at, updated_at, board_id, user_id, role)
		VALUES (?, ?, ?, ?, ?, ?)`,
		member.ID,
		formatTime(member.CreatedAt),
		formatTime(member.UpdatedAt),
		member.BoardID,
		member.UserID,
		string(member.Role),
	)
	return translateError(err)
}

// GetBoardMember retrieves the membership row for a user on a board.
func (s *Store) GetBoardMember(ctx context.Context, boardID, userID string) (*domain.BoardMember, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM board_members WHERE board_id = ? AND user_id = ?`,
		boardID, userID)

	m, err := scanMember(row)
	if err != nil {
		return nil, translateError(err)
	}
	return m, nil
}

// ListBoardMembers returns the board's membership rows joined with member
// profiles, oldest membership first. The owner is not included.
func (s *Store) ListBoardMembers(ctx context.Context, boardID string) ([]*domain.BoardMemberWithUser, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.created_at, m.updated_at, m.board_id, m.user_id, m.role,
		       u.id, u.username, u.email, u.avatar_url
		FROM board_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.board_id = ?
		ORDER BY m.created_at ASC`,
		boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*domain.BoardMemberWithUser
	for rows.Next() {
		var m domain.BoardMemberWithUser
		var createdAt, updatedAt, role string

		err := rows.Scan(
			&m.ID,
			&createdAt,
			&updatedAt,
			&m.BoardID,
			&m.UserID,
			&role,
			&m.User.ID,
			&m.User.Username,
			&m.User.Email,
			&m.User.AvatarURL,
		)
		if err != nil {
			return nil, err
		}

		if m.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if m.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		m.Role = domain.Role(role)

		members = append(members, &m)
	}
	return members, rows.Err()
}

// UpdateBoardMemberRole changes a member's role.
func (s *Store) UpdateBoardMemberRole(ctx context.Context, boardID, userID string, role domain.Role) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE board_members SET updated_at = ?, role = ?
		WHERE board_id = ? AND user_id = ?`,
		formatTime(timeNowUTC()),
		string(role),
		boardID, userID,
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

// RemoveBoardMember deletes a membership row.
func (s *Store) RemoveBoardMember(ctx context.Context, boardID, userID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM board_members WHERE board_id = ? AND user_id = ?`,
		boardID, userID)
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

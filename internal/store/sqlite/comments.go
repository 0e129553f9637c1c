package sqlite

import (
	"context"

	"github.com/taskdeckapp/taskdeck-server/internal/domain"
	domainerrors "github.com/taskdeckapp/taskdeck-server/internal/errors"
)

const commentColumns = `id, created_at, updated_at, content, card_id, author_id`

func scanComment(scanner interface{ Scan(dest ...any) error }) (*domain.Comment, error) {
	var c domain.Comment
	var createdAt, updatedAt string

	err := scanner.Scan(
		&c.ID,
		&createdAt,
		&updatedAt,
		&c.Content,
		&c.CardID,
		&c.AuthorID,
	)
	if err != nil {
		return nil, err
	}

	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &c, nil
}

// CreateComment inserts a new comment.
func (s *Store) CreateComment(ctx context.Context, comment *domain.Comment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, created_at, updated_at, content, card_id, author_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		comment.ID,
		formatTime(comment.CreatedAt),
		formatTime(comment.UpdatedAt),
		comment.Content,
		comment.CardID,
		comment.AuthorID,
	)
	return translateError(err)
}

// GetComment retrieves a comment by ID.
func (s *Store) GetComment(ctx context.Context, id string) (*domain.Comment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = ?`, id)

	c, err := scanComment(row)
	if err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

// UpdateComment persists a content edit. Card and author never change.
func (s *Store) UpdateComment(ctx context.Context, comment *domain.Comment) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE comments SET updated_at = ?, content = ?
		WHERE id = ?`,
		formatTime(comment.UpdatedAt),
		comment.Content,
		comment.ID,
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

// DeleteComment removes a comment.
func (s *Store) DeleteComment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
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

// CommentsForCard returns the card's comments joined with author profiles,
// newest first.
func (s *Store) CommentsForCard(ctx context.Context, cardID string) ([]*domain.CommentWithAuthor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.created_at, c.updated_at, c.content, c.card_id, c.author_id,
		       u.id, u.username, u.email, u.avatar_url
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.card_id = ?
		ORDER BY c.created_at DESC`, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*domain.CommentWithAuthor
	for rows.Next() {
		var c domain.CommentWithAuthor
		var createdAt, updatedAt string

		err := rows.Scan(
			&c.ID,
			&createdAt,
			&updatedAt,
			&c.Content,
			&c.CardID,
			&c.AuthorID,
			&c.Author.ID,
			&c.Author.Username,
			&c.Author.Email,
			&c.Author.AvatarURL,
		)
		if err != nil {
			return nil, err
		}

		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		c.IsEdited = c.Comment.IsEdited()

		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json/v2"
	"fmt"
	"time"

	"github.com/taskdeckapp/taskdeck-server/internal/domain"
	domainerrors "github.com/taskdeckapp/taskdeck-server/internal/errors"
)

const cardColumns = `id, created_at, updated_at, title, description, due_date, tags, position, list_id`

// marshalTags encodes a tag slice as a JSON array for storage.
func marshalTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("marshal tags: %w", err)
	}
	return string(b), nil
}

func unmarshalTags(s string) ([]string, error) {
	if s == "" || s == "[]" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	return tags, nil
}

func scanCard(scanner interface{ Scan(dest ...any) error }) (*domain.Card, error) {
	var c domain.Card
	var createdAt, updatedAt, tags string
	var dueDate sql.NullString

	err := scanner.Scan(
		&c.ID,
		&createdAt,
		&updatedAt,
		&c.Title,
		&c.Description,
		&dueDate,
		&tags,
		&c.Position,
		&c.ListID,
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
	if c.DueDate, err = parseNullableTime(dueDate); err != nil {
		return nil, err
	}
	if c.Tags, err = unmarshalTags(tags); err != nil {
		return nil, err
	}

	return &c, nil
}

// CreateCard inserts a new card.
func (s *Store) CreateCard(ctx context.Context, card *domain.Card) error {
	tags, err := marshalTags(card.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cards (id, created_at, updated_at, title, description, due_date, tags, position, list_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		card.ID,
		formatTime(card.CreatedAt),
		formatTime(card.UpdatedAt),
		card.Title,
		card.Description,
		nullTime(card.DueDate),
		tags,
		card.Position,
		card.ListID,
	)
	return translateError(err)
}

// GetCard retrieves a card by ID.
func (s *Store) GetCard(ctx context.Context, id string) (*domain.Card, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)

	c, err := scanCard(row)
	if err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

// UpdateCard persists changes to a card, including moves between lists.
func (s *Store) UpdateCard(ctx context.Context, card *domain.Card) error {
	tags, err := marshalTags(card.Tags)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE cards SET updated_at = ?, title = ?, description = ?, due_date = ?, tags = ?, position = ?, list_id = ?
		WHERE id = ?`,
		formatTime(card.UpdatedAt),
		card.Title,
		card.Description,
		nullTime(card.DueDate),
		tags,
		card.Position,
		card.ListID,
		card.ID,
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

// DeleteCard removes a card. Comments and assignments cascade.
func (s *Store) DeleteCard(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
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

// CardsForList returns the list's cards ordered ascending by position.
func (s *Store) CardsForList(ctx context.Context, listID string) ([]*domain.Card, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE list_id = ? ORDER BY position ASC`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// MaxCardPosition returns the highest card position in a list.
// The bool is false when the list has no cards.
func (s *Store) MaxCardPosition(ctx context.Context, listID string) (int, bool, error) {
	var max sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(position) FROM cards WHERE list_id = ?`, listID).Scan(&max)
	if err != nil {
		return 0, false, err
	}
	if !max.Valid {
		return 0, false, nil
	}
	return int(max.Int64), true, nil
}

// BoardIDForCard resolves the board that owns a card through its list.
func (s *Store) BoardIDForCard(ctx context.Context, cardID string) (string, error) {
	var boardID string
	err := s.db.QueryRowContext(ctx, `
		SELECT l.board_id FROM cards c
		JOIN lists l ON l.id = c.list_id
		WHERE c.id = ?`, cardID).Scan(&boardID)
	if err != nil {
		return "", translateError(err)
	}
	return boardID, nil
}

// AddCardAssignment assigns a user to a card.
// Returns errors.ErrAlreadyExists if the assignment is already present.
func (s *Store) AddCardAssignment(ctx context.Context, cardID, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO card_assignments (card_id, user_id, created_at)
		VALUES (?, ?, ?)`,
		cardID, userID, formatTime(time.Now()))
	return translateError(err)
}

// RemoveCardAssignment unassigns a user from a card.
func (s *Store) RemoveCardAssignment(ctx context.Context, cardID, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM card_assignments WHERE card_id = ? AND user_id = ?`,
		cardID, userID)
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

// ListCardAssignees returns the public profiles of users assigned to a card,
// ordered by assignment time.
func (s *Store) ListCardAssignees(ctx context.Context, cardID string) ([]domain.UserSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.email, u.avatar_url
		FROM card_assignments a
		JOIN users u ON u.id = a.user_id
		WHERE a.card_id = ?
		ORDER BY a.created_at ASC`, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.UserSummary
	for rows.Next() {
		var u domain.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.AvatarURL); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// IsCardAssigned reports whether the user is already assigned to the card.
func (s *Store) IsCardAssigned(ctx context.Context, cardID, userID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM card_assignments WHERE card_id = ? AND user_id = ?`,
		cardID, userID).Scan(&n)
	return n > 0, err
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskdeckapp/taskdeck-server/internal/domain"
	"github.com/taskdeckapp/taskdeck-server/internal/errors"
	"github.com/taskdeckapp/taskdeck-server/internal/id"
	"github.com/taskdeckapp/taskdeck-server/internal/store"
)

// CardService orchestrates card operations, including cross-list moves and
// assignments.
type CardService struct {
	store         store.Store
	perms         *PermissionService
	notifications *NotificationService
	logger        *slog.Logger
}

// NewCardService creates a new card service.
func NewCardService(store store.Store, perms *PermissionService, notifications *NotificationService, logger *slog.Logger) *CardService {
	return &CardService{
		store:         store,
		perms:         perms,
		notifications: notifications,
		logger:        logger,
	}
}

// CreateCardInput carries the fields for creating a card.
// DueDate is the raw wire string; empty means no due date.
// A nil Position appends the card at the end of the list.
type CreateCardInput struct {
	Title       string
	Description string
	DueDate     string
	Tags        []string
	Position    *int
}

// UpdateCardInput carries a partial card update. Nil fields are left as is.
// A non-nil ListID moves the card to another list; the destination board's
// permissions are re-checked before the move.
type UpdateCardInput struct {
	Title       *string
	Description *string
	DueDate     *string
	Tags        []string
	Position    *int
	ListID      *string
}

// nextCardPosition computes the append position for a list:
// one past the current maximum, or zero in an empty list.
func (s *CardService) nextCardPosition(ctx context.Context, listID string) (int, error) {
	max, ok, err := s.store.MaxCardPosition(ctx, listID)
	if err != nil {
		return 0, fmt.Errorf("max card position: %w", err)
	}
	if !ok {
		return 0, nil
	}
	return max + 1, nil
}

// CreateCard creates a card in the list. Requires edit permission on the
// owning board. An omitted position appends at the end of the list.
func (s *CardService) CreateCard(ctx context.Context, userID, listID string, in CreateCardInput) (*domain.Card, error) {
	if _, _, err := s.perms.RequireForList(ctx, listID, userID, domain.ActionEdit); err != nil {
		return nil, err
	}

	dueDate, err := domain.ParseDueDate(in.DueDate)
	if err != nil {
		return nil, errors.Validation(err.Error())
	}

	position := 0
	if in.Position != nil {
		position = *in.Position
	} else {
		p, err := s.nextCardPosition(ctx, listID)
		if err != nil {
			return nil, err
		}
		position = p
	}

	cardID, err := id.Generate("card")
	if err != nil {
		return nil, fmt.Errorf("generate card ID: %w", err)
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	card := &domain.Card{
		Entity:      domain.Entity{ID: cardID},
		Title:       in.Title,
		Description: in.Description,
		DueDate:     dueDate,
		Tags:        tags,
		Position:    position,
		ListID:      listID,
	}
	card.InitTimestamps()

	if err := s.store.CreateCard(ctx, card); err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}

	s.logger.Info("card created", "card_id", cardID, "list_id", listID, "position", position)
	return card, nil
}

// CardsForList returns the list's cards in position order with assignees.
// Requires view permission on the owning board.
func (s *CardService) CardsForList(ctx context.Context, userID, listID string) ([]domain.CardWithAssignees, error) {
	if _, _, err := s.perms.RequireForList(ctx, listID, userID, domain.ActionView); err != nil {
		return nil, err
	}

	cards, err := s.store.CardsForList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("cards for list: %w", err)
	}

	out := make([]domain.CardWithAssignees, 0, len(cards))
	for _, c := range cards {
		assignees, err := s.store.ListCardAssignees(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("list card assignees: %w", err)
		}
		out = append(out, domain.CardWithAssignees{Card: *c, Assignees: assignees})
	}
	return out, nil
}

// GetCard returns a card with its assignees. Requires view permission.
func (s *CardService) GetCard(ctx context.Context, userID, cardID string) (*domain.CardWithAssignees, error) {
	if _, _, err := s.perms.RequireForCard(ctx, cardID, userID, domain.ActionView); err != nil {
		return nil, err
	}

	card, err := s.store.GetCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}

	assignees, err := s.store.ListCardAssignees(ctx, card.ID)
	if err != nil {
		return nil, fmt.Errorf("list card assignees: %w", err)
	}

	return &domain.CardWithAssignees{Card: *card, Assignees: assignees}, nil
}

// UpdateCard applies a partial update to a card. Requires edit permission on
// the owning board. Moving the card to another list re-checks edit permission
// on the destination board and, unless the caller supplied a position, the
// card is appended at the end of the destination list.
func (s *CardService) UpdateCard(ctx context.Context, userID, cardID string, in UpdateCardInput) (*domain.Card, error) {
	if _, _, err := s.perms.RequireForCard(ctx, cardID, userID, domain.ActionEdit); err != nil {
		return nil, err
	}

	card, err := s.store.GetCard(ctx, cardID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("card %s not found", cardID)
		}
		return nil, fmt.Errorf("get card: %w", err)
	}

	if in.Title != nil {
		card.Title = *in.Title
	}
	if in.Description != nil {
		card.Description = *in.Description
	}
	if in.DueDate != nil {
		dueDate, err := domain.ParseDueDate(*in.DueDate)
		if err != nil {
			return nil, errors.Validation(err.Error())
		}
		card.DueDate = dueDate
	}
	if in.Tags != nil {
		card.Tags = in.Tags
	}

	if in.ListID != nil && *in.ListID != card.ListID {
		destListID := *in.ListID
		if _, _, err := s.perms.RequireForList(ctx, destListID, userID, domain.ActionEdit); err != nil {
			return nil, err
		}
		card.ListID = destListID

		if in.Position != nil {
			card.Position = *in.Position
		} else {
			p, err := s.nextCardPosition(ctx, destListID)
			if err != nil {
				return nil, err
			}
			card.Position = p
		}
	} else if in.Position != nil {
		card.Position = *in.Position
	}

	card.Touch()

	if err := s.store.UpdateCard(ctx, card); err != nil {
		return nil, fmt.Errorf("update card: %w", err)
	}
	return card, nil
}

// DeleteCard deletes a card, its comments, and its assignments.
// Requires edit permission on the owning board.
func (s *CardService) DeleteCard(ctx context.Context, userID, cardID string) error {
	if _, _, err := s.perms.RequireForCard(ctx, cardID, userID, domain.ActionEdit); err != nil {
		return err
	}

	if err := s.store.DeleteCard(ctx, cardID); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}

	s.logger.Info("card deleted", "card_id", cardID, "user_id", userID)
	return nil
}

// AssignUser assigns a board participant to a card. Requires edit permission.
// The assignee must be the board owner or a member; assigning an outsider or
// double-assigning is a validation error.
func (s *CardService) AssignUser(ctx context.Context, userID, cardID, assigneeID string) error {
	boardID, _, err := s.perms.RequireForCard(ctx, cardID, userID, domain.ActionEdit)
	if err != nil {
		return err
	}

	assigneeRole, err := s.perms.ResolveRole(ctx, boardID, assigneeID)
	if err != nil {
		return err
	}
	if assigneeRole == domain.RoleNone {
		return errors.Validation("the user is not a participant of this board")
	}

	assigned, err := s.store.IsCardAssigned(ctx, cardID, assigneeID)
	if err != nil {
		return fmt.Errorf("check card assignment: %w", err)
	}
	if assigned {
		return errors.Validation("the user is already assigned to this card")
	}

	if err := s.store.AddCardAssignment(ctx, cardID, assigneeID); err != nil {
		// The unique constraint backstops a concurrent assignment.
		if errors.Is(err, errors.ErrAlreadyExists) {
			return errors.Validation("the user is already assigned to this card")
		}
		return fmt.Errorf("add card assignment: %w", err)
	}

	if card, err := s.store.GetCard(ctx, cardID); err == nil && assigneeID != userID {
		s.notifications.Emit(ctx, assigneeID, domain.NotificationCardAssignment,
			fmt.Sprintf("You were assigned to the card %q", card.Title), boardID, cardID)
	}

	return nil
}

// Assignees returns the card's assignees. Requires view permission.
func (s *CardService) Assignees(ctx context.Context, userID, cardID string) ([]domain.UserSummary, error) {
	if _, _, err := s.perms.RequireForCard(ctx, cardID, userID, domain.ActionView); err != nil {
		return nil, err
	}

	assignees, err := s.store.ListCardAssignees(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("list card assignees: %w", err)
	}
	if assignees == nil {
		assignees = []domain.UserSummary{}
	}
	return assignees, nil
}

// UnassignUser removes an assignment from a card. Requires edit permission.
// Removing an assignment that does not exist is a validation error.
func (s *CardService) UnassignUser(ctx context.Context, userID, cardID, assigneeID string) error {
	if _, _, err := s.perms.RequireForCard(ctx, cardID, userID, domain.ActionEdit); err != nil {
		return err
	}

	if err := s.store.RemoveCardAssignment(ctx, cardID, assigneeID); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.Validation("the user is not assigned to this card")
		}
		return fmt.Errorf("remove card assignment: %w", err)
	}
	return nil
}

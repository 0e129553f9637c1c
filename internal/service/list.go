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

// ListService orchestrates list operations within a board.
type ListService struct {
	store  store.Store
	perms  *PermissionService
	logger *slog.Logger
}

// NewListService creates a new list service.
func NewListService(store store.Store, perms *PermissionService, logger *slog.Logger) *ListService {
	return &ListService{store: store, perms: perms, logger: logger}
}

// CreateListInput carries the fields for creating a list.
// A nil Position appends the list at the end of the board.
type CreateListInput struct {
	Title    string
	Position *int
}

// UpdateListInput carries a partial list update. Nil fields are left as is.
type UpdateListInput struct {
	Title    *string
	Position *int
}

// nextListPosition computes the append position for a board:
// one past the current maximum, or zero on an empty board.
func (s *ListService) nextListPosition(ctx context.Context, boardID string) (int, error) {
	max, ok, err := s.store.MaxListPosition(ctx, boardID)
	if err != nil {
		return 0, fmt.Errorf("max list position: %w", err)
	}
	if !ok {
		return 0, nil
	}
	return max + 1, nil
}

// CreateList creates a list on the board. Requires edit permission.
// An omitted position appends; an explicit position is stored as given.
func (s *ListService) CreateList(ctx context.Context, userID, boardID string, in CreateListInput) (*domain.List, error) {
	if _, err := s.perms.Require(ctx, boardID, userID, domain.ActionEdit); err != nil {
		return nil, err
	}

	position := 0
	if in.Position != nil {
		position = *in.Position
	} else {
		p, err := s.nextListPosition(ctx, boardID)
		if err != nil {
			return nil, err
		}
		position = p
	}

	listID, err := id.Generate("list")
	if err != nil {
		return nil, fmt.Errorf("generate list ID: %w", err)
	}

	list := &domain.List{
		Entity:   domain.Entity{ID: listID},
		Title:    in.Title,
		Position: position,
		BoardID:  boardID,
	}
	list.InitTimestamps()

	if err := s.store.CreateList(ctx, list); err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}

	s.logger.Info("list created", "list_id", listID, "board_id", boardID, "position", position)
	return list, nil
}

// ListsForBoard returns the board's lists in position order. Requires view.
func (s *ListService) ListsForBoard(ctx context.Context, userID, boardID string) ([]*domain.List, error) {
	if _, err := s.perms.Require(ctx, boardID, userID, domain.ActionView); err != nil {
		return nil, err
	}

	lists, err := s.store.ListsForBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("lists for board: %w", err)
	}
	if lists == nil {
		lists = []*domain.List{}
	}
	return lists, nil
}

// GetList returns a single list with its cards and their assignees.
// Requires view permission on the owning board.
func (s *ListService) GetList(ctx context.Context, userID, listID string) (*domain.ListWithCards, error) {
	if _, _, err := s.perms.RequireForList(ctx, listID, userID, domain.ActionView); err != nil {
		return nil, err
	}

	list, err := s.store.GetList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}

	cards, err := s.store.CardsForList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("cards for list: %w", err)
	}

	out := &domain.ListWithCards{List: *list, Cards: make([]domain.CardWithAssignees, 0, len(cards))}
	for _, c := range cards {
		assignees, err := s.store.ListCardAssignees(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("list card assignees: %w", err)
		}
		out.Cards = append(out.Cards, domain.CardWithAssignees{Card: *c, Assignees: assignees})
	}
	return out, nil
}

// UpdateList applies a partial update to a list's title and position.
// Requires edit permission on the owning board. Position values are trusted
// as given; clients own the reordering math.
func (s *ListService) UpdateList(ctx context.Context, userID, listID string, in UpdateListInput) (*domain.List, error) {
	if _, _, err := s.perms.RequireForList(ctx, listID, userID, domain.ActionEdit); err != nil {
		return nil, err
	}

	list, err := s.store.GetList(ctx, listID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("list %s not found", listID)
		}
		return nil, fmt.Errorf("get list: %w", err)
	}

	if in.Title != nil {
		list.Title = *in.Title
	}
	if in.Position != nil {
		list.Position = *in.Position
	}
	list.Touch()

	if err := s.store.UpdateList(ctx, list); err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}
	return list, nil
}

// DeleteList deletes a list and its cards.
// Requires edit permission on the owning board.
func (s *ListService) DeleteList(ctx context.Context, userID, listID string) error {
	if _, _, err := s.perms.RequireForList(ctx, listID, userID, domain.ActionEdit); err != nil {
		return err
	}

	if err := s.store.DeleteList(ctx, listID); err != nil {
		return fmt.Errorf("delete list: %w", err)
	}

	s.logger.Info("list deleted", "list_id", listID, "user_id", userID)
	return nil
}

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

// BoardService orchestrates board lifecycle and membership operations.
type BoardService struct {
	store         store.Store
	perms         *PermissionService
	notifications *NotificationService
	logger        *slog.Logger
}

// NewBoardService creates a new board service.
func NewBoardService(store store.Store, perms *PermissionService, notifications *NotificationService, logger *slog.Logger) *BoardService {
	return &BoardService{
		store:         store,
		perms:         perms,
		notifications: notifications,
		logger:        logger,
	}
}

// CreateBoardInput carries the fields for creating a board.
type CreateBoardInput struct {
	Title       string
	Description string
	Thumbnail   string
}

// UpdateBoardInput carries a partial board update. Nil fields are left as is.
type UpdateBoardInput struct {
	Title       *string
	Description *string
	Thumbnail   *string
}

// BoardDetail is a board with its role annotation, lists, and cards eagerly
// loaded for the board page.
type BoardDetail struct {
	domain.BoardWithRole
	Lists []domain.ListWithCards `json:"lists"`
}

// CreateBoard creates a board owned by the caller.
// Creation is unconditional for any authenticated user.
func (s *BoardService) CreateBoard(ctx context.Context, userID string, in CreateBoardInput) (*domain.BoardWithRole, error) {
	boardID, err := id.Generate("board")
	if err != nil {
		return nil, fmt.Errorf("generate board ID: %w", err)
	}

	board := &domain.Board{
		Entity:      domain.Entity{ID: boardID},
		Title:       in.Title,
		Description: in.Description,
		Thumbnail:   in.Thumbnail,
		OwnerID:     userID,
	}
	board.InitTimestamps()

	if err := s.store.CreateBoard(ctx, board); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	s.logger.Info("board created", "board_id", boardID, "owner_id", userID)

	return &domain.BoardWithRole{
		Board:       *board,
		UserRole:    domain.RoleOwner,
		MemberCount: 1,
	}, nil
}

// ListBoards returns every board the caller owns or is a member of, owned
// boards first, each annotated with the caller's role and the member count.
func (s *BoardService) ListBoards(ctx context.Context, userID string) ([]*domain.BoardWithRole, error) {
	boards, err := s.store.ListBoardsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}

	out := make([]*domain.BoardWithRole, 0, len(boards))
	for _, b := range boards {
		role := domain.RoleOwner
		if b.OwnerID != userID {
			member, err := s.store.GetBoardMember(ctx, b.ID, userID)
			if err != nil {
				return nil, fmt.Errorf("get board member: %w", err)
			}
			role = member.Role
		}

		count, err := s.store.CountBoardMembers(ctx, b.ID)
		if err != nil {
			return nil, fmt.Errorf("count board members: %w", err)
		}

		out = append(out, &domain.BoardWithRole{
			Board:       *b,
			UserRole:    role,
			MemberCount: count + 1, // stored memberships plus the owner
		})
	}
	return out, nil
}

// GetBoard returns the full board detail: lists in position order, each with
// its cards and assignees. Requires view permission.
func (s *BoardService) GetBoard(ctx context.Context, userID, boardID string) (*BoardDetail, error) {
	role, err := s.perms.Require(ctx, boardID, userID, domain.ActionView)
	if err != nil {
		return nil, err
	}

	board, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}

	count, err := s.store.CountBoardMembers(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("count board members: %w", err)
	}

	lists, err := s.store.ListsForBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("lists for board: %w", err)
	}

	detail := &BoardDetail{
		BoardWithRole: domain.BoardWithRole{
			Board:       *board,
			UserRole:    role,
			MemberCount: count + 1,
		},
		Lists: make([]domain.ListWithCards, 0, len(lists)),
	}

	for _, l := range lists {
		cards, err := s.store.CardsForList(ctx, l.ID)
		if err != nil {
			return nil, fmt.Errorf("cards for list: %w", err)
		}

		lwc := domain.ListWithCards{List: *l, Cards: make([]domain.CardWithAssignees, 0, len(cards))}
		for _, c := range cards {
			assignees, err := s.store.ListCardAssignees(ctx, c.ID)
			if err != nil {
				return nil, fmt.Errorf("list card assignees: %w", err)
			}
			lwc.Cards = append(lwc.Cards, domain.CardWithAssignees{Card: *c, Assignees: assignees})
		}
		detail.Lists = append(detail.Lists, lwc)
	}

	return detail, nil
}

// UpdateBoard applies a partial update to board metadata.
// Only the owner may update a board; the owner itself never changes.
func (s *BoardService) UpdateBoard(ctx context.Context, userID, boardID string, in UpdateBoardInput) (*domain.Board, error) {
	role, err := s.perms.ResolveRole(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleOwner {
		return nil, errors.Forbidden("only the board owner may update the board")
	}

	board, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}

	if in.Title != nil {
		board.Title = *in.Title
	}
	if in.Description != nil {
		board.Description = *in.Description
	}
	if in.Thumbnail != nil {
		board.Thumbnail = *in.Thumbnail
	}
	board.Touch()

	if err := s.store.UpdateBoard(ctx, board); err != nil {
		return nil, fmt.Errorf("update board: %w", err)
	}
	return board, nil
}

// DeleteBoard deletes a board and everything under it.
// Only the owner may delete a board.
func (s *BoardService) DeleteBoard(ctx context.Context, userID, boardID string) error {
	if _, err := s.perms.Require(ctx, boardID, userID, domain.ActionDelete); err != nil {
		return err
	}

	if err := s.store.DeleteBoard(ctx, boardID); err != nil {
		return fmt.Errorf("delete board: %w", err)
	}

	s.logger.Info("board deleted", "board_id", boardID, "user_id", userID)
	return nil
}

// InviteMember adds a user to the board by username with the given role.
// Requires invite permission. The target must exist and must not already be
// a member (the owner counts as a member).
func (s *BoardService) InviteMember(ctx context.Context, userID, boardID, username, roleStr string) (*domain.BoardMemberWithUser, error) {
	if _, err := s.perms.Require(ctx, boardID, userID, domain.ActionInviteMembers); err != nil {
		return nil, err
	}

	role, ok := domain.ParseMemberRole(roleStr)
	if !ok {
		return nil, errors.Validationf("invalid role %q: must be moderator or visitor", roleStr)
	}

	target, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("user %q not found", username)
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}

	targetRole, err := s.perms.ResolveRole(ctx, boardID, target.ID)
	if err != nil {
		return nil, err
	}
	if targetRole != domain.RoleNone {
		return nil, errors.Conflictf("user %q is already a member of this board", username)
	}

	board, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}

	memberID, err := id.Generate("mem")
	if err != nil {
		return nil, fmt.Errorf("generate member ID: %w", err)
	}

	member := &domain.BoardMember{
		Entity:  domain.Entity{ID: memberID},
		BoardID: boardID,
		UserID:  target.ID,
		Role:    role,
	}
	member.InitTimestamps()

	if err := s.store.AddBoardMember(ctx, member); err != nil {
		if errors.Is(err, errors.ErrAlreadyExists) {
			return nil, errors.Conflictf("user %q is already a member of this board", username)
		}
		return nil, fmt.Errorf("add board member: %w", err)
	}

	s.notifications.Emit(ctx, target.ID, domain.NotificationBoardInvitation,
		fmt.Sprintf("You were added to the board %q as %s", board.Title, role), boardID, "")

	s.logger.Info("member invited",
		"board_id", boardID,
		"target_user_id", target.ID,
		"role", string(role),
		"invited_by", userID,
	)

	return &domain.BoardMemberWithUser{BoardMember: *member, User: target.Summary()}, nil
}

// GetMembers returns the board's membership roster. The owner is not part of
// the roster; clients render it from Board.OwnerID. Requires view permission.
func (s *BoardService) GetMembers(ctx context.Context, userID, boardID string) ([]*domain.BoardMemberWithUser, error) {
	if _, err := s.perms.Require(ctx, boardID, userID, domain.ActionView); err != nil {
		return nil, err
	}

	members, err := s.store.ListBoardMembers(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("list board members: %w", err)
	}
	if members == nil {
		members = []*domain.BoardMemberWithUser{}
	}
	return members, nil
}

// UpdateMemberRole changes a member's role. Requires manage permission.
// The owner's derived role can never be changed.
func (s *BoardService) UpdateMemberRole(ctx context.Context, userID, boardID, targetUserID, roleStr string) error {
	if _, err := s.perms.Require(ctx, boardID, userID, domain.ActionManageMembers); err != nil {
		return err
	}

	role, ok := domain.ParseMemberRole(roleStr)
	if !ok {
		return errors.Validationf("invalid role %q: must be moderator or visitor", roleStr)
	}

	board, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		return fmt.Errorf("get board: %w", err)
	}
	if board.OwnerID == targetUserID {
		return errors.Validation("the board owner's role cannot be changed")
	}

	if err := s.store.UpdateBoardMemberRole(ctx, boardID, targetUserID, role); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NotFound("membership not found")
		}
		return fmt.Errorf("update member role: %w", err)
	}

	s.notifications.Emit(ctx, targetUserID, domain.NotificationRoleChange,
		fmt.Sprintf("Your role on the board %q is now %s", board.Title, role), boardID, "")

	return nil
}

// RemoveMember removes a member from the board. Requires manage permission.
// The owner cannot be removed.
func (s *BoardService) RemoveMember(ctx context.Context, userID, boardID, targetUserID string) error {
	if _, err := s.perms.Require(ctx, boardID, userID, domain.ActionManageMembers); err != nil {
		return err
	}

	board, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		return fmt.Errorf("get board: %w", err)
	}
	if board.OwnerID == targetUserID {
		return errors.Validation("the board owner cannot be removed")
	}

	if err := s.store.RemoveBoardMember(ctx, boardID, targetUserID); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NotFound("membership not found")
		}
		return fmt.Errorf("remove board member: %w", err)
	}

	s.logger.Info("member removed",
		"board_id", boardID,
		"target_user_id", targetUserID,
		"removed_by", userID,
	)
	return nil
}

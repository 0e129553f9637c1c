// Package service provides the business logic layer for boards, lists,
// cards, comments, and access control.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskdeckapp/taskdeck-server/internal/domain"
	"github.com/taskdeckapp/taskdeck-server/internal/errors"
	"github.com/taskdeckapp/taskdeck-server/internal/store"
)

// PermissionService resolves a user's effective role on a board and enforces
// the board permission matrix. Every board-scoped mutation funnels through
// Require exactly once before touching data.
type PermissionService struct {
	store  store.Store
	logger *slog.Logger
}

// NewPermissionService creates a new permission service.
func NewPermissionService(store store.Store, logger *slog.Logger) *PermissionService {
	return &PermissionService{store: store, logger: logger}
}

// ResolveRole computes the user's effective role on a board.
//
// The owner is derived from Board.OwnerID and always wins; a membership row
// for the owner is never consulted even if one were to exist. Users with no
// relationship to the board resolve to RoleNone.
// Returns errors.ErrNotFound if the board does not exist.
func (s *PermissionService) ResolveRole(ctx context.Context, boardID, userID string) (domain.Role, error) {
	board, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return domain.RoleNone, errors.NotFoundf("board %s not found", boardID)
		}
		return domain.RoleNone, fmt.Errorf("get board: %w", err)
	}

	if board.OwnerID == userID {
		return domain.RoleOwner, nil
	}

	member, err := s.store.GetBoardMember(ctx, boardID, userID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return domain.RoleNone, nil
		}
		return domain.RoleNone, fmt.Errorf("get board member: %w", err)
	}

	return member.Role, nil
}

// Require resolves the user's role and checks it against the requested action.
// Returns the effective role on success so callers can avoid a second lookup.
// Non-members and insufficient roles both come back as errors.ErrForbidden;
// a missing board surfaces as errors.ErrNotFound.
func (s *PermissionService) Require(ctx context.Context, boardID, userID string, action domain.Action) (domain.Role, error) {
	role, err := s.ResolveRole(ctx, boardID, userID)
	if err != nil {
		return domain.RoleNone, err
	}

	if !role.Allows(action) {
		s.logger.Debug("permission denied",
			"board_id", boardID,
			"user_id", userID,
			"role", string(role),
			"action", string(action),
		)
		return domain.RoleNone, errors.Forbiddenf("you do not have permission to %s on this board", action)
	}

	return role, nil
}

// RequireForList resolves the list's owning board and checks the action there.
// Returns the board ID alongside the role.
func (s *PermissionService) RequireForList(ctx context.Context, listID, userID string, action domain.Action) (string, domain.Role, error) {
	boardID, err := s.store.BoardIDForList(ctx, listID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return "", domain.RoleNone, errors.NotFoundf("list %s not found", listID)
		}
		return "", domain.RoleNone, fmt.Errorf("resolve board for list: %w", err)
	}

	role, err := s.Require(ctx, boardID, userID, action)
	if err != nil {
		return "", domain.RoleNone, err
	}
	return boardID, role, nil
}

// RequireForCard resolves the card's owning board through its list and checks
// the action there. Returns the board ID alongside the role.
func (s *PermissionService) RequireForCard(ctx context.Context, cardID, userID string, action domain.Action) (string, domain.Role, error) {
	boardID, err := s.store.BoardIDForCard(ctx, cardID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return "", domain.RoleNone, errors.NotFoundf("card %s not found", cardID)
		}
		return "", domain.RoleNone, fmt.Errorf("resolve board for card: %w", err)
	}

	role, err := s.Require(ctx, boardID, userID, action)
	if err != nil {
		return "", domain.RoleNone, err
	}
	return boardID, role, nil
}

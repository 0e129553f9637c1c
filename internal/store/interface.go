// Package store defines the persistence interface for the TaskDeck server.
package store

import (
	"context"

	"github.com/taskdeckapp/taskdeck-server/internal/domain"
)

// Store defines the interface for all persistence operations.
// The SQLite implementation in store/sqlite is the only production backend.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	SearchUsers(ctx context.Context, query string, limit int) ([]*domain.User, error)

	// Auth sessions
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteUserSessions(ctx context.Context, userID string) error
	DeleteExpiredSessions(ctx context.Context) (int, error)

	// Boards
	CreateBoard(ctx context.Context, board *domain.Board) error
	GetBoard(ctx context.Context, id string) (*domain.Board, error)
	UpdateBoard(ctx context.Context, board *domain.Board) error
	DeleteBoard(ctx context.Context, id string) error
	ListBoardsForUser(ctx context.Context, userID string) ([]*domain.Board, error)
	CountBoardMembers(ctx context.Context, boardID string) (int, error)

	// Board members
	AddBoardMember(ctx context.Context, member *domain.BoardMember) error
	GetBoardMember(ctx context.Context, boardID, userID string) (*domain.BoardMember, error)
	ListBoardMembers(ctx context.Context, boardID string) ([]*domain.BoardMemberWithUser, error)
	UpdateBoardMemberRole(ctx context.Context, boardID, userID string, role domain.Role) error
	RemoveBoardMember(ctx context.Context, boardID, userID string) error

	// Lists
	CreateList(ctx context.Context, list *domain.List) error
	GetList(ctx context.Context, id string) (*domain.List, error)
	UpdateList(ctx context.Context, list *domain.List) error
	DeleteList(ctx context.Context, id string) error
	ListsForBoard(ctx context.Context, boardID string) ([]*domain.List, error)
	MaxListPosition(ctx context.Context, boardID string) (int, bool, error)

	// Cards
	CreateCard(ctx context.Context, card *domain.Card) error
	GetCard(ctx context.Context, id string) (*domain.Card, error)
	UpdateCard(ctx context.Context, card *domain.Card) error
	DeleteCard(ctx context.Context, id string) error
	CardsForList(ctx context.Context, listID string) ([]*domain.Card, error)
	MaxCardPosition(ctx context.Context, listID string) (int, bool, error)

	// Card assignments
	AddCardAssignment(ctx context.Context, cardID, userID string) error
	RemoveCardAssignment(ctx context.Context, cardID, userID string) error
	ListCardAssignees(ctx context.Context, cardID string) ([]domain.UserSummary, error)
	IsCardAssigned(ctx context.Context, cardID, userID string) (bool, error)

	// Comments
	CreateComment(ctx context.Context, comment *domain.Comment) error
	GetComment(ctx context.Context, id string) (*domain.Comment, error)
	UpdateComment(ctx context.Context, comment *domain.Comment) error
	DeleteComment(ctx context.Context, id string) error
	CommentsForCard(ctx context.Context, cardID string) ([]*domain.CommentWithAuthor, error)

	// Notifications
	CreateNotification(ctx context.Context, n *domain.Notification) error
	ListNotifications(ctx context.Context, userID string) ([]*domain.Notification, error)
	CountUnreadNotifications(ctx context.Context, userID string) (int, error)
	MarkNotificationRead(ctx context.Context, id, userID string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, id, userID string) error

	// Containment lookups used by the permission layer
	BoardIDForList(ctx context.Context, listID string) (string, error)
	BoardIDForCard(ctx context.Context, cardID string) (string, error)
}

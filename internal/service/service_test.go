package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskdeckapp/taskdeck-server/internal/auth"
	"github.com/taskdeckapp/taskdeck-server/internal/domain"
	"github.com/taskdeckapp/taskdeck-server/internal/store"
	"github.com/taskdeckapp/taskdeck-server/internal/store/sqlite"
)

// testEnv wires every service against a real SQLite store in a temp dir.
type testEnv struct {
	store         store.Store
	auth          *AuthService
	users         *UserService
	perms         *PermissionService
	boards        *BoardService
	lists         *ListService
	cards         *CardService
	comments      *CommentService
	notifications *NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	keyHex := "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
	tokens, err := auth.NewTokenService(keyHex, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	perms := NewPermissionService(st, logger)
	notifications := NewNotificationService(st, logger)

	return &testEnv{
		store:         st,
		auth:          NewAuthService(st, tokens, logger),
		users:         NewUserService(st, logger),
		perms:         perms,
		boards:        NewBoardService(st, perms, notifications, logger),
		lists:         NewListService(st, perms, logger),
		cards:         NewCardService(st, perms, notifications, logger),
		comments:      NewCommentService(st, perms, logger),
		notifications: notifications,
	}
}

// registerUser creates an account and returns the user.
func (e *testEnv) registerUser(t *testing.T, username string) *domain.User {
	t.Helper()
	res, err := e.auth.Register(context.Background(), username, username+"@example.com", "password123")
	require.NoError(t, err)
	return res.User
}

// createBoard creates a board owned by the user and returns it.
func (e *testEnv) createBoard(t *testing.T, ownerID, title string) *domain.BoardWithRole {
	t.Helper()
	b, err := e.boards.CreateBoard(context.Background(), ownerID, CreateBoardInput{Title: title})
	require.NoError(t, err)
	return b
}

// addMember invites a user to a board by username with the given role.
func (e *testEnv) addMember(t *testing.T, ownerID, boardID, username, role string) {
	t.Helper()
	_, err := e.boards.InviteMember(context.Background(), ownerID, boardID, username, role)
	require.NoError(t, err)
}

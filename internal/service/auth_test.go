package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeckapp/taskdeck-server/internal/errors"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.auth.Register(ctx, "dana", "dana@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "dana", res.User.Username)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.NotEqual(t, "password123", res.User.PasswordHash, "password must be hashed")

	// Duplicate username or email is a conflict.
	_, err = env.auth.Register(ctx, "dana", "other@example.com", "password123")
	assert.ErrorIs(t, err, errors.ErrConflict)
	_, err = env.auth.Register(ctx, "other", "dana@example.com", "password123")
	assert.ErrorIs(t, err, errors.ErrConflict)

	login, err := env.auth.Login(ctx, "dana@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)

	_, err = env.auth.Login(ctx, "dana@example.com", "wrongpass")
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
	_, err = env.auth.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.auth.Register(ctx, "dana", "dana@example.com", "password123")
	require.NoError(t, err)

	refreshed, err := env.auth.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, refreshed.User.ID)
	assert.NotEqual(t, res.RefreshToken, refreshed.RefreshToken)

	// The consumed token no longer works.
	_, err = env.auth.Refresh(ctx, res.RefreshToken)
	assert.ErrorIs(t, err, errors.ErrUnauthorized)

	// The rotated one does.
	_, err = env.auth.Refresh(ctx, refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_UnknownToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Refresh(context.Background(), "made-up-token")
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.auth.Register(ctx, "dana", "dana@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, res.RefreshToken))
	_, err = env.auth.Refresh(ctx, res.RefreshToken)
	assert.ErrorIs(t, err, errors.ErrUnauthorized)

	// Logging out an unknown token is a no-op.
	assert.NoError(t, env.auth.Logout(ctx, "made-up-token"))
}

func TestLogoutAll_RevokesEverySession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.auth.Register(ctx, "dana", "dana@example.com", "password123")
	require.NoError(t, err)
	second, err := env.auth.Login(ctx, "dana@example.com", "password123")
	require.NoError(t, err)

	other, err := env.auth.Register(ctx, "sam", "sam@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, env.auth.LogoutAll(ctx, first.User.ID))

	_, err = env.auth.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
	_, err = env.auth.Refresh(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, errors.ErrUnauthorized)

	// Other users keep their sessions.
	_, err = env.auth.Refresh(ctx, other.RefreshToken)
	assert.NoError(t, err)
}

func TestUserSearchAndProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	dana := env.registerUser(t, "dana")
	env.registerUser(t, "daniel")
	env.registerUser(t, "sam")

	found, err := env.users.Search(ctx, "dan", 10)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = env.users.Search(ctx, "  ", 10)
	require.NoError(t, err)
	assert.Empty(t, found)

	avatar := "https://cdn.example.com/d.png"
	updated, err := env.users.UpdateProfile(ctx, dana.ID, UpdateProfileInput{AvatarURL: &avatar})
	require.NoError(t, err)
	assert.Equal(t, avatar, updated.AvatarURL)
	assert.Equal(t, "dana", updated.Username)

	// Taking another user's name is a conflict.
	name := "sam"
	_, err = env.users.UpdateProfile(ctx, dana.ID, UpdateProfileInput{Username: &name})
	assert.ErrorIs(t, err, errors.ErrConflict)
}

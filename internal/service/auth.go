package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taskdeckapp/taskdeck-server/internal/auth"
	"github.com/taskdeckapp/taskdeck-server/internal/domain"
	"github.com/taskdeckapp/taskdeck-server/internal/errors"
	"github.com/taskdeckapp/taskdeck-server/internal/id"
	"github.com/taskdeckapp/taskdeck-server/internal/store"
)

// AuthService handles registration, login, and refresh token rotation.
type AuthService struct {
	store  store.Store
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(store store.Store, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{store: store, tokens: tokens, logger: logger}
}

// AuthResult is the outcome of a successful register, login, or refresh.
type AuthResult struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// Register creates a new account and logs it in.
// Username and email are unique case-insensitively.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, errors.Validation(err.Error())
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		Entity:       domain.Entity{ID: userID},
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, errors.ErrAlreadyExists) {
			return nil, errors.Conflict("username or email is already taken")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", userID, "username", username)
	return s.issueTokens(ctx, user)
}

// Login verifies credentials by email and issues a fresh token pair.
// Wrong email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, errors.InvalidCredentials("invalid email or password")
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token: the presented token's session is consumed
// and a new token pair is issued. Expired or unknown tokens are unauthorized.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	session, err := s.store.GetSessionByRefreshToken(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.Unauthorized("invalid refresh token")
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.IsExpired() {
		// Expired sessions are cleaned up lazily here and in bulk by the
		// periodic sweep.
		if err := s.store.DeleteSession(ctx, session.ID); err != nil && !errors.Is(err, errors.ErrNotFound) {
			s.logger.Warn("delete expired session", "session_id", session.ID, "error", err)
		}
		return nil, errors.Unauthorized("refresh token expired")
	}

	user, err := s.store.GetUser(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := s.store.DeleteSession(ctx, session.ID); err != nil && !errors.Is(err, errors.ErrNotFound) {
		return nil, fmt.Errorf("rotate session: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout invalidates the presented refresh token. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.store.GetSessionByRefreshToken(ctx, auth.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get session: %w", err)
	}

	if err := s.store.DeleteSession(ctx, session.ID); err != nil && !errors.Is(err, errors.ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// LogoutAll revokes every session of the user, signing them out everywhere.
// Access tokens stay valid until they expire on their own.
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	if err := s.store.DeleteUserSessions(ctx, userID); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}

	s.logger.Info("all sessions revoked", "user_id", userID)
	return nil
}

// SweepExpiredSessions deletes all expired sessions and returns the count.
func (s *AuthService) SweepExpiredSessions(ctx context.Context) (int, error) {
	return s.store.DeleteExpiredSessions(ctx)
}

// issueTokens generates an access/refresh pair and persists the session.
func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*AuthResult, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	sessionID, err := id.Generate("sess")
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	session := &domain.Session{
		Entity:           domain.Entity{ID: sessionID},
		UserID:           user.ID,
		RefreshTokenHash: auth.HashRefreshToken(refreshToken),
	}
	session.InitTimestamps()
	session.ExpiresAt = session.CreatedAt.Add(s.tokens.RefreshTokenDuration())

	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taskdeckapp/taskdeck-server/internal/domain"
	"github.com/taskdeckapp/taskdeck-server/internal/errors"
	"github.com/taskdeckapp/taskdeck-server/internal/store"
)

// UserService handles profile reads and updates.
type UserService struct {
	store  store.Store
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, logger *slog.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

// UpdateProfileInput carries a partial profile update. Nil fields are left as is.
type UpdateProfileInput struct {
	Username  *string
	AvatarURL *string
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a partial update to the caller's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		user.Username = strings.TrimSpace(*in.Username)
	}
	if in.AvatarURL != nil {
		user.AvatarURL = *in.AvatarURL
	}
	user.Touch()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, errors.ErrAlreadyExists) {
			return nil, errors.Conflict("username is already taken")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Search finds users by username or email prefix, for the invite picker.
func (s *UserService) Search(ctx context.Context, query string, limit int) ([]domain.UserSummary, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.UserSummary{}, nil
	}

	users, err := s.store.SearchUsers(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	out := make([]domain.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, u.Summary())
	}
	return out, nil
}

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

// CommentService orchestrates card comments.
type CommentService struct {
	store  store.Store
	perms  *PermissionService
	logger *slog.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(store store.Store, perms *PermissionService, logger *slog.Logger) *CommentService {
	return &CommentService{store: store, perms: perms, logger: logger}
}

// CreateComment adds a comment to a card. Commenting requires edit permission
// on the owning board, so visitors can read but not write comments.
func (s *CommentService) CreateComment(ctx context.Context, userID, cardID, content string) (*domain.CommentWithAuthor, error) {
	if _, _, err := s.perms.RequireForCard(ctx, cardID, userID, domain.ActionEdit); err != nil {
		return nil, err
	}

	commentID, err := id.Generate("cmt")
	if err != nil {
		return nil, fmt.Errorf("generate comment ID: %w", err)
	}

	comment := &domain.Comment{
		Entity:   domain.Entity{ID: commentID},
		Content:  content,
		CardID:   cardID,
		AuthorID: userID,
	}
	comment.InitTimestamps()

	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	author, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}

	return &domain.CommentWithAuthor{
		Comment: *comment,
		Author:  author.Summary(),
	}, nil
}

// CommentsForCard returns the card's comments, newest first, with authors and
// edited flags. Requires view permission on the owning board.
func (s *CommentService) CommentsForCard(ctx context.Context, userID, cardID string) ([]*domain.CommentWithAuthor, error) {
	if _, _, err := s.perms.RequireForCard(ctx, cardID, userID, domain.ActionView); err != nil {
		return nil, err
	}

	comments, err := s.store.CommentsForCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("comments for card: %w", err)
	}
	if comments == nil {
		comments = []*domain.CommentWithAuthor{}
	}
	return comments, nil
}

// UpdateComment edits a comment's content. Only the author may edit,
// regardless of board role.
func (s *CommentService) UpdateComment(ctx context.Context, userID, commentID, content string) (*domain.CommentWithAuthor, error) {
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFoundf("comment %s not found", commentID)
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}

	if comment.AuthorID != userID {
		return nil, errors.Forbidden("only the author may edit a comment")
	}

	comment.Content = content
	comment.Touch()

	if err := s.store.UpdateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	author, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}

	return &domain.CommentWithAuthor{
		Comment:  *comment,
		Author:   author.Summary(),
		IsEdited: comment.IsEdited(),
	}, nil
}

// DeleteComment removes a comment. The author may always delete their own
// comment; anyone with edit permission on the board may delete any comment.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID string) error {
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NotFoundf("comment %s not found", commentID)
		}
		return fmt.Errorf("get comment: %w", err)
	}

	if comment.AuthorID != userID {
		if _, _, err := s.perms.RequireForCard(ctx, comment.CardID, userID, domain.ActionEdit); err != nil {
			return err
		}
	}

	if err := s.store.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	s.logger.Info("comment deleted", "comment_id", commentID, "user_id", userID)
	return nil
}

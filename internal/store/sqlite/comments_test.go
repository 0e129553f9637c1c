package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/taskdeckapp/taskdeck-server/internal/domain"
)

func seedComment(t *testing.T, s *Store, id, cardID, authorID, content string) *domain.Comment {
	t.Helper()
	now := time.Now()
	c := &domain.Comment{
		Entity:   domain.Entity{ID: id, CreatedAt: now, UpdatedAt: now},
		Content:  content,
		CardID:   cardID,
		AuthorID: authorID,
	}
	if err := s.CreateComment(context.Background(), c); err != nil {
		t.Fatalf("seed comment %s: %v", id, err)
	}
	return c
}

func TestCommentsForCard(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1", "alice")
	seedUser(t, s, "user-2", "bob")
	seedBoard(t, s, "board-1", "user-1")
	seedList(t, s, "list-1", "board-1", 0)
	seedCard(t, s, "card-1", "list-1", 0)

	c1 := seedComment(t, s, "cmt-1", "card-1", "user-1", "first")
	time.Sleep(5 * time.Millisecond)
	seedComment(t, s, "cmt-2", "card-1", "user-2", "second")

	comments, err := s.CommentsForCard(ctx, "card-1")
	if err != nil {
		t.Fatalf("CommentsForCard: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}

	// Newest first, authors joined.
	if comments[0].ID != "cmt-2" || comments[1].ID != "cmt-1" {
		t.Errorf("order: got %q, %q", comments[0].ID, comments[1].ID)
	}
	if comments[0].Author.Username != "bob" || comments[1].Author.Username != "alice" {
		t.Errorf("authors: got %q, %q", comments[0].Author.Username, comments[1].Author.Username)
	}
	if comments[1].IsEdited {
		t.Error("fresh comment should not be edited")
	}

	// Edit well past the tolerance window.
	c1.Content = "first (edited)"
	c1.UpdatedAt = c1.CreatedAt.Add(time.Minute)
	if err := s.UpdateComment(ctx, c1); err != nil {
		t.Fatalf("UpdateComment: %v", err)
	}

	comments, err = s.CommentsForCard(ctx, "card-1")
	if err != nil {
		t.Fatalf("CommentsForCard: %v", err)
	}
	if comments[1].Content != "first (edited)" {
		t.Errorf("content: got %q", comments[1].Content)
	}
	if !comments[1].IsEdited {
		t.Error("edited comment should report IsEdited")
	}
}

func TestDeleteCard_CascadesComments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1", "alice")
	seedBoard(t, s, "board-1", "user-1")
	seedList(t, s, "list-1", "board-1", 0)
	seedCard(t, s, "card-1", "list-1", 0)
	seedComment(t, s, "cmt-1", "card-1", "user-1", "bye")

	if err := s.DeleteCard(ctx, "card-1"); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}

	comments, err := s.CommentsForCard(ctx, "card-1")
	if err != nil {
		t.Fatalf("CommentsForCard: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("comments should cascade, got %d", len(comments))
	}
}

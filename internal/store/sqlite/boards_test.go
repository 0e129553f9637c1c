package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/taskdeckapp/taskdeck-server/internal/domain"
	domainerrors "github.com/taskdeckapp/taskdeck-server/internal/errors"
)

func TestCreateAndGetBoard(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1", "alice")
	b := seedBoard(t, s, "board-1", "user-1")

	got, err := s.GetBoard(ctx, "board-1")
	if err != nil {
		t.Fatalf("GetBoard: %v", err)
	}
	if got.Title != b.Title {
		t.Errorf("Title: got %q, want %q", got.Title, b.Title)
	}
	if got.OwnerID != "user-1" {
		t.Errorf("OwnerID: got %q, want user-1", got.OwnerID)
	}
}

func TestUpdateBoard_DoesNotTouchOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1", "alice")
	b := seedBoard(t, s, "board-1", "user-1")

	b.Title = "Renamed"
	b.OwnerID = "someone-else" // must be ignored by the update
	b.Touch()
	if err := s.UpdateBoard(ctx, b); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}

	got, err := s.GetBoard(ctx, "board-1")
	if err != nil {
		t.Fatalf("GetBoard: %v", err)
	}
	if got.Title != "Renamed" {
		t.Errorf("Title: got %q, want Renamed", got.Title)
	}
	if got.OwnerID != "user-1" {
		t.Errorf("OwnerID changed: got %q", got.OwnerID)
	}
}

func TestDeleteBoard_Cascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1", "alice")
	seedUser(t, s, "user-2", "bob")
	seedBoard(t, s, "board-1", "user-1")
	seedList(t, s, "list-1", "board-1", 0)
	card := seedCard(t, s, "card-1", "list-1", 0)

	now := time.Now()
	comment := &domain.Comment{
		Entity:   domain.Entity{ID: "cmt-1", CreatedAt: now, UpdatedAt: now},
		Content:  "hi",
		CardID:   card.ID,
		AuthorID: "user-1",
	}
	if err := s.CreateComment(ctx, comment); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if err := s.AddCardAssignment(ctx, "card-1", "user-2"); err != nil {
		t.Fatalf("AddCardAssignment: %v", err)
	}
	member := &domain.BoardMember{
		Entity:  domain.Entity{ID: "mem-1", CreatedAt: now, UpdatedAt: now},
		BoardID: "board-1",
		UserID:  "user-2",
		Role:    domain.RoleModerator,
	}
	if err := s.AddBoardMember(ctx, member); err != nil {
		t.Fatalf("AddBoardMember: %v", err)
	}

	if err := s.DeleteBoard(ctx, "board-1"); err != nil {
		t.Fatalf("DeleteBoard: %v", err)
	}

	if _, err := s.GetList(ctx, "list-1"); !domainerrors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("list should cascade, got %v", err)
	}
	if _, err := s.GetCard(ctx, "card-1"); !domainerrors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("card should cascade, got %v", err)
	}
	if _, err := s.GetComment(ctx, "cmt-1"); !domainerrors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("comment should cascade, got %v", err)
	}
	if _, err := s.GetBoardMember(ctx, "board-1", "user-2"); !domainerrors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("membership should cascade, got %v", err)
	}
	assigned, err := s.IsCardAssigned(ctx, "card-1", "user-2")
	if err != nil {
		t.Fatalf("IsCardAssigned: %v", err)
	}
	if assigned {
		t.Error("assignment should cascade")
	}

	// Users survive board deletion.
	if _, err := s.GetUser(ctx, "user-2"); err != nil {
		t.Errorf("user should survive: %v", err)
	}
}

func TestListBoardsForUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1", "alice")
	seedUser(t, s, "user-2", "bob")
	seedBoard(t, s, "board-1", "user-1")
	seedBoard(t, s, "board-2", "user-2")
	seedBoard(t, s, "board-3", "user-2")

	now := time.Now()
	member := &domain.BoardMember{
		Entity:  domain.Entity{ID: "mem-1", CreatedAt: now, UpdatedAt: now},
		BoardID: "board-2",
		UserID:  "user-1",
		Role:    domain.RoleVisitor,
	}
	if err := s.AddBoardMember(ctx, member); err != nil {
		t.Fatalf("AddBoardMember: %v", err)
	}

	// Owned plus joined, but not board-3.
	boards, err := s.ListBoardsForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListBoardsForUser: %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("expected 2 boards, got %d", len(boards))
	}
	seen := map[string]bool{}
	for _, b := range boards {
		seen[b.ID] = true
	}
	if !seen["board-1"] || !seen["board-2"] {
		t.Errorf("unexpected boards: %v", seen)
	}
}

func TestListBoardsForUser_Ordering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1", "alice")
	seedUser(t, s, "user-2", "bob")

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mkBoard := func(id, ownerID string, createdAt, updatedAt time.Time) {
		b := &domain.Board{
			Entity:  domain.Entity{ID: id, CreatedAt: createdAt, UpdatedAt: updatedAt},
			Title:   "Board " + id,
			OwnerID: ownerID,
		}
		if err := s.CreateBoard(ctx, b); err != nil {
			t.Fatalf("seed board %s: %v", id, err)
		}
	}
	join := func(memberID, boardID string) {
		m := &domain.BoardMember{
			Entity:  domain.Entity{ID: memberID, CreatedAt: base, UpdatedAt: base},
			BoardID: boardID,
			UserID:  "user-1",
			Role:    domain.RoleVisitor,
		}
		if err := s.AddBoardMember(ctx, m); err != nil {
			t.Fatalf("AddBoardMember %s: %v", boardID, err)
		}
	}

	// Owned boards sort by creation time, newest first.
	mkBoard("board-own-old", "user-1", base, base)
	mkBoard("board-own-new", "user-1", base.Add(2*time.Hour), base.Add(2*time.Hour))

	// Member boards sort by last activity, not creation: board-stale was
	// created after board-active but has not been touched since.
	mkBoard("board-active", "user-2", base, base.Add(3*time.Hour))
	mkBoard("board-stale", "user-2", base.Add(time.Hour), base.Add(time.Hour))
	join("mem-1", "board-active")
	join("mem-2", "board-stale")

	boards, err := s.ListBoardsForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListBoardsForUser: %v", err)
	}
	if len(boards) != 4 {
		t.Fatalf("expected 4 boards, got %d", len(boards))
	}
	want := []string{"board-own-new", "board-own-old", "board-active", "board-stale"}
	for i, id := range want {
		if boards[i].ID != id {
			t.Errorf("boards[%d]: got %q, want %q", i, boards[i].ID, id)
		}
	}
}

func TestBoardMembers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1", "alice")
	seedUser(t, s, "user-2", "bob")
	seedBoard(t, s, "board-1", "user-1")

	now := time.Now()
	member := &domain.BoardMember{
		Entity:  domain.Entity{ID: "mem-1", CreatedAt: now, UpdatedAt: now},
		BoardID: "board-1",
		UserID:  "user-2",
		Role:    domain.RoleVisitor,
	}
	if err := s.AddBoardMember(ctx, member); err != nil {
		t.Fatalf("AddBoardMember: %v", err)
	}

	// Duplicate membership is rejected by the unique constraint.
	dup := &domain.BoardMember{
		Entity:  domain.Entity{ID: "mem-2", CreatedAt: now, UpdatedAt: now},
		BoardID: "board-1",
		UserID:  "user-2",
		Role:    domain.RoleModerator,
	}
	if err := s.AddBoardMember(ctx, dup); !domainerrors.Is(err, domainerrors.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	members, err := s.ListBoardMembers(ctx, "board-1")
	if err != nil {
		t.Fatalf("ListBoardMembers: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}
	if members[0].User.Username != "bob" {
		t.Errorf("joined username: got %q, want bob", members[0].User.Username)
	}
	if members[0].Role != domain.RoleVisitor {
		t.Errorf("role: got %q, want visitor", members[0].Role)
	}

	if err := s.UpdateBoardMemberRole(ctx, "board-1", "user-2", domain.RoleModerator); err != nil {
		t.Fatalf("UpdateBoardMemberRole: %v", err)
	}
	m, err := s.GetBoardMember(ctx, "board-1", "user-2")
	if err != nil {
		t.Fatalf("GetBoardMember: %v", err)
	}
	if m.Role != domain.RoleModerator {
		t.Errorf("role after update: got %q, want moderator", m.Role)
	}

	count, err := s.CountBoardMembers(ctx, "board-1")
	if err != nil {
		t.Fatalf("CountBoardMembers: %v", err)
	}
	if count != 1 {
		t.Errorf("count: got %d, want 1", count)
	}

	if err := s.RemoveBoardMember(ctx, "board-1", "user-2"); err != nil {
		t.Fatalf("RemoveBoardMember: %v", err)
	}
	if err := s.RemoveBoardMember(ctx, "board-1", "user-2"); !domainerrors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("second remove should be ErrNotFound, got %v", err)
	}
}

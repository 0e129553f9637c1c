package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeckapp/taskdeck-server/internal/domain"
	"github.com/taskdeckapp/taskdeck-server/internal/errors"
)

func TestCreateBoard(t *testing.T) {
	env := newTestEnv(t)

	owner := env.registerUser(t, "dana")
	b := env.createBoard(t, owner.ID, "Launch Plan")

	assert.Equal(t, "Launch Plan", b.Title)
	assert.Equal(t, owner.ID, b.OwnerID)
	assert.Equal(t, domain.RoleOwner, b.UserRole)
	assert.Equal(t, 1, b.MemberCount)
}

func TestListBoards_OwnedFirstWithRolesAndCounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	dana := env.registerUser(t, "dana")
	sam := env.registerUser(t, "sam")

	samBoard := env.createBoard(t, sam.ID, "Sam's Board")
	env.addMember(t, sam.ID, samBoard.ID, "dana", "visitor")
	ownBoard := env.createBoard(t, dana.ID, "Dana's Board")

	boards, err := env.boards.ListBoards(ctx, dana.ID)
	require.NoError(t, err)
	require.Len(t, boards, 2)

	// Owned entries come first.
	assert.Equal(t, ownBoard.ID, boards[0].ID)
	assert.Equal(t, domain.RoleOwner, boards[0].UserRole)
	assert.Equal(t, 1, boards[0].MemberCount)

	assert.Equal(t, samBoard.ID, boards[1].ID)
	assert.Equal(t, domain.RoleVisitor, boards[1].UserRole)
	assert.Equal(t, 2, boards[1].MemberCount) // sam plus dana
}

func TestGetBoard_DetailWithListsAndCards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.registerUser(t, "dana")
	board := env.createBoard(t, owner.ID, "Roadmap")

	todo, err := env.lists.CreateList(ctx, owner.ID, board.ID, CreateListInput{Title: "Todo"})
	require.NoError(t, err)
	doing, err := env.lists.CreateList(ctx, owner.ID, board.ID, CreateListInput{Title: "Doing"})
	require.NoError(t, err)

	c1, err := env.cards.CreateCard(ctx, owner.ID, todo.ID, CreateCardInput{Title: "Design"})
	require.NoError(t, err)
	require.NoError(t, env.cards.AssignUser(ctx, owner.ID, c1.ID, owner.ID))

	detail, err := env.boards.GetBoard(ctx, owner.ID, board.ID)
	require.NoError(t, err)

	require.Len(t, detail.Lists, 2)
	assert.Equal(t, todo.ID, detail.Lists[0].ID)
	assert.Equal(t, doing.ID, detail.Lists[1].ID)
	require.Len(t, detail.Lists[0].Cards, 1)
	assert.Equal(t, c1.ID, detail.Lists[0].Cards[0].ID)
	require.Len(t, detail.Lists[0].Cards[0].Assignees, 1)
	assert.Equal(t, "dana", detail.Lists[0].Cards[0].Assignees[0].Username)
}

func TestUpdateBoard_PartialMergeOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.registerUser(t, "dana")
	mod := env.registerUser(t, "sam")
	board := env.createBoard(t, owner.ID, "Roadmap")
	env.addMember(t, owner.ID, board.ID, "sam", "moderator")

	// Even a moderator may not update board metadata.
	title := "Hijacked"
	_, err := env.boards.UpdateBoard(ctx, mod.ID, board.ID, UpdateBoardInput{Title: &title})
	assert.ErrorIs(t, err, errors.ErrForbidden)

	// Partial merge: only provided fields change.
	desc := "H2 goals"
	updated, err := env.boards.UpdateBoard(ctx, owner.ID, board.ID, UpdateBoardInput{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", updated.Title)
	assert.Equal(t, "H2 goals", updated.Description)
}

func TestInviteMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.registerUser(t, "dana")
	env.registerUser(t, "sam")
	mod := env.registerUser(t, "riley")
	board := env.createBoard(t, owner.ID, "Roadmap")
	env.addMember(t, owner.ID, board.ID, "riley", "moderator")

	// Only the owner may invite.
	_, err := env.boards.InviteMember(ctx, mod.ID, board.ID, "sam", "visitor")
	assert.ErrorIs(t, err, errors.ErrForbidden)

	member, err := env.boards.InviteMember(ctx, owner.ID, board.ID, "sam", "visitor")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleVisitor, member.Role)
	assert.Equal(t, "sam", member.User.Username)

	// Unknown username is NotFound.
	_, err = env.boards.InviteMember(ctx, owner.ID, board.ID, "nobody", "visitor")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	// Inviting again is a Conflict.
	_, err = env.boards.InviteMember(ctx, owner.ID, board.ID, "sam", "moderator")
	assert.ErrorIs(t, err, errors.ErrConflict)

	// Inviting the owner is a Conflict too.
	_, err = env.boards.InviteMember(ctx, owner.ID, board.ID, "dana", "moderator")
	assert.ErrorIs(t, err, errors.ErrConflict)

	// Owner role is never a valid membership role.
	env.registerUser(t, "casey")
	_, err = env.boards.InviteMember(ctx, owner.ID, board.ID, "casey", "owner")
	assert.ErrorIs(t, err, errors.ErrValidation)

	// Invitation produced a notification for the invitee.
	sam, err := env.store.GetUserByUsername(ctx, "sam")
	require.NoError(t, err)
	notifications, err := env.notifications.List(ctx, sam.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotificationBoardInvitation, notifications[0].Type)
	assert.Equal(t, board.ID, notifications[0].RelatedBoardID)
	assert.Contains(t, notifications[0].Message, board.Title)
}

func TestMemberRoleManagement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.registerUser(t, "dana")
	sam := env.registerUser(t, "sam")
	board := env.createBoard(t, owner.ID, "Roadmap")
	env.addMember(t, owner.ID, board.ID, "sam", "visitor")

	// Promote.
	require.NoError(t, env.boards.UpdateMemberRole(ctx, owner.ID, board.ID, sam.ID, "moderator"))
	role, err := env.perms.ResolveRole(ctx, board.ID, sam.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleModerator, role)

	// A member cannot manage roles, not even their own.
	err = env.boards.UpdateMemberRole(ctx, sam.ID, board.ID, sam.ID, "visitor")
	assert.ErrorIs(t, err, errors.ErrForbidden)

	// The owner's role is untouchable.
	err = env.boards.UpdateMemberRole(ctx, owner.ID, board.ID, owner.ID, "visitor")
	assert.ErrorIs(t, err, errors.ErrValidation)

	// The owner cannot be removed.
	err = env.boards.RemoveMember(ctx, owner.ID, board.ID, owner.ID)
	assert.ErrorIs(t, err, errors.ErrValidation)

	// Removal strips access entirely.
	require.NoError(t, env.boards.RemoveMember(ctx, owner.ID, board.ID, sam.ID))
	role, err = env.perms.ResolveRole(ctx, board.ID, sam.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleNone, role)
}

func TestDeleteBoard_CascadesEverything(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.registerUser(t, "dana")
	mod := env.registerUser(t, "sam")
	board := env.createBoard(t, owner.ID, "Roadmap")
	env.addMember(t, owner.ID, board.ID, "sam", "moderator")

	list, err := env.lists.CreateList(ctx, owner.ID, board.ID, CreateListInput{Title: "Todo"})
	require.NoError(t, err)
	card, err := env.cards.CreateCard(ctx, owner.ID, list.ID, CreateCardInput{Title: "Design"})
	require.NoError(t, err)
	_, err = env.comments.CreateComment(ctx, mod.ID, card.ID, "on it")
	require.NoError(t, err)
	require.NoError(t, env.cards.AssignUser(ctx, owner.ID, card.ID, mod.ID))

	// A moderator may not delete the board.
	assert.ErrorIs(t, env.boards.DeleteBoard(ctx, mod.ID, board.ID), errors.ErrForbidden)

	require.NoError(t, env.boards.DeleteBoard(ctx, owner.ID, board.ID))

	// Everything under the board is gone.
	_, err = env.boards.GetBoard(ctx, owner.ID, board.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	_, err = env.lists.GetList(ctx, owner.ID, list.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	_, err = env.cards.GetCard(ctx, owner.ID, card.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	// Users survive.
	_, err = env.users.Get(ctx, mod.ID)
	assert.NoError(t, err)
}

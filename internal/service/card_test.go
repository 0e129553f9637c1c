package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeckapp/taskdeck-server/internal/domain"
	"github.com/taskdeckapp/taskdeck-server/internal/errors"
)

func TestCreateCard_PositionsAndDueDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.registerUser(t, "dana")
	board := env.createBoard(t, owner.ID, "Roadmap")
	list, err := env.lists.CreateList(ctx, owner.ID, board.ID, CreateListInput{Title: "Todo"})
	require.NoError(t, err)

	first, err := env.cards.CreateCard(ctx, owner.ID, list.ID, CreateCardInput{Title: "Design"})
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)
	assert.Nil(t, first.DueDate)

	second, err := env.cards.CreateCard(ctx, owner.ID, list.ID, CreateCardInput{
		Title:   "Build",
		DueDate: "2026-09-30",
		Tags:    []string{"urgent"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)
	require.NotNil(t, second.DueDate)
	assert.Equal(t, time.September, second.DueDate.Month())
	assert.Equal(t, []string{"urgent"}, second.Tags)

	_, err = env.cards.CreateCard(ctx, owner.ID, list.ID, CreateCardInput{
		Title:   "Bad",
		DueDate: "not-a-date",
	})
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestUpdateCard_CrossListMoveGetsFreshPosition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.registerUser(t, "dana")
	board := env.createBoard(t, owner.ID, "Roadmap")
	todo, err := env.lists.CreateList(ctx, owner.ID, board.ID, CreateListInput{Title: "Todo"})
	require.NoError(t, err)
	doing, err := env.lists.CreateList(ctx, owner.ID, board.ID, CreateListInput{Title: "Doing"})
	require.NoError(t, err)

	// Destination already has two cards at 0 and 1.
	_, err = env.cards.CreateCard(ctx, owner.ID, doing.ID, CreateCardInput{Title: "A"})
	require.NoError(t, err)
	_, err = env.cards.CreateCard(ctx, owner.ID, doing.ID, CreateCardInput{Title: "B"})
	require.NoError(t, err)

	card, err := env.cards.CreateCard(ctx, owner.ID, todo.ID, CreateCardInput{Title: "Mover"})
	require.NoError(t, err)

	// Omitted position on a move appends in the destination list.
	moved, err := env.cards.UpdateCard(ctx, owner.ID, card.ID, UpdateCardInput{ListID: &doing.ID})
	require.NoError(t, err)
	assert.Equal(t, doing.ID, moved.ListID)
	assert.Equal(t, 2, moved.Position)

	// An explicit position on a move is trusted.
	pos := 0
	back, err := env.cards.UpdateCard(ctx, owner.ID, card.ID, UpdateCardInput{ListID: &todo.ID, Position: &pos})
	require.NoError(t, err)
	assert.Equal(t, todo.ID, back.ListID)
	assert.Equal(t, 0, back.Position)
}

func TestUpdateCard_MoveChecksDestinationBoard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	dana := env.registerUser(t, "dana")
	sam := env.registerUser(t, "sam")

	danaBoard := env.createBoard(t, dana.ID, "Dana's")
	samBoard := env.createBoard(t, sam.ID, "Sam's")
	env.addMember(t, sam.ID, samBoard.ID, "dana", "moderator")

	srcList, err := env.lists.CreateList(ctx, sam.ID, samBoard.ID, CreateListInput{Title: "Src"})
	require.NoError(t, err)
	foreignList, err := env.lists.CreateList(ctx, dana.ID, danaBoard.ID, CreateListInput{Title: "Dst"})
	require.NoError(t, err)

	card, err := env.cards.CreateCard(ctx, sam.ID, srcList.ID, CreateCardInput{Title: "X"})
	require.NoError(t, err)

	// Sam can edit his own board but has no role on Dana's, so the move
	// is rejected by the destination check.
	_, err = env.cards.UpdateCard(ctx, sam.ID, card.ID, UpdateCardInput{ListID: &foreignList.ID})
	assert.ErrorIs(t, err, errors.ErrForbidden)

	// Dana holds edit on both boards, so the same move succeeds for her.
	moved, err := env.cards.UpdateCard(ctx, dana.ID, card.ID, UpdateCardInput{ListID: &foreignList.ID})
	require.NoError(t, err)
	assert.Equal(t, foreignList.ID, moved.ListID)
}

func TestAssignUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.registerUser(t, "dana")
	member := env.registerUser(t, "sam")
	outsider := env.registerUser(t, "out")
	board := env.createBoard(t, owner.ID, "Roadmap")
	env.addMember(t, owner.ID, board.ID, "sam", "visitor")

	list, err := env.lists.CreateList(ctx, owner.ID, board.ID, CreateListInput{Title: "Todo"})
	require.NoError(t, err)
	card, err := env.cards.CreateCard(ctx, owner.ID, list.ID, CreateCardInput{Title: "Design"})
	require.NoError(t, err)

	// Visitors can be assigned; outsiders cannot.
	require.NoError(t, env.cards.AssignUser(ctx, owner.ID, card.ID, member.ID))
	err = env.cards.AssignUser(ctx, owner.ID, card.ID, outsider.ID)
	assert.ErrorIs(t, err, errors.ErrValidation)

	// Double assignment is rejected.
	err = env.cards.AssignUser(ctx, owner.ID, card.ID, member.ID)
	assert.ErrorIs(t, err, errors.ErrValidation)

	// Assignment notified the assignee.
	notifications, err := env.notifications.List(ctx, member.ID)
	require.NoError(t, err)
	var found bool
	for _, n := range notifications {
		if n.Type == domain.NotificationCardAssignment && n.RelatedCardID == card.ID {
			found = true
		}
	}
	assert.True(t, found, "expected a card assignment notification")

	// Unassign, then unassigning again is a validation error.
	require.NoError(t, env.cards.UnassignUser(ctx, owner.ID, card.ID, member.ID))
	err = env.cards.UnassignUser(ctx, owner.ID, card.ID, member.ID)
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestCardsForList_IncludesAssignees(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.registerUser(t, "dana")
	board := env.createBoard(t, owner.ID, "Roadmap")
	list, err := env.lists.CreateList(ctx, owner.ID, board.ID, CreateListInput{Title: "Todo"})
	require.NoError(t, err)
	card, err := env.cards.CreateCard(ctx, owner.ID, list.ID, CreateCardInput{Title: "Design"})
	require.NoError(t, err)
	require.NoError(t, env.cards.AssignUser(ctx, owner.ID, card.ID, owner.ID))

	cards, err := env.cards.CardsForList(ctx, owner.ID, list.ID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	require.Len(t, cards[0].Assignees, 1)
	assert.Equal(t, "dana", cards[0].Assignees[0].Username)
}

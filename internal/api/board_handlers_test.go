package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createBoard creates a board over HTTP and returns its ID.
func (ts *testServer) createBoard(t *testing.T, token, title string) string {
	t.Helper()

	rec := ts.request(http.MethodPost, "/api/v1/boards/", token, map[string]any{"title": title})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	env := decodeEnvelope[map[string]any](t, rec)
	boardID, _ := env.Data["id"].(string)
	require.NotEmpty(t, boardID)
	return boardID
}

func TestBoardLifecycle(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.registerUser(t, "dana")

	boardID := ts.createBoard(t, owner.AccessToken, "Roadmap")

	// Listing includes the new board with the owner role.
	rec := ts.request(http.MethodGet, "/api/v1/boards/", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	boards := decodeEnvelope[[]map[string]any](t, rec).Data
	require.Len(t, boards, 1)
	assert.Equal(t, "Roadmap", boards[0]["title"])
	assert.Equal(t, "owner", boards[0]["user_role"])

	// Partial update keeps the unspecified fields.
	rec = ts.request(http.MethodPatch, "/api/v1/boards/"+boardID, owner.AccessToken, map[string]any{
		"description": "Q4 planning",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeEnvelope[map[string]any](t, rec).Data
	assert.Equal(t, "Roadmap", updated["title"])
	assert.Equal(t, "Q4 planning", updated["description"])

	// Delete, then the board is gone.
	rec = ts.request(http.MethodDelete, "/api/v1/boards/"+boardID, owner.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/boards/"+boardID, owner.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBoardAccessControl(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.registerUser(t, "dana")
	visitor := ts.registerUser(t, "vee")
	outsider := ts.registerUser(t, "out")

	boardID := ts.createBoard(t, owner.AccessToken, "Roadmap")

	rec := ts.request(http.MethodPost, "/api/v1/boards/"+boardID+"/members", owner.AccessToken, map[string]any{
		"username": "vee",
		"role":     "visitor",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// The visitor can view but not update the board.
	rec = ts.request(http.MethodGet, "/api/v1/boards/"+boardID, visitor.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.request(http.MethodPatch, "/api/v1/boards/"+boardID, visitor.AccessToken, map[string]any{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Outsiders get a 403 on reads as well.
	rec = ts.request(http.MethodGet, "/api/v1/boards/"+boardID, outsider.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMemberManagement(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.registerUser(t, "dana")
	mod := ts.registerUser(t, "sam")

	boardID := ts.createBoard(t, owner.AccessToken, "Roadmap")

	// Unknown invitee is a 404, bad role a 400.
	rec := ts.request(http.MethodPost, "/api/v1/boards/"+boardID+"/members", owner.AccessToken, map[string]any{
		"username": "nobody", "role": "visitor",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.request(http.MethodPost, "/api/v1/boards/"+boardID+"/members", owner.AccessToken, map[string]any{
		"username": "sam", "role": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.request(http.MethodPost, "/api/v1/boards/"+boardID+"/members", owner.AccessToken, map[string]any{
		"username": "sam", "role": "moderator",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Inviting twice is a conflict.
	rec = ts.request(http.MethodPost, "/api/v1/boards/"+boardID+"/members", owner.AccessToken, map[string]any{
		"username": "sam", "role": "visitor",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// A moderator may not manage members.
	rec = ts.request(http.MethodPatch, "/api/v1/boards/"+boardID+"/members/"+mod.User.ID, mod.AccessToken, map[string]any{
		"role": "visitor",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The owner demotes and then removes the member.
	rec = ts.request(http.MethodPatch, "/api/v1/boards/"+boardID+"/members/"+mod.User.ID, owner.AccessToken, map[string]any{
		"role": "visitor",
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.request(http.MethodDelete, "/api/v1/boards/"+boardID+"/members/"+mod.User.ID, owner.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.request(http.MethodGet, "/api/v1/boards/"+boardID+"/members", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeEnvelope[[]map[string]any](t, rec).Data)

	// The invitation left a notification for the invitee.
	rec = ts.request(http.MethodGet, "/api/v1/notifications/", mod.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	notifications := decodeEnvelope[[]map[string]any](t, rec).Data
	require.NotEmpty(t, notifications)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskdeckapp/taskdeck-server/internal/http/response"
	"github.com/taskdeckapp/taskdeck-server/internal/service"
)

type createCardRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	DueDate     string   `json:"due_date" validate:"max=40"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=40"`
	Position    *int     `json:"position" validate:"omitempty,gte=0"`
}

type updateCardRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	DueDate     *string  `json:"due_date" validate:"omitempty,max=40"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=40"`
	Position    *int     `json:"position" validate:"omitempty,gte=0"`
	ListID      *string  `json:"list_id" validate:"omitempty,min=1"`
}

type assignUserRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "listID")

	var req createCardRequest
	if !s.decode(w, r, &req) {
		return
	}

	card, err := s.cards.CreateCard(r.Context(), userIDFromContext(r.Context()), listID, service.CreateCardInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
		Position:    req.Position,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, card, s.logger)
}

func (s *Server) handleCardsForList(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "listID")

	cards, err := s.cards.CardsForList(r.Context(), userIDFromContext(r.Context()), listID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, cards, s.logger)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")

	card, err := s.cards.GetCard(r.Context(), userIDFromContext(r.Context()), cardID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, card, s.logger)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")

	var req updateCardRequest
	if !s.decode(w, r, &req) {
		return
	}

	card, err := s.cards.UpdateCard(r.Context(), userIDFromContext(r.Context()), cardID, service.UpdateCardInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
		Position:    req.Position,
		ListID:      req.ListID,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, card, s.logger)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")

	if err := s.cards.DeleteCard(r.Context(), userIDFromContext(r.Context()), cardID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

func (s *Server) handleAssignUser(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")

	var req assignUserRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.cards.AssignUser(r.Context(), userIDFromContext(r.Context()), cardID, req.UserID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

func (s *Server) handleListAssignees(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")

	assignees, err := s.cards.Assignees(r.Context(), userIDFromContext(r.Context()), cardID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, assignees, s.logger)
}

func (s *Server) handleUnassignUser(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")
	assigneeID := chi.URLParam(r, "userID")

	if err := s.cards.UnassignUser(r.Context(), userIDFromContext(r.Context()), cardID, assigneeID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

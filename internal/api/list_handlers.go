package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskdeckapp/taskdeck-server/internal/http/response"
	"github.com/taskdeckapp/taskdeck-server/internal/service"
)

type createListRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=120"`
	Position *int   `json:"position" validate:"omitempty,gte=0"`
}

type updateListRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=120"`
	Position *int    `json:"position" validate:"omitempty,gte=0"`
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")

	var req createListRequest
	if !s.decode(w, r, &req) {
		return
	}

	list, err := s.lists.CreateList(r.Context(), userIDFromContext(r.Context()), boardID, service.CreateListInput{
		Title:    req.Title,
		Position: req.Position,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, list, s.logger)
}

func (s *Server) handleListsForBoard(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")

	lists, err := s.lists.ListsForBoard(r.Context(), userIDFromContext(r.Context()), boardID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, lists, s.logger)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "listID")

	list, err := s.lists.GetList(r.Context(), userIDFromContext(r.Context()), listID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, list, s.logger)
}

func (s *Server) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "listID")

	var req updateListRequest
	if !s.decode(w, r, &req) {
		return
	}

	list, err := s.lists.UpdateList(r.Context(), userIDFromContext(r.Context()), listID, service.UpdateListInput{
		Title:    req.Title,
		Position: req.Position,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, list, s.logger)
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "listID")

	if err := s.lists.DeleteList(r.Context(), userIDFromContext(r.Context()), listID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

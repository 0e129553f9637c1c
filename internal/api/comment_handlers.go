package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskdeckapp/taskdeck-server/internal/http/response"
)

type commentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")

	var req commentRequest
	if !s.decode(w, r, &req) {
		return
	}

	comment, err := s.comments.CreateComment(r.Context(), userIDFromContext(r.Context()), cardID, req.Content)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, comment, s.logger)
}

func (s *Server) handleCommentsForCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")

	comments, err := s.comments.CommentsForCard(r.Context(), userIDFromContext(r.Context()), cardID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, comments, s.logger)
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "commentID")

	var req commentRequest
	if !s.decode(w, r, &req) {
		return
	}

	comment, err := s.comments.UpdateComment(r.Context(), userIDFromContext(r.Context()), commentID, req.Content)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, comment, s.logger)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "commentID")

	if err := s.comments.DeleteComment(r.Context(), userIDFromContext(r.Context()), commentID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

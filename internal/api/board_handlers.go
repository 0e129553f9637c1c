package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskdeckapp/taskdeck-server/internal/http/response"
	"github.com/taskdeckapp/taskdeck-server/internal/service"
)

type createBoardRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Thumbnail   string `json:"thumbnail" validate:"omitempty,url,max=2048"`
}

type updateBoardRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Thumbnail   *string `json:"thumbnail" validate:"omitempty,max=2048"`
}

type inviteMemberRequest struct {
	Username string `json:"username" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=moderator visitor"`
}

type updateMemberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=moderator visitor"`
}

func (s *Server) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	var req createBoardRequest
	if !s.decode(w, r, &req) {
		return
	}

	board, err := s.boards.CreateBoard(r.Context(), userIDFromContext(r.Context()), service.CreateBoardInput{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, board, s.logger)
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := s.boards.ListBoards(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, boards, s.logger)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")

	detail, err := s.boards.GetBoard(r.Context(), userIDFromContext(r.Context()), boardID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, detail, s.logger)
}

func (s *Server) handleUpdateBoard(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")

	var req updateBoardRequest
	if !s.decode(w, r, &req) {
		return
	}

	board, err := s.boards.UpdateBoard(r.Context(), userIDFromContext(r.Context()), boardID, service.UpdateBoardInput{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, board, s.logger)
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")

	if err := s.boards.DeleteBoard(r.Context(), userIDFromContext(r.Context()), boardID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

func (s *Server) handleInviteMember(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")

	var req inviteMemberRequest
	if !s.decode(w, r, &req) {
		return
	}

	member, err := s.boards.InviteMember(r.Context(), userIDFromContext(r.Context()), boardID, req.Username, req.Role)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, member, s.logger)
}

func (s *Server) handleGetMembers(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")

	members, err := s.boards.GetMembers(r.Context(), userIDFromContext(r.Context()), boardID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, members, s.logger)
}

func (s *Server) handleUpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")
	targetUserID := chi.URLParam(r, "userID")

	var req updateMemberRoleRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.boards.UpdateMemberRole(r.Context(), userIDFromContext(r.Context()), boardID, targetUserID, req.Role); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")
	targetUserID := chi.URLParam(r, "userID")

	if err := s.boards.RemoveMember(r.Context(), userIDFromContext(r.Context()), boardID, targetUserID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

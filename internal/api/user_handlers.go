package api

import (
	"net/http"

	"github.com/taskdeckapp/taskdeck-server/internal/http/response"
	"github.com/taskdeckapp/taskdeck-server/internal/service"
)

type updateProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=32"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url,max=2048"`
}

func (s *Server) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Get(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, user, s.logger)
}

func (s *Server) handleUpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !s.decode(w, r, &req) {
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), userIDFromContext(r.Context()), service.UpdateProfileInput{
		Username:  req.Username,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, user, s.logger)
}

func (s *Server) handleSearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := queryInt(r, "limit", 20)

	users, err := s.users.Search(r.Context(), query, limit)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, users, s.logger)
}

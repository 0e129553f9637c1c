package api

import (
	"net/http"

	"github.com/taskdeckapp/taskdeck-server/internal/http/response"
)

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{"status": "ok"}, s.logger)
}

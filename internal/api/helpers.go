package api

import (
	"encoding/json/v2"
	"net/http"
	"strconv"

	"github.com/taskdeckapp/taskdeck-server/internal/http/response"
)

// maxRequestBody caps request payloads at 1 MiB. Nothing the API
// accepts legitimately comes close.
const maxRequestBody = 1 << 20

// decode reads, parses, and validates a JSON request body into dst.
// On failure it writes the error response and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	if err := json.UnmarshalRead(r.Body, dst); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return false
	}

	if err := s.validator.Validate(dst); err != nil {
		response.HandleError(w, err, s.logger)
		return false
	}

	return true
}

// queryInt reads an integer query parameter, falling back to def when
// absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

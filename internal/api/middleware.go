package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskdeckapp/taskdeck-server/internal/http/response"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	usernameKey contextKey = "username"
)

// requireAuth verifies the Bearer access token and stores the caller's
// identity in the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			response.Unauthorized(w, "missing authorization header", s.logger)
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(w, "invalid authorization header", s.logger)
			return
		}

		claims, err := s.tokens.VerifyAccessToken(token)
		if err != nil {
			s.logger.Debug("Access token rejected", "error", err)
			response.Unauthorized(w, "invalid or expired token", s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, usernameKey, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rateLimitAuth throttles credential endpoints per client IP. RealIP
// middleware runs earlier in the chain, so RemoteAddr is trustworthy
// behind a well-configured proxy.
func (s *Server) rateLimitAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)

		if !s.authLimiter.Allow(key) {
			s.logger.Warn("Auth rate limit exceeded", "ip", key, "path", r.URL.Path)
			response.TooManyRequests(w, "too many requests, slow down", s.logger)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from RemoteAddr, scanning from the end so
// IPv6 addresses keep their colons.
func clientIP(r *http.Request) string {
	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}

// userIDFromContext returns the authenticated user's ID. The empty
// string means requireAuth did not run for this route.
func userIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

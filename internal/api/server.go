// Package api provides the HTTP API server and handlers for the TaskDeck application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/taskdeckapp/taskdeck-server/internal/auth"
	"github.com/taskdeckapp/taskdeck-server/internal/ratelimit"
	"github.com/taskdeckapp/taskdeck-server/internal/service"
	"github.com/taskdeckapp/taskdeck-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	tokens        *auth.TokenService
	authService   *service.AuthService
	users         *service.UserService
	boards        *service.BoardService
	lists         *service.ListService
	cards         *service.CardService
	comments      *service.CommentService
	notifications *service.NotificationService

	validator   *validation.Validator
	authLimiter *ratelimit.KeyedRateLimiter
	corsOrigins []string

	router *chi.Mux
	logger *slog.Logger
}

// Config carries the non-service knobs for the HTTP server.
type Config struct {
	CORSOrigins []string
	// AuthRatePerMinute bounds login/register/refresh attempts per client IP.
	AuthRatePerMinute int
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg Config,
	tokens *auth.TokenService,
	authService *service.AuthService,
	users *service.UserService,
	boards *service.BoardService,
	lists *service.ListService,
	cards *service.CardService,
	comments *service.CommentService,
	notifications *service.NotificationService,
	logger *slog.Logger,
) *Server {
	perMinute := cfg.AuthRatePerMinute
	if perMinute <= 0 {
		perMinute = 10
	}

	s := &Server{
		tokens:        tokens,
		authService:   authService,
		users:         users,
		boards:        boards,
		lists:         lists,
		cards:         cards,
		comments:      comments,
		notifications: notifications,
		validator:     validation.New(),
		authLimiter:   ratelimit.New(float64(perMinute)/60.0, perMinute),
		corsOrigins:   cfg.CORSOrigins,
		router:        chi.NewRouter(),
		logger:        logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-held resources.
func (s *Server) Close() {
	s.authLimiter.Stop()
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	origins := s.corsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public, rate limited per client IP).
		r.Route("/auth", func(r chi.Router) {
			r.Use(s.rateLimitAuth)
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
			r.Post("/logout", s.handleLogout)
			r.With(s.requireAuth).Post("/logout-all", s.handleLogoutAll)
		})

		// Users.
		r.Route("/users", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/me", s.handleGetCurrentUser)
			r.Patch("/me", s.handleUpdateCurrentUser)
			r.Get("/", s.handleSearchUsers)
		})

		// Boards and their membership roster.
		r.Route("/boards", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/", s.handleCreateBoard)
			r.Get("/", s.handleListBoards)
			r.Get("/{boardID}", s.handleGetBoard)
			r.Patch("/{boardID}", s.handleUpdateBoard)
			r.Delete("/{boardID}", s.handleDeleteBoard)

			r.Post("/{boardID}/members", s.handleInviteMember)
			r.Get("/{boardID}/members", s.handleGetMembers)
			r.Patch("/{boardID}/members/{userID}", s.handleUpdateMemberRole)
			r.Delete("/{boardID}/members/{userID}", s.handleRemoveMember)

			r.Post("/{boardID}/lists", s.handleCreateList)
			r.Get("/{boardID}/lists", s.handleListsForBoard)
		})

		// Lists and their cards.
		r.Route("/lists", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/{listID}", s.handleGetList)
			r.Patch("/{listID}", s.handleUpdateList)
			r.Delete("/{listID}", s.handleDeleteList)

			r.Post("/{listID}/cards", s.handleCreateCard)
			r.Get("/{listID}/cards", s.handleCardsForList)
		})

		// Cards, assignments, comments.
		r.Route("/cards", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/{cardID}", s.handleGetCard)
			r.Patch("/{cardID}", s.handleUpdateCard)
			r.Delete("/{cardID}", s.handleDeleteCard)

			r.Post("/{cardID}/assignments", s.handleAssignUser)
			r.Get("/{cardID}/assignments", s.handleListAssignees)
			r.Delete("/{cardID}/assignments/{userID}", s.handleUnassignUser)

			r.Post("/{cardID}/comments", s.handleCreateComment)
			r.Get("/{cardID}/comments", s.handleCommentsForCard)
		})

		// Comment edits and deletes address the comment directly.
		r.Route("/comments", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Patch("/{commentID}", s.handleUpdateComment)
			r.Delete("/{commentID}", s.handleDeleteComment)
		})

		// Notifications.
		r.Route("/notifications", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListNotifications)
			r.Get("/unread-count", s.handleUnreadCount)
			r.Patch("/{notificationID}/read", s.handleMarkNotificationRead)
			r.Patch("/read-all", s.handleMarkAllNotificationsRead)
			r.Delete("/{notificationID}", s.handleDeleteNotification)
		})
	})
}

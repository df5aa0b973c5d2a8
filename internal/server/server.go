package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/simplifyx/scamguard/internal/classifier"
	"github.com/simplifyx/scamguard/internal/config"
	"github.com/simplifyx/scamguard/internal/database"
	"github.com/simplifyx/scamguard/internal/oracle"
)

// SessionToken is the placeholder token issued on login. Real session
// management is out of scope for the demonstration API.
const SessionToken = "fake-jwt-token-12345"

// Server is the HTTP boundary of the analysis engine.
type Server struct {
	lists      *config.Lists
	oracle     *oracle.Oracle
	classifier *classifier.Classifier
	db         *database.ThreatDB
	logger     *slog.Logger

	// sessions maps issued tokens to user IDs.
	mu       sync.RWMutex
	sessions map[string]int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server over the given collaborators. db may be nil; the
// user endpoints then answer 503.
func New(lists *config.Lists, o *oracle.Oracle, c *classifier.Classifier, db *database.ThreatDB, opts ...Option) *Server {
	s := &Server{
		lists:      lists,
		oracle:     o,
		classifier: c,
		db:         db,
		logger:     slog.Default(),
		sessions:   make(map[string]int64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(s.logRequests)

	r.Get("/", s.handleRoot)

	r.Route("/api", func(r chi.Router) {
		r.Get("/lists", s.handleLists)
		r.Post("/analyze-domain", s.handleAnalyzeDomain)
		r.Post("/analyze-content", s.handleAnalyzeContent)

		r.Route("/user", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
			r.Get("/whitelist", s.handleWhitelist)
		})
	})

	return r
}

// logRequests logs one line per request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// session resolves the Authorization bearer token to a user ID.
func (s *Server) session(token string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.sessions[token]
	return userID, ok
}

// startSession records a token for the user.
func (s *Server) startSession(token string, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = userID
}

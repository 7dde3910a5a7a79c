package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mhrabal/tally/internal/domain/checkin"
	"github.com/mhrabal/tally/internal/domain/cooldown"
	"github.com/mhrabal/tally/internal/domain/creds"
	"github.com/mhrabal/tally/internal/metrics"
	"github.com/mhrabal/tally/internal/session"
)

// Server wires HTTP handlers around the check-in core.
type Server struct {
	checkins *checkin.Service
	gate     *cooldown.Gate
	sessions *session.Store
	creds    *creds.Credentials
	metrics  *metrics.Metrics
	logger   *slog.Logger
	webDir   string
	clock    func() time.Time
}

// Options carries the Server dependencies.
type Options struct {
	Checkins *checkin.Service
	Gate     *cooldown.Gate
	Sessions *session.Store
	Creds    *creds.Credentials
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	WebDir   string
	Clock    func() time.Time
}

// NewServer creates the HTTP router with middleware.
func NewServer(opts Options) *chi.Mux {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	srv := &Server{
		checkins: opts.Checkins,
		gate:     opts.Gate,
		sessions: opts.Sessions,
		creds:    opts.Creds,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
		webDir:   opts.WebDir,
		clock:    opts.Clock,
	}

	r := chi.NewRouter()
	r.Use(requestLogger(opts.Logger))
	r.Use(srv.sessionMiddleware)

	// The QR frontend marks its requests; everything under /api and the
	// login endpoint is unreachable without the marker.
	r.Group(func(r chi.Router) {
		r.Use(RequireSource)
		r.Get("/api", srv.handleCheckin)
		r.Get("/api/get_data", srv.handleGetData)
		r.Get("/api/can_i_login", srv.handleCanLogin)
		r.Post("/login", srv.handleLogin)
	})

	r.Get("/health", srv.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", srv.page("index"))
	r.Get("/login", srv.page("login"))
	r.Get("/privacy", srv.page("privacy"))
	r.Get("/contact", srv.page("contact"))
	r.Get("/dashboard", srv.handleDashboard)
	r.NotFound(srv.handleNotFound)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleCheckin is the main endpoint a QR scan lands on. The cooldown gate
// decides whether the visit counts; the ledger only sees allowed visits.
func (s *Server) handleCheckin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := s.clock()

	sessionID, ok := SessionIDFromContext(ctx)
	if !ok {
		http.Error(w, "missing session", http.StatusInternalServerError)
		return
	}

	allowed, err := s.gate.TryEnter(ctx, sessionID, now)
	if err != nil {
		s.logger.Error("cooldown check failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if !allowed {
		rejection, err := s.checkins.Status()
		if err != nil {
			s.logger.Error("status projection failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		s.metrics.IncrementRejected()
		writeJSON(w, http.StatusAlreadyReported, rejection)
		return
	}

	summary, err := s.checkins.RecordVisit(ctx, now)
	if err != nil {
		s.logger.Error("recording visit failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.metrics.IncrementCheckins()
	writeJSON(w, http.StatusOK, summary)
}

// handleGetData returns the full day-keyed history for the dashboard.
func (s *Server) handleGetData(w http.ResponseWriter, r *http.Request) {
	if !s.sessionAuthorized(r) {
		writeJSON(w, http.StatusUnauthorized, Response{
			Title:   "Unauthorized",
			Message: "You're not allowed to retrieve this data.",
		})
		return
	}

	writeJSON(w, http.StatusOK, stateFromLedger(s.checkins.History()))
}

// handleLogin verifies the submitted credentials and marks the session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Title:   "Bad Request",
			Message: "Malformed login payload.",
		})
		return
	}

	if err := s.creds.Authenticate(req.Username, req.Password); err != nil {
		if !errors.Is(err, creds.ErrInvalidLogin) {
			s.logger.Error("login verification failed", "error", err)
		}
		s.metrics.IncrementAuthFailures()
		writeJSON(w, http.StatusUnauthorized, Response{
			Title:   "Unauthorized",
			Message: "Invalid username or password.",
		})
		return
	}

	sessionID, _ := SessionIDFromContext(ctx)
	if err := s.sessions.SetAuth(ctx, sessionID, session.Auth{
		Hash: s.creds.PasswordHash,
		User: req.Username,
	}); err != nil {
		s.logger.Error("storing session auth failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, RoutingResponse{
		Title:   "Logged in!",
		Message: "Redirecting to dashboard...",
		Route:   "/dashboard",
	})
}

// handleCanLogin is the auto-login probe the login page fires on load.
func (s *Server) handleCanLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.sessionAuthorized(r) {
		writeJSON(w, http.StatusOK, RoutingResponse{
			Title:   "You're already logged in!",
			Message: "Redirecting to dashboard...",
			Route:   "/dashboard",
		})
		return
	}

	// A stale flag means the credentials rotated; drop it so the cookie
	// does not keep failing silently.
	if sessionID, ok := SessionIDFromContext(ctx); ok {
		if err := s.sessions.ClearAuth(ctx, sessionID); err != nil {
			s.logger.Error("clearing session auth failed", "error", err)
		}
	}

	writeJSON(w, http.StatusUnauthorized, Response{
		Title:   "Couldn't auto login",
		Message: "Have your credentials reset? Resetting your cookies.",
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !s.sessionAuthorized(r) {
		writeJSON(w, http.StatusUnauthorized, Response{
			Title:   "Unauthorized",
			Message: "Failed to verify token.",
		})
		return
	}
	s.servePage(w, "dashboard", http.StatusOK)
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	s.servePage(w, "notfound", http.StatusNotFound)
}

// sessionAuthorized reports whether the request's session logged in against
// the current credentials.
func (s *Server) sessionAuthorized(r *http.Request) bool {
	ctx := r.Context()
	sessionID, ok := SessionIDFromContext(ctx)
	if !ok {
		return false
	}
	auth, ok, err := s.sessions.Auth(ctx, sessionID)
	if err != nil || !ok {
		return false
	}
	return s.creds.VerifySession(auth.Hash, auth.User)
}

func (s *Server) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.servePage(w, name, http.StatusOK)
	}
}

func (s *Server) servePage(w http.ResponseWriter, name string, status int) {
	content, err := os.ReadFile(filepath.Join(s.webDir, name+".html"))
	if err != nil {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<h1>404 Not Found</h1>"))
		return
	}
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	_, _ = w.Write(content)
}

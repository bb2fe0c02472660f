// Package web serves the resume matcher page and its JSON API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonathan/resume-matcher/internal/logging"
	"github.com/jonathan/resume-matcher/internal/settings"
	"github.com/jonathan/resume-matcher/internal/ui"
	"github.com/jonathan/resume-matcher/internal/web/ratelimit"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Upstream is the external search and matching service.
type Upstream interface {
	ui.Searcher
	ui.Matcher
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	upstream    Upstream
	logger      *zap.Logger
	renderer    *renderer
	sessions    *sessionRegistry
	rateLimiter *ratelimit.Limiter

	maxUpload     int64
	defaultTheme  ui.Theme
	secureCookies bool
	sweepInterval time.Duration
}

// Config holds server configuration
type Config struct {
	Port           int
	Upstream       Upstream
	Logger         *zap.Logger
	MaxUploadBytes int64
	SessionTTL     time.Duration
	DefaultTheme   string
	SecureCookies  bool
	RateLimit      *ratelimit.Config // nil loads RESUME_MATCHER_RATE_LIMIT_* settings
}

const (
	defaultMaxUpload = 10 << 20
	multipartMemory  = 1 << 20
)

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Upstream == nil {
		return nil, fmt.Errorf("upstream client is required")
	}

	rd, err := newRenderer()
	if err != nil {
		return nil, err
	}

	theme := ui.DefaultTheme
	if cfg.DefaultTheme != "" {
		parsed, ok := ui.ParseTheme(cfg.DefaultTheme)
		if !ok {
			return nil, fmt.Errorf("invalid default theme %q", cfg.DefaultTheme)
		}
		theme = parsed
	}

	logger := logging.OrNop(cfg.Logger).Named("web")
	s := &Server{
		upstream:      cfg.Upstream,
		logger:        logger,
		renderer:      rd,
		maxUpload:     cfg.MaxUploadBytes,
		defaultTheme:  theme,
		secureCookies: cfg.SecureCookies,
		sweepInterval: time.Minute,
	}
	if s.maxUpload <= 0 {
		s.maxUpload = defaultMaxUpload
	}

	s.sessions = newSessionRegistry(s.newShell, cfg.SessionTTL, cfg.SecureCookies, logger)

	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rlConfig)

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /search", s.handleSearch)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /theme", s.handleTheme)
	mux.HandleFunc("POST /notices/dismiss", s.handleDismiss)
	mux.HandleFunc("GET /health", s.handleHealth)

	// JSON API
	mux.Handle("GET /api/jobs", s.withCORS(http.HandlerFunc(s.handleAPIJobs)))
	mux.Handle("POST /api/matches", s.withCORS(http.HandlerFunc(s.handleAPIMatches)))
	mux.Handle("OPTIONS /api/", s.withCORS(http.NotFoundHandler()))

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRecover(s.withLogging(s.withRateLimit(mux))),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 5 * time.Minute, // Resume analysis upstream can take minutes on a cold start
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) newShell() *ui.Shell {
	return ui.NewShell(
		ui.NewJobSearch(s.upstream, s.logger),
		ui.NewResumeMatch(s.upstream, s.logger),
	)
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return s.sessions.run(gCtx, s.sweepInterval)
	})

	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Stop rate limiter cleanup goroutine
		s.rateLimiter.Stop()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr))
	})
}

// withRecover turns handler panics into 500 responses
func (s *Server) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.logger.Error("handler panic",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
					zap.Stack("stack"))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.count(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// X-Forwarded-For is ignored since it is client-controlled.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Int("remaining", info.Remaining),
		zap.Time("reset", info.ResetTime))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// themeToggle binds a theme toggle to the request's cookies.
func (s *Server) themeToggle(w http.ResponseWriter, r *http.Request) *ui.ThemeToggle {
	store := settings.NewCookieStore(w, r, settings.CookieOptions{Secure: s.secureCookies})
	return ui.NewThemeToggle(store, ui.WithDefaultTheme(s.defaultTheme))
}

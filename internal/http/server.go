package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"ore/internal/auth"
	"ore/internal/backend"
	"ore/internal/log"
	appweb "ore/web"
)

// ReportConfig carries the hour-to-day conversion settings shared by all
// report pages.
type ReportConfig struct {
	HoursPerDay float64
	Granularity int
	WeekCount   int
}

type Server struct {
	http.Server
	templates   *template.Template
	backend     backend.Backend
	sessions    *auth.Sessions
	reportCfg   ReportConfig
	rateLimiter *rateLimiter

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, be backend.Backend, sessions *auth.Sessions, reportCfg ReportConfig) *Server {
	mux := http.NewServeMux()

	if reportCfg.WeekCount <= 0 {
		reportCfg.WeekCount = 12
	}

	httpLogger := log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP)

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: log.Middleware(httpLogger)(mux),
		},
		backend:     be,
		sessions:    sessions,
		reportCfg:   reportCfg,
		rateLimiter: newRateLimiter(),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("GET /{$}", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("GET /people/{slug}", s.withSecurityHeaders(s.handlePersonReport))
	mux.HandleFunc("GET /projects/{slug}", s.withSecurityHeaders(s.handleProjectReport))
	mux.HandleFunc("GET /clients/{slug}", s.withSecurityHeaders(s.handleClientReport))

	mux.HandleFunc("GET /login", s.withSecurityHeaders(s.handleLoginForm))
	mux.HandleFunc("POST /login", s.withSecurityHeaders(s.handleLogin))
	mux.HandleFunc("POST /logout", s.withSecurityHeaders(s.handleLogout))

	mux.HandleFunc("POST /entries", s.withSecurityHeaders(s.requireSession(s.handleCreateEntry)))
	mux.HandleFunc("POST /entries/{id}/delete", s.withSecurityHeaders(s.requireSession(s.handleDeleteEntry)))
	mux.HandleFunc("POST /clients", s.withSecurityHeaders(s.requireSession(s.handleCreateClient)))
	mux.HandleFunc("POST /projects", s.withSecurityHeaders(s.requireSession(s.handleCreateProject)))
	mux.HandleFunc("POST /people", s.withSecurityHeaders(s.requireSession(s.handleCreatePerson)))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		if s.sessions != nil {
			s.sessions.Close()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request logging.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		reqLogger := log.FromContext(r.Context()).With(log.FieldRequestID, requestID)
		ctx := context.WithValue(r.Context(), log.LoggerContextKey, reqLogger)
		r = r.WithContext(ctx)

		reqLogger.InfoContext(ctx, "Request started", log.NewFields().
			WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery).
			WithClientIP(clientIP).
			ToSlice()...)

		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			reqLogger.WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldComponent, log.ComponentRateLimit)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		reqLogger.InfoContext(ctx, "Request completed", log.NewFields().
			WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery).
			WithHTTPResponse(rw.statusCode, duration.Milliseconds()).
			WithClientIP(clientIP).
			ToSlice()...)
	}
}

// requireSession guards mutating routes. With auth disabled it is a no-op.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.sessions != nil && s.sessions.Enabled() {
			token := ""
			if c, err := r.Cookie(auth.SessionCookie); err == nil {
				token = c.Value
			}
			if err := s.sessions.Check(token); err != nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
		}
		next(w, r)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	logger := log.FromContext(r.Context())
	if s.templates == nil {
		logger.ErrorContext(r.Context(), "Templates not loaded",
			log.FieldPath, r.URL.Path,
			log.FieldOperation, log.OpRender)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		logger.ErrorContext(r.Context(), "Template execution failed",
			log.FieldError, err.Error(),
			log.FieldPath, r.URL.Path,
			log.FieldOperation, log.OpRender,
			"template", name)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

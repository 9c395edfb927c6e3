// Package api serves the local web UI: server-rendered pages plus a JSON
// API the interactive form and share dialog talk to.
package api

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/secondbrain/brain-client/internal/guard"
)

// uiAPIPrefix is where the JSON operations live.
const uiAPIPrefix = "/ui/api"

// Options configure the server's public face.
type Options struct {
	Origin            string // client origin share links are built on
	LoginPath         string
	AllowedOrigins    []string
	AuthRatePerMinute int
	AuthBurst         int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	services        *Services
	opts            Options
	router          *chi.Mux
	api             huma.API
	pages           map[string]*template.Template
	authRateLimiter *RateLimiter
	logger          *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, opts Options, logger *slog.Logger) *Server {
	if opts.LoginPath == "" {
		opts.LoginPath = guard.DefaultRedirect
	}
	if len(opts.AllowedOrigins) == 0 && opts.Origin != "" {
		opts.AllowedOrigins = []string{opts.Origin}
	}
	if opts.AuthRatePerMinute <= 0 {
		opts.AuthRatePerMinute = 10
	}
	if opts.AuthBurst <= 0 {
		opts.AuthBurst = 5
	}

	router := chi.NewRouter()
	s := &Server{
		services:        services,
		opts:            opts,
		router:          router,
		pages:           parsePages(),
		authRateLimiter: NewRateLimiter(opts.AuthRatePerMinute, time.Minute, opts.AuthBurst),
		logger:          logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Brain Client UI API", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerPageRoutes()
	s.registerHealthRoutes()
	s.registerSessionRoutes()
	s.registerDashboardRoutes()
	s.registerFormRoutes()
	s.registerShareRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources.
func (s *Server) Close() {
	s.authRateLimiter.Stop()
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(s.crossOriginProtection().Handler)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	s.router.Use(s.requireSessionForUIAPI)
}

// crossOriginProtection rejects unsafe requests a browser marks as coming
// from another site, so no page the user visits can post to the UI with its
// stored token. Requests without browser fetch metadata pass through.
func (s *Server) crossOriginProtection() *http.CrossOriginProtection {
	cop := http.NewCrossOriginProtection()
	for _, origin := range s.opts.AllowedOrigins {
		if err := cop.AddTrustedOrigin(origin); err != nil {
			s.logger.Warn("ignoring trusted origin", "origin", origin, "error", err)
		}
	}
	cop.SetDenyHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Warn("cross-origin request rejected",
			"method", r.Method,
			"path", r.URL.Path,
			"origin", r.Header.Get("Origin"),
		)
		http.Error(w, "Cross-origin request rejected", http.StatusForbidden)
	}))
	return cop
}

// publicUIAPI lists JSON routes reachable without a session.
var publicUIAPI = []string{
	uiAPIPrefix + "/session",
	uiAPIPrefix + "/notices",
}

// requireSessionForUIAPI applies the JSON route guard to everything under
// the UI API prefix except the public routes.
func (s *Server) requireSessionForUIAPI(next http.Handler) http.Handler {
	guarded := guard.RequireJSON(s.services.Session, s.logger)(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if !strings.HasPrefix(path, uiAPIPrefix+"/") {
			next.ServeHTTP(w, r)
			return
		}
		for _, p := range publicUIAPI {
			if path == p {
				next.ServeHTTP(w, r)
				return
			}
		}
		guarded.ServeHTTP(w, r)
	})
}

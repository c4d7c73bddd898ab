package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/newsdesk/pkg/companies"
	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/present"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/monitor.go -pkg mocks -skip-ensure -fmt goimports . Monitor
//go:generate moq -out mocks/health.go -pkg mocks -skip-ensure -fmt goimports . HealthChecker

//go:embed templates/*.html
var templatesFS embed.FS

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	monitor   Monitor
	health    HealthChecker
	companies *companies.List
	presenter *present.Presenter
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
	templates  *template.Template
}

// Monitor runs news fetches and keeps the latest outcome
type Monitor interface {
	FetchNews(ctx context.Context, identifiers []string, forceRefresh bool) domain.Outcome
	Outcome() domain.Outcome
	Reset()
	Generation() uint64
}

// HealthChecker reports news service availability
type HealthChecker interface {
	Health(ctx context.Context) error
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetDateFormat() string
}

// New initializes a new server instance. health may be nil, status then reports backend as unknown.
func New(cfg ConfigProvider, mon Monitor, health HealthChecker, list *companies.List, version string, debug bool) *Server {
	if list == nil {
		list = companies.New()
	}
	s := &Server{
		config:    cfg,
		monitor:   mon,
		health:    health,
		companies: list,
		presenter: present.NewPresenter(),
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
		templates: template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("newsdesk", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024)) // 64KB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	// web ui
	s.router.HandleFunc("GET /{$}", s.indexHandler)
	s.router.HandleFunc("POST /companies", s.addCompanyHandler)
	s.router.HandleFunc("PUT /companies/{idx}", s.updateCompanyHandler)
	s.router.HandleFunc("DELETE /companies/{idx}", s.deleteCompanyHandler)
	s.router.HandleFunc("POST /fetch", s.fetchHandler)
	s.router.HandleFunc("GET /results", s.resultsHandler)
	s.router.HandleFunc("POST /reset", s.resetHandler)

	// RSS export of the latest results
	s.router.HandleFunc("GET /rss", s.rssFeedHandler)

	// API routes
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /fetch", s.apiFetchHandler)
	})
}

package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/services/judge"
	"gitlab.com/codejudge.net/internal/core/services/language"
	"gitlab.com/codejudge.net/internal/handlers"
	"gitlab.com/codejudge.net/internal/handlers/languages"
	"gitlab.com/codejudge.net/internal/handlers/submissions"
)

type ServiceProvider struct {
	judgeService judge.IJudgeService
	registry     language.IRegistry
	tokens       primary.TokenService
}

// NewServiceProvider bundles the services behind the API; tokens may be nil
func NewServiceProvider(
	judgeService judge.IJudgeService,
	registry language.IRegistry,
	tokens primary.TokenService,
) *ServiceProvider {
	return &ServiceProvider{
		judgeService: judgeService,
		registry:     registry,
		tokens:       tokens,
	}
}

type Server struct {
	router          *mux.Router
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	logger          primary.Logger

	mu  sync.Mutex
	srv *http.Server
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.judgeService == nil || s.ServiceProvider.registry == nil {
		return errors.New("http server requires a judge service and a language registry")
	}

	r := mux.NewRouter()
	middleware := handlers.New(s.ServiceProvider.tokens, s.logger)
	r.Use(middleware.LoggingMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		handlers.ResponseWithJson(w, http.StatusOK, map[string]string{"status": "ok", "service": s.ServiceName})
	}).Methods("GET")

	// handlers register full /api paths; the subrouter only scopes the token guard
	api := r.NewRoute().Subrouter()
	api.Use(middleware.JWTMiddleware)
	submissions.
		NewSubmissionHandler(s.ServiceProvider.judgeService, s.logger).
		RegisterRoutes(api)
	languages.NewHandler(s.ServiceProvider.registry).Register(api)

	s.router = r
	return nil
}

// Handler exposes the router for in-process callers
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Stop is called; it returns nil after a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	s.logger.Info("Server listening", "addr", srv.Addr, "service", s.ServiceName)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Server error", "error", err)
		return fmt.Errorf("failed to serve http: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}
	return nil
}

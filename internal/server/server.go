// Package server provides the HTTP API of the calculator.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/division"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/service"
)

// Server is the HTTP server of the calculator API. It wraps http.Server with
// the application's routes, middleware and graceful shutdown.
type Server struct {
	factory        division.DividerFactory
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	router         chi.Router
	logger         logging.Logger
	shutdownSignal chan os.Signal
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
}

// NewServer creates a Server over the division strategies of factory.
//
// Parameters:
//   - factory: The division strategies offered by the API.
//   - cfg: The application configuration (port, operand limit, timeout).
//   - opts: Optional functional options (e.g., WithLogger, WithService).
//
// Returns:
//   - *Server: A pointer to the initialized Server.
func NewServer(factory division.DividerFactory, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		factory:        factory,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server", zerolog.InfoLevel),
		shutdownSignal: make(chan os.Signal, 1),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
	}
	if cfg.MaxDigits > 0 {
		s.securityConfig.MaxDigits = cfg.MaxDigits
	}
	if cfg.Timeout > 0 {
		s.timeouts.RequestTimeout = cfg.Timeout
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.service == nil {
		s.service = service.NewCalculatorService(s.factory, s.securityConfig.MaxDigits, service.DefaultCacheSize)
	}
	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.router,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// routes builds the router. Middleware order: Recoverer -> Security ->
// RateLimit -> Logging -> Metrics -> handler.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(SecurityMiddleware(s.securityConfig))
	r.Use(RateLimitMiddleware(s.rateLimiter))
	r.Use(s.loggingMiddleware)
	r.Use(s.metricsMiddleware)

	r.Get("/calculate", s.handleCalculate)
	r.Get("/health", s.handleHealth)
	r.Get("/algorithms", s.handleAlgorithms)
	r.Get("/metrics", s.handleMetrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeErrorResponse(w, http.StatusNotFound, "Unknown endpoint")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured port until SIGINT or SIGTERM is received,
// then shuts down gracefully.
//
// Returns:
//   - error: A ServerError if the server fails to start or to shut down.
func (s *Server) Start() error {
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.shutdownSignal)
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server",
			logging.String("addr", s.httpServer.Addr),
			logging.Int("max_digits", s.securityConfig.MaxDigits),
			logging.Duration("request_timeout", s.timeouts.RequestTimeout))
		s.logger.Println("Available endpoints:")
		s.logger.Println("  GET /calculate?a=<integer>&b=<integer>&op=<operation>&algo=<strategy>")
		s.logger.Println("  GET /health")
		s.logger.Println("  GET /algorithms")
		s.logger.Println("  GET /metrics")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-s.shutdownSignal:
		s.logger.Info("shutdown signal received, initiating graceful shutdown")
	case err := <-errCh:
		return apperrors.NewServerError("server failed to start", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}

	s.logger.Info("server stopped gracefully")
	return nil
}

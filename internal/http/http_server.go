package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gitlab.com/inferd-2025.net/internal/core/ports/primary"
	"gitlab.com/inferd-2025.net/internal/core/ports/secondary"
	"gitlab.com/inferd-2025.net/internal/core/services/dispatch"
	"gitlab.com/inferd-2025.net/internal/handlers/audit"
	"gitlab.com/inferd-2025.net/internal/handlers/classify"
	"gitlab.com/inferd-2025.net/internal/handlers/health"
	"gitlab.com/inferd-2025.net/internal/workerpool"
)

type ServiceProvider struct {
	dispatcher dispatch.IDispatcherService
	pool       *workerpool.Pool
	auditRepo  secondary.RequestLogRepository
}

// NewServiceProvider wires the handlers' dependencies. auditRepo may be nil
// when auditing is disabled; the audit routes are then not registered.
func NewServiceProvider(dispatcher dispatch.IDispatcherService, pool *workerpool.Pool, auditRepo secondary.RequestLogRepository) *ServiceProvider {
	return &ServiceProvider{
		dispatcher: dispatcher,
		pool:       pool,
		auditRepo:  auditRepo,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	logger          primary.Logger
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
	r := mux.NewRouter()
	classify.NewHandler(s.ServiceProvider.dispatcher, s.logger).RegisterRoutes(r)
	health.NewHandler(s.ServiceProvider.pool).RegisterRoutes(r)
	if s.ServiceProvider.auditRepo != nil {
		audit.NewHandler(s.ServiceProvider.auditRepo, s.logger).RegisterRoutes(r)
	}
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	s.router = r
	return nil
}

func (s *Server) Start(ctx context.Context) {
	// Set up server. The write timeout must outlive the dispatcher's wait
	// budget or timed-out requests would be cut off mid-response.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.srv = srv

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
	}
}

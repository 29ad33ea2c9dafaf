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

	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/secondary"
	auth2 "github.com/KnellBalm/Offline-Lab/internal/core/services/auth"
	"github.com/KnellBalm/Offline-Lab/internal/core/services/grading"
	"github.com/KnellBalm/Offline-Lab/internal/core/services/practice"
	"github.com/KnellBalm/Offline-Lab/internal/core/services/problemset"
	"github.com/KnellBalm/Offline-Lab/internal/core/services/stats"
	"github.com/KnellBalm/Offline-Lab/internal/handlers"
	"github.com/KnellBalm/Offline-Lab/internal/handlers/auth"
	practicehdl "github.com/KnellBalm/Offline-Lab/internal/handlers/practice"
	"github.com/KnellBalm/Offline-Lab/internal/handlers/sqlapi"
	statshdl "github.com/KnellBalm/Offline-Lab/internal/handlers/stats"
)

type ServiceProvider struct {
	gradingService  grading.IGradingService
	problemService  problemset.IProblemSetService
	practiceService practice.IPracticeService
	statsService    stats.IStatsService
	runner          secondary.QueryRunner
	userPort        secondary.UserPort

	ggAuth    auth2.IAuthService
	localAuth auth2.IAuthService
}

func NewServiceProvider(
	gradingService grading.IGradingService,
	problemService problemset.IProblemSetService,
	practiceService practice.IPracticeService,
	statsService stats.IStatsService,
	runner secondary.QueryRunner,
	userPort secondary.UserPort,
	ggAuth auth2.IAuthService,
	localAuth auth2.IAuthService,
) *ServiceProvider {
	return &ServiceProvider{
		gradingService:  gradingService,
		problemService:  problemService,
		practiceService: practiceService,
		statsService:    statsService,
		runner:          runner,
		userPort:        userPort,
		ggAuth:          ggAuth,
		localAuth:       localAuth,
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
	mw := handlers.New()

	sqlapi.NewHandler(
		s.ServiceProvider.gradingService,
		s.ServiceProvider.problemService,
		s.ServiceProvider.runner,
		s.logger,
	).RegisterRoutes(r, mw)
	practicehdl.NewHandler(s.ServiceProvider.practiceService, s.logger).RegisterRoutes(r)
	statshdl.NewHandler(s.ServiceProvider.statsService, s.logger).RegisterRoutes(r, mw)
	auth.NewHandler(s.logger).RegisterRoutes(r, &auth.ServiceDependencies{
		GGAuthService:    s.ServiceProvider.ggAuth,
		LocalAuthService: s.ServiceProvider.localAuth,
		UserPort:         s.ServiceProvider.userPort,
	}, mw)

	s.router = r
	return nil
}

func (s *Server) Start(ctx context.Context) {
	// Set up server
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

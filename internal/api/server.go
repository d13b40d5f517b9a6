package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/limbo/exercise-tracker/internal/service"
)

const (
	defaultRequestTimeout = 10 * time.Second
	shutdownTimeout       = 30 * time.Second
)

type Server struct {
	mx              *chi.Mux
	userService     service.UserServiceI
	exerciseService service.ExerciseServiceI
	requestTimeout  time.Duration
}

type ServicesList struct {
	UserService     service.UserServiceI
	ExerciseService service.ExerciseServiceI
	// Deadline for storage calls of one request. Zero means 10s
	RequestTimeout time.Duration
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:              chi.NewMux(),
		userService:     servicesOptions.UserService,
		exerciseService: servicesOptions.ExerciseService,
		requestTimeout:  servicesOptions.RequestTimeout,
	}
	if s.requestTimeout <= 0 {
		s.requestTimeout = defaultRequestTimeout
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mx.Use(
		s.RequestIDMiddleware,
		s.SettingUpLoggerMiddleware,
		s.RecoveryMiddleware,
		s.MetricsMiddleware,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"*"},
		}),
	)
	s.mx.Route("/api/exercise", func(r chi.Router) {
		r.Post("/new-user", s.handle(s.CreateUser))
		r.Get("/users", s.handle(s.ListUsers))
		r.Post("/add", s.handle(s.AddExercise))
		r.Get("/log", s.handle(s.GetLog))
	})
	s.mx.Get("/health", s.Health)
	s.mx.Handle("/metrics", promhttp.Handler())
	s.mx.NotFound(s.NotFound)
	s.mx.MethodNotAllowed(s.NotFound)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mx.ServeHTTP(w, r)
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      s.requestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("server forced to shutdown: " + err.Error())
	}
	slog.Info("server stopped gracefully")
	return nil
}

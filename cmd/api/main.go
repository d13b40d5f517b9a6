// Exercise tracker API: users and their logged exercises.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/limbo/exercise-tracker/internal/api"
	"github.com/limbo/exercise-tracker/internal/repository"
	"github.com/limbo/exercise-tracker/internal/service"
	"github.com/limbo/exercise-tracker/pkg/cleanup"
	"github.com/limbo/exercise-tracker/pkg/clock"
	"github.com/limbo/exercise-tracker/pkg/config"
	"github.com/limbo/exercise-tracker/pkg/logger"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	logger.Setup(cfg.GetStringOr("LOG_LEVEL", "info"), cfg.GetString("LOG_FILE"))
	defer cleanup.CleanUp()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	storage, err := repository.Open(openCtx, cfg.StorageURI(), repository.OpenOptions{
		MigrationsDir: cfg.GetStringOr("MIGRATIONS_DIR", "./migrations"),
	})
	cancel()
	if err != nil {
		slog.Error("opening storage error", slog.String("error", err.Error()))
		cleanup.CleanUp()
		os.Exit(1)
	}
	slog.Info("storage opened", slog.String("backend", storage.Backend))

	userService := service.NewUserService(storage.Users)
	exerciseService := service.NewExerciseService(userService, storage.Exercises, clock.New())
	serv := api.New(&api.ServicesList{
		UserService:     userService,
		ExerciseService: exerciseService,
		RequestTimeout:  cfg.GetDuration("REQUEST_TIMEOUT", 10*time.Second),
	})
	if err := serv.Run(ctx, ":"+cfg.Port()); err != nil {
		slog.Error("server error", slog.String("error", err.Error()))
	}
}

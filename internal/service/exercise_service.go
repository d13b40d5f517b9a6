package service

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	errorvalues "github.com/limbo/exercise-tracker/internal/error_values"
	"github.com/limbo/exercise-tracker/internal/repository"
	"github.com/limbo/exercise-tracker/pkg/clock"
	"github.com/limbo/exercise-tracker/pkg/entity"
	"github.com/limbo/exercise-tracker/pkg/metrics"
)

// Lower bound of a log query without from.
var epochStart = time.Unix(0, 0).UTC()

type ExerciseService struct {
	users     UserServiceI
	exercises repository.ExercisesRepositoryI
	clock     clock.Clock
	// Upper bound of a log query without to: one day after the service was built
	defaultTo time.Time
}

func NewExerciseService(users UserServiceI, exercisesRepo repository.ExercisesRepositoryI, clk clock.Clock) *ExerciseService {
	if users == nil || exercisesRepo == nil {
		log.Fatal("on exercise service provided nil dependencies")
	}
	if clk == nil {
		clk = clock.New()
	}
	return &ExerciseService{
		users:     users,
		exercises: exercisesRepo,
		clock:     clk,
		defaultTo: clk.Now().AddDate(0, 0, 1),
	}
}

func (es *ExerciseService) AddExercise(ctx context.Context, req *AddExerciseRequest) (*entity.ExerciseResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	duration, err := strconv.ParseFloat(req.Duration, 64)
	if err != nil {
		return nil, errorvalues.NewValidationError("duration", "Cast to Number failed for value \""+req.Duration+"\" at path \"duration\"")
	}
	user, err := es.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	date := es.clock.Now()
	if req.Date != "" {
		date, err = ParseDate(req.Date)
		if err != nil {
			return nil, errorvalues.NewValidationError("date", "Cast to Date failed for value \""+req.Date+"\" at path \"date\"")
		}
	}
	exercise := entity.Exercise{
		UserID:      user.ID,
		Description: req.Description,
		Duration:    duration,
		Date:        date.UnixMilli(),
	}
	if err := es.exercises.Create(ctx, &exercise); err != nil {
		return nil, errorvalues.NewStorageError("creating exercise", err)
	}
	metrics.ExercisesCreatedTotal.Inc()
	return &entity.ExerciseResponse{
		ID:          user.ID,
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        FormatDate(exercise.Date),
	}, nil
}

func (es *ExerciseService) GetLog(ctx context.Context, query *LogQuery) (*entity.ExerciseLog, error) {
	if err := validateStruct(query); err != nil {
		return nil, err
	}
	user, err := es.users.GetByID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}
	from, to := epochStart, es.defaultTo
	if query.From != "" {
		if from, err = ParseDate(query.From); err != nil {
			return nil, errorvalues.NewValidationError("from", "Cast to Date failed for value \""+query.From+"\" at path \"from\"")
		}
	}
	if query.To != "" {
		if to, err = ParseDate(query.To); err != nil {
			return nil, errorvalues.NewValidationError("to", "Cast to Date failed for value \""+query.To+"\" at path \"to\"")
		}
	}
	exercises, err := es.exercises.Find(ctx, entity.ExerciseFilter{
		UserID: user.ID,
		From:   from.UnixMilli(),
		To:     to.UnixMilli(),
		Limit:  ParseLimit(query.Limit),
	})
	if err != nil {
		return nil, errorvalues.NewStorageError("finding exercises", err)
	}
	entries := make([]entity.LogEntry, 0, len(exercises))
	for _, e := range exercises {
		entries = append(entries, entity.LogEntry{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        FormatDate(e.Date),
		})
	}
	return &entity.ExerciseLog{
		ID:       user.ID,
		Username: user.Username,
		Count:    len(entries),
		Log:      entries,
	}, nil
}

// ParseLimit returns 0, meaning unlimited, for anything but a positive integer.
func ParseLimit(raw string) int {
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

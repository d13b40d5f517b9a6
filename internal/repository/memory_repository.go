package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	errorvalues "github.com/limbo/exercise-tracker/internal/error_values"
	"github.com/limbo/exercise-tracker/pkg/entity"
)

// MemoryUsersRepository keeps users in process memory. Used for local runs and tests.
type MemoryUsersRepository struct {
	mu    sync.RWMutex
	users []entity.User
}

func NewMemoryUsersRepo() *MemoryUsersRepository {
	return &MemoryUsersRepository{}
}

func (mr *MemoryUsersRepository) Create(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	mr.mu.Lock()
	defer mr.mu.Unlock()
	user.ID = uuid.NewString()
	mr.users = append(mr.users, *user)
	return nil
}

func (mr *MemoryUsersRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	for _, u := range mr.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, errorvalues.ErrUserNotFound
}

func (mr *MemoryUsersRepository) List(ctx context.Context) ([]entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	users := make([]entity.User, len(mr.users))
	copy(users, mr.users)
	return users, nil
}

type MemoryExercisesRepository struct {
	mu        sync.RWMutex
	exercises []entity.Exercise
}

func NewMemoryExercisesRepo() *MemoryExercisesRepository {
	return &MemoryExercisesRepository{}
}

func (mr *MemoryExercisesRepository) Create(ctx context.Context, exercise *entity.Exercise) error {
	if exercise == nil {
		return errors.New("exercise is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	mr.mu.Lock()
	defer mr.mu.Unlock()
	exercise.ID = uuid.NewString()
	mr.exercises = append(mr.exercises, *exercise)
	return nil
}

func (mr *MemoryExercisesRepository) Find(ctx context.Context, filter entity.ExerciseFilter) ([]entity.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mr.mu.RLock()
	result := make([]entity.Exercise, 0)
	for _, e := range mr.exercises {
		if e.UserID == filter.UserID && e.Date >= filter.From && e.Date < filter.To {
			result = append(result, e)
		}
	}
	mr.mu.RUnlock()
	// equal dates keep insertion order
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

package service

import (
	"context"

	"github.com/limbo/exercise-tracker/pkg/entity"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
}

type AddExerciseRequest struct {
	UserID      string `json:"userId" validate:"required"`
	Description string `json:"description" validate:"required"`
	Duration    string `json:"duration" validate:"required,numeric"`
	// Empty means now
	Date string `json:"date" validate:"omitempty,calendar_date"`
}

type LogQuery struct {
	UserID string `json:"userId" validate:"required"`
	From   string `json:"from" validate:"omitempty,calendar_date"`
	To     string `json:"to" validate:"omitempty,calendar_date"`
	// Non-numeric, zero or negative means unlimited
	Limit string `json:"limit"`
}

type UserServiceI interface {
	// Validates username and stores new user. Returns user with generated ID
	CreateUser(ctx context.Context, req *CreateUserRequest) (*entity.User, error)
	// Lists every user, empty slice when there are none
	ListUsers(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

type ExerciseServiceI interface {
	// Resolves the user, then stores the exercise with normalized date
	AddExercise(ctx context.Context, req *AddExerciseRequest) (*entity.ExerciseResponse, error)
	// Resolves the user, then returns exercises within [from, to) sorted by date
	GetLog(ctx context.Context, query *LogQuery) (*entity.ExerciseLog, error)
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/exercise-tracker/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user and sets its generated ID
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by id. Ids malformed for the backend are reported as ErrUserNotFound
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// Lists all users in insertion order
	List(ctx context.Context) ([]entity.User, error)
}

type ExercisesRepositoryI interface {
	// Creates new exercise and sets its generated ID
	Create(ctx context.Context, exercise *entity.Exercise) error
	// Provides user's exercises within [From, To) sorted by date ascending
	Find(ctx context.Context, filter entity.ExerciseFilter) ([]entity.Exercise, error)
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

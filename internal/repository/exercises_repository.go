package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/limbo/exercise-tracker/pkg/entity"
)

const (
	insertExerciseQuery = `INSERT INTO exercises (id, user_id, description, duration, date) VALUES ($1, $2, $3, $4, $5);`
	findExercisesQuery  = `SELECT id, user_id, description, duration, date FROM exercises WHERE user_id = $1 AND date >= $2 AND date < $3 ORDER BY date ASC, seq ASC`
)

type ExercisesRepository struct {
	conn PgConnection
}

func NewExercisesRepo(conn PgConnection) *ExercisesRepository {
	return &ExercisesRepository{
		conn: conn,
	}
}

func (er *ExercisesRepository) Create(ctx context.Context, exercise *entity.Exercise) error {
	if exercise == nil {
		return errors.New("exercise is nil")
	}
	id := uuid.New()
	_, err := er.conn.Exec(ctx, insertExerciseQuery,
		id,
		exercise.UserID,
		exercise.Description,
		exercise.Duration,
		exercise.Date,
	)
	if err != nil {
		return errors.New("creating exercise db error: " + err.Error())
	}
	exercise.ID = id.String()
	return nil
}

func (er *ExercisesRepository) Find(ctx context.Context, filter entity.ExerciseFilter) ([]entity.Exercise, error) {
	query := findExercisesQuery
	args := []any{filter.UserID, filter.From, filter.To}
	if filter.Limit > 0 {
		query += ` LIMIT $4`
		args = append(args, filter.Limit)
	}
	rows, err := er.conn.Query(ctx, query+`;`, args...)
	if err != nil {
		return nil, errors.New("getting exercises by uid error: " + err.Error())
	}
	defer rows.Close()
	exercises := make([]entity.Exercise, 0)
	for rows.Next() {
		var (
			e  entity.Exercise
			id uuid.UUID
		)
		if err := rows.Scan(&id, &e.UserID, &e.Description, &e.Duration, &e.Date); err != nil {
			return nil, errors.New("unmarshalling exercise error: " + err.Error())
		}
		e.ID = id.String()
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning exercises: " + err.Error())
	}
	return exercises, nil
}

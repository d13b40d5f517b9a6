package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	errorvalues "github.com/limbo/exercise-tracker/internal/error_values"
	"github.com/limbo/exercise-tracker/pkg/entity"
)

type UsersRepository struct {
	conn PgConnection
}

func NewUsersRepo(conn PgConnection) *UsersRepository {
	return &UsersRepository{
		conn: conn,
	}
}

func (ur *UsersRepository) Create(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	id := uuid.New()
	_, err := ur.conn.Exec(ctx, `INSERT INTO users (id, username) VALUES ($1, $2);`, id, user.Username)
	if err != nil {
		return errors.New("creating user db error: " + err.Error())
	}
	user.ID = id.String()
	return nil
}

func (ur *UsersRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, errorvalues.ErrUserNotFound
	}
	var (
		user  entity.User
		rowID uuid.UUID
	)
	row := ur.conn.QueryRow(ctx, `SELECT id, username FROM users WHERE id = $1;`, uid)
	if err := row.Scan(&rowID, &user.Username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user by id error: " + err.Error())
	}
	user.ID = rowID.String()
	return &user, nil
}

func (ur *UsersRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := ur.conn.Query(ctx, `SELECT id, username FROM users ORDER BY seq;`)
	if err != nil {
		return nil, errors.New("listing users error: " + err.Error())
	}
	defer rows.Close()
	users := make([]entity.User, 0)
	for rows.Next() {
		var (
			u  entity.User
			id uuid.UUID
		)
		if err := rows.Scan(&id, &u.Username); err != nil {
			return nil, errors.New("unmarshalling user error: " + err.Error())
		}
		u.ID = id.String()
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("unexpected error after scanning users: " + err.Error())
	}
	return users, nil
}

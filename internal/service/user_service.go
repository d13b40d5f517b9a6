package service

import (
	"context"
	"errors"
	"log"

	errorvalues "github.com/limbo/exercise-tracker/internal/error_values"
	"github.com/limbo/exercise-tracker/internal/repository"
	"github.com/limbo/exercise-tracker/pkg/entity"
	"github.com/limbo/exercise-tracker/pkg/metrics"
)

type UserService struct {
	repo repository.UsersRepositoryI
}

func NewUserService(usersRepo repository.UsersRepositoryI) *UserService {
	if usersRepo == nil {
		log.Fatal("provided nil usersRepo")
	}
	return &UserService{
		repo: usersRepo,
	}
}

func (us *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*entity.User, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	user := entity.User{
		Username: req.Username,
	}
	if err := us.repo.Create(ctx, &user); err != nil {
		return nil, errorvalues.NewStorageError("creating user", err)
	}
	metrics.UsersCreatedTotal.Inc()
	return &user, nil
}

func (us *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := us.repo.List(ctx)
	if err != nil {
		return nil, errorvalues.NewStorageError("listing users", err)
	}
	if users == nil {
		users = make([]entity.User, 0)
	}
	return users, nil
}

func (us *UserService) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, &errorvalues.NotFoundError{Message: "unknown userId", Err: err}
		}
		return nil, errorvalues.NewStorageError("searching user", err)
	}
	return user, nil
}

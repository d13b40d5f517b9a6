package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	errorvalues "github.com/limbo/exercise-tracker/internal/error_values"
	"github.com/limbo/exercise-tracker/pkg/cleanup"
)

const defaultMongoDatabase = "exercise-track"

const (
	BackendMongo    = "mongodb"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Storage is the pair of repositories backing the services.
type Storage struct {
	Backend   string
	Users     UsersRepositoryI
	Exercises ExercisesRepositoryI
}

type OpenOptions struct {
	// Directory with goose migrations, applied on Postgres. Empty skips migrating.
	MigrationsDir string
}

// Backend reports which storage backend serves the connection string.
func Backend(uri string) (string, error) {
	scheme, _, ok := strings.Cut(uri, "://")
	if !ok {
		return "", fmt.Errorf("%w: %q", errorvalues.ErrUnknownScheme, uri)
	}
	switch strings.ToLower(scheme) {
	case "mongodb", "mongodb+srv":
		return BackendMongo, nil
	case "postgres", "postgresql":
		return BackendPostgres, nil
	case "memory":
		return BackendMemory, nil
	}
	return "", fmt.Errorf("%w: %q", errorvalues.ErrUnknownScheme, scheme)
}

// Open connects to the backend selected by uri. Connections are closed by cleanup.CleanUp.
func Open(ctx context.Context, uri string, opts OpenOptions) (*Storage, error) {
	backend, err := Backend(uri)
	if err != nil {
		return nil, err
	}
	switch backend {
	case BackendMongo:
		db, err := NewMongoDatabase(ctx, uri)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Backend:   backend,
			Users:     NewMongoUsersRepo(db),
			Exercises: NewMongoExercisesRepo(db),
		}, nil
	case BackendPostgres:
		pool, err := NewPgPool(ctx, uri)
		if err != nil {
			return nil, err
		}
		if opts.MigrationsDir != "" {
			if err := Migrate(pool, opts.MigrationsDir); err != nil {
				return nil, err
			}
		}
		return &Storage{
			Backend:   backend,
			Users:     NewUsersRepo(pool),
			Exercises: NewExercisesRepo(pool),
		}, nil
	default:
		return &Storage{
			Backend:   backend,
			Users:     NewMemoryUsersRepo(),
			Exercises: NewMemoryExercisesRepo(),
		}, nil
	}
}

func NewPgPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, errors.New("creating pgxpool error: " + err.Error())
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.New("error while pinging pgxpool: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return pool, nil
}

// Migrate applies goose migrations from dir through the pool.
func Migrate(pool *pgxpool.Pool, dir string) error {
	db := stdlib.OpenDBFromPool(pool)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.New("setting goose dialect error: " + err.Error())
	}
	if err := goose.Up(db, dir); err != nil {
		return errors.New("applying migrations error: " + err.Error())
	}
	slog.Info("migrations applied", slog.String("dir", dir))
	return nil
}

// NewMongoDatabase connects to uri and returns the database it names, exercise-track by default.
func NewMongoDatabase(ctx context.Context, uri string) (*mongo.Database, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, errors.New("parsing mongo uri error: " + err.Error())
	}
	name := cs.Database
	if name == "" {
		name = defaultMongoDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.New("connecting to mongo error: " + err.Error())
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.New("error while pinging mongo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "disconnecting mongo client",
		F: func() error {
			return client.Disconnect(context.Background())
		},
	})
	return client.Database(name), nil
}

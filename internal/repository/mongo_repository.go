package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errorvalues "github.com/limbo/exercise-tracker/internal/error_values"
	"github.com/limbo/exercise-tracker/pkg/entity"
)

const (
	usersCollection     = "users"
	exercisesCollection = "exercises"
)

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id"`
	Username string             `bson:"username"`
}

type exerciseDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	UserID      string             `bson:"userId"`
	Description string             `bson:"description"`
	Duration    float64            `bson:"duration"`
	Date        int64              `bson:"date"`
}

type MongoUsersRepository struct {
	coll *mongo.Collection
}

func NewMongoUsersRepo(db *mongo.Database) *MongoUsersRepository {
	return &MongoUsersRepository{
		coll: db.Collection(usersCollection),
	}
}

func (mr *MongoUsersRepository) Create(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	doc := userDocument{
		ID:       primitive.NewObjectID(),
		Username: user.Username,
	}
	if _, err := mr.coll.InsertOne(ctx, doc); err != nil {
		return errors.New("inserting user document error: " + err.Error())
	}
	user.ID = doc.ID.Hex()
	return nil
}

func (mr *MongoUsersRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errorvalues.ErrUserNotFound
	}
	var doc userDocument
	err = mr.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("searching user document error: " + err.Error())
	}
	return &entity.User{ID: doc.ID.Hex(), Username: doc.Username}, nil
}

func (mr *MongoUsersRepository) List(ctx context.Context) ([]entity.User, error) {
	cursor, err := mr.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.New("listing user documents error: " + err.Error())
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.New("decoding user documents error: " + err.Error())
	}
	users := make([]entity.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, entity.User{ID: d.ID.Hex(), Username: d.Username})
	}
	return users, nil
}

type MongoExercisesRepository struct {
	coll *mongo.Collection
}

func NewMongoExercisesRepo(db *mongo.Database) *MongoExercisesRepository {
	return &MongoExercisesRepository{
		coll: db.Collection(exercisesCollection),
	}
}

func (mr *MongoExercisesRepository) Create(ctx context.Context, exercise *entity.Exercise) error {
	if exercise == nil {
		return errors.New("exercise is nil")
	}
	doc := exerciseDocument{
		ID:          primitive.NewObjectID(),
		UserID:      exercise.UserID,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date,
	}
	if _, err := mr.coll.InsertOne(ctx, doc); err != nil {
		return errors.New("inserting exercise document error: " + err.Error())
	}
	exercise.ID = doc.ID.Hex()
	return nil
}

func (mr *MongoExercisesRepository) Find(ctx context.Context, filter entity.ExerciseFilter) ([]entity.Exercise, error) {
	query := bson.D{
		{Key: "userId", Value: filter.UserID},
		{Key: "date", Value: bson.D{
			{Key: "$gte", Value: filter.From},
			{Key: "$lt", Value: filter.To},
		}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	cursor, err := mr.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.New("finding exercise documents error: " + err.Error())
	}
	var docs []exerciseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.New("decoding exercise documents error: " + err.Error())
	}
	exercises := make([]entity.Exercise, 0, len(docs))
	for _, d := range docs {
		exercises = append(exercises, entity.Exercise{
			ID:          d.ID.Hex(),
			UserID:      d.UserID,
			Description: d.Description,
			Duration:    d.Duration,
			Date:        d.Date,
		})
	}
	return exercises, nil
}

package mongo

import (
	"context"
	"errors"

	"fitforge/internal/domain"
	"fitforge/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const setLogCollectionName = "set_logs"

// mongoSetLogRepository implements repository.SetLogRepository
type mongoSetLogRepository struct {
	collection *mongo.Collection
}

// NewMongoSetLogRepository creates a new set log repository.
func NewMongoSetLogRepository(db *mongo.Database) repository.SetLogRepository {
	return &mongoSetLogRepository{
		collection: db.Collection(setLogCollectionName),
	}
}

// Create inserts a new set log row. Always an insert, never an upsert:
// duplicate set numbers produce separate rows.
func (r *mongoSetLogRepository) Create(ctx context.Context, setLog *domain.SetLog) (primitive.ObjectID, error) {
	if setLog.WorkoutLogID == primitive.NilObjectID || setLog.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("set log requires workoutLogId and exerciseId")
	}
	if setLog.SetNumber < 1 {
		return primitive.NilObjectID, errors.New("set number must be 1 or greater")
	}
	setLog.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, setLog)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted set log ID")
	}
	return insertedID, nil
}

// GetByWorkoutLogID retrieves all sets recorded within a workout log, in
// insertion order.
func (r *mongoSetLogRepository) GetByWorkoutLogID(ctx context.Context, workoutLogID primitive.ObjectID) ([]domain.SetLog, error) {
	var setLogs []domain.SetLog
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"workoutLogId": workoutLogID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &setLogs); err != nil {
		return nil, err
	}
	return setLogs, nil
}

// EnsureSetLogIndexes creates necessary indexes. Call during startup.
func EnsureSetLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workoutLogId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}

package mongo

import (
	"context"
	"errors"
	"time"

	"fitforge/internal/domain"
	"fitforge/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutLogCollectionName = "workout_logs"

// mongoWorkoutLogRepository implements repository.WorkoutLogRepository
type mongoWorkoutLogRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutLogRepository creates a new workout log repository.
func NewMongoWorkoutLogRepository(db *mongo.Database) repository.WorkoutLogRepository {
	return &mongoWorkoutLogRepository{
		collection: db.Collection(workoutLogCollectionName),
	}
}

// Create inserts a new workout log.
func (r *mongoWorkoutLogRepository) Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	if log.UserID == primitive.NilObjectID || log.WorkoutID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("workout log requires userId and workoutId")
	}
	log.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if log.Date.IsZero() {
		log.Date = now
	}
	if log.StartedAt == nil {
		log.StartedAt = &now
	}
	if log.Status == "" {
		log.Status = domain.LogStatusInProgress
	}

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout log ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single workout log by its ID.
func (r *mongoWorkoutLogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	var log domain.WorkoutLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// Complete marks an in_progress log as completed. The status filter makes the
// transition one-way: a log that is already completed keeps its original
// completedAt and is returned as-is.
func (r *mongoWorkoutLogRepository) Complete(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	filter := bson.M{"_id": id, "status": domain.LogStatusInProgress}
	update := bson.M{"$set": bson.M{
		"status":      domain.LogStatusCompleted,
		"completedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var log domain.WorkoutLog
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&log)
	if err == nil {
		return &log, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	// No in_progress log matched: either the id is unknown (ErrNotFound from
	// GetByID) or the log was completed earlier and is returned unchanged.
	return r.GetByID(ctx, id)
}

// GetByUserID retrieves all logs of a user, most recent first.
func (r *mongoWorkoutLogRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	var logs []domain.WorkoutLog
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// EnsureWorkoutLogIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}

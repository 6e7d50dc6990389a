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

const planCollectionName = "plans"

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new plan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Create inserts a new plan.
func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	if plan.UserID == primitive.NilObjectID || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires userId and name")
	}
	if plan.Status == "" {
		plan.Status = domain.PlanStatusActive
	}
	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single plan by its ID.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	var plan domain.Plan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetActiveByUserID retrieves the newest active plan for a user. Under
// correct archive discipline there is at most one; newest-first ordering is
// the tie-break.
func (r *mongoPlanRepository) GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error) {
	filter := bson.M{"userId": userID, "status": domain.PlanStatusActive}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var plan domain.Plan
	err := r.collection.FindOne(ctx, filter, opts).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetByUserID retrieves all plans for a user, newest first.
func (r *mongoPlanRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error) {
	var plans []domain.Plan
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// ArchiveActiveByUserID archives every currently-active plan of the user.
func (r *mongoPlanRepository) ArchiveActiveByUserID(ctx context.Context, userID primitive.ObjectID) error {
	filter := bson.M{"userId": userID, "status": domain.PlanStatusActive}
	update := bson.M{"$set": bson.M{"status": domain.PlanStatusArchived}}
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

// EnsurePlanIndexes creates necessary indexes. Call during startup.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Main query pattern: the user's active plan, newest first.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}

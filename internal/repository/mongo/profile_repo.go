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

const profileCollectionName = "user_profiles"

// mongoProfileRepository implements repository.ProfileRepository
type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new profile repository.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

// Create inserts a new onboarding profile.
func (r *mongoProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) (primitive.ObjectID, error) {
	if profile.UserID == primitive.NilObjectID || profile.Goal == "" || profile.ExperienceLevel == "" {
		return primitive.NilObjectID, errors.New("profile requires userId, goal, and experienceLevel")
	}
	profile.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted profile ID")
	}
	return insertedID, nil
}

// GetByUserID retrieves the profile belonging to a user.
func (r *mongoProfileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Update applies a partial update to the user's profile. Only non-nil fields
// of the update are written; last write wins.
func (r *mongoProfileRepository) Update(ctx context.Context, userID primitive.ObjectID, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Age != nil {
		set["age"] = *update.Age
	}
	if update.Gender != nil {
		set["gender"] = *update.Gender
	}
	if update.Height != nil {
		set["height"] = *update.Height
	}
	if update.Weight != nil {
		set["weight"] = *update.Weight
	}
	if update.Goal != nil {
		set["goal"] = *update.Goal
	}
	if update.ExperienceLevel != nil {
		set["experienceLevel"] = *update.ExperienceLevel
	}
	if update.DaysPerWeek != nil {
		set["daysPerWeek"] = *update.DaysPerWeek
	}
	if update.Equipment != nil {
		set["equipment"] = *update.Equipment
	}
	if update.Injuries != nil {
		set["injuries"] = *update.Injuries
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var profile domain.UserProfile
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"userId": userID}, bson.M{"$set": set}, opts).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Delete removes the user's profile. This is a hard delete.
func (r *mongoProfileRepository) Delete(ctx context.Context, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProfileIndexes creates necessary indexes. Call during startup.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}

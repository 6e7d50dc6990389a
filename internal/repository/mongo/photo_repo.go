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

const photoCollectionName = "progress_photos"

// mongoPhotoRepository implements repository.PhotoRepository
type mongoPhotoRepository struct {
	collection *mongo.Collection
}

// NewMongoPhotoRepository creates a new progress photo repository.
func NewMongoPhotoRepository(db *mongo.Database) repository.PhotoRepository {
	return &mongoPhotoRepository{
		collection: db.Collection(photoCollectionName),
	}
}

// Create inserts a new photo metadata record.
func (r *mongoPhotoRepository) Create(ctx context.Context, photo *domain.ProgressPhoto) (primitive.ObjectID, error) {
	if photo.UserID == primitive.NilObjectID || photo.S3ObjectKey == "" {
		return primitive.NilObjectID, errors.New("photo requires userId and object key")
	}
	photo.ID = primitive.NewObjectID()
	if photo.UploadedAt.IsZero() {
		photo.UploadedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, photo)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted photo ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single photo record by its ID.
func (r *mongoPhotoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressPhoto, error) {
	var photo domain.ProgressPhoto
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&photo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &photo, nil
}

// GetByUserID retrieves all photo records of a user, newest first.
func (r *mongoPhotoRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgressPhoto, error) {
	var photos []domain.ProgressPhoto
	findOptions := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// Delete removes a photo record. The filter includes the owner so a user can
// only delete their own photos.
func (r *mongoPhotoRepository) Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePhotoIndexes creates necessary indexes. Call during startup.
func EnsurePhotoIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "uploadedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}

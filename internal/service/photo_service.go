package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"fitforge/internal/domain"
	"fitforge/internal/repository"
	"fitforge/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPhotoNotFound  = errors.New("progress photo not found")
	ErrUploadURLError = errors.New("failed to generate upload URL")
)

// UploadURLResponse carries the presigned URL and the object key the client
// must report back on confirm.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// PhotoWithURL pairs a photo record with a temporary download URL.
type PhotoWithURL struct {
	domain.ProgressPhoto
	DownloadURL string `json:"downloadUrl"`
}

// --- Service Interface ---

// PhotoService manages progress photos: the two-step presigned upload flow
// (request URL, client PUTs to S3, confirm) plus listing and deletion.
type PhotoService interface {
	RequestUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	ConfirmUpload(ctx context.Context, userID primitive.ObjectID, objectKey, fileName string, size int64, contentType string) (*domain.ProgressPhoto, error)
	List(ctx context.Context, userID primitive.ObjectID) ([]PhotoWithURL, error)
	Delete(ctx context.Context, userID, photoID primitive.ObjectID) error
}

// --- Service Implementation ---

type photoService struct {
	photoRepo   repository.PhotoRepository
	fileStorage storage.FileStorage
}

// NewPhotoService creates a new instance of photoService.
func NewPhotoService(photoRepo repository.PhotoRepository, fileStorage storage.FileStorage) PhotoService {
	return &photoService{
		photoRepo:   photoRepo,
		fileStorage: fileStorage,
	}
}

// RequestUploadURL generates a presigned PUT URL for a new photo.
func (s *photoService) RequestUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, errors.New("invalid or missing image content type")
	}

	uniqueID := uuid.NewString()
	fileExtension := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("photos", userID.Hex(), fmt.Sprintf("%s.%s", uniqueID, fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmUpload records the photo metadata after the client has PUT the file
// to the presigned URL.
func (s *photoService) ConfirmUpload(ctx context.Context, userID primitive.ObjectID, objectKey, fileName string, size int64, contentType string) (*domain.ProgressPhoto, error) {
	if userID == primitive.NilObjectID || objectKey == "" {
		return nil, errors.New("user ID and object key are required")
	}
	// The key prefix ties the object to the uploader; a client cannot claim
	// someone else's upload.
	if !strings.HasPrefix(objectKey, path.Join("photos", userID.Hex())+"/") {
		return nil, ErrNotOwner
	}

	photo := &domain.ProgressPhoto{
		UserID:      userID,
		S3ObjectKey: objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
	}
	photoID, err := s.photoRepo.Create(ctx, photo)
	if err != nil {
		return nil, err
	}
	photo.ID = photoID
	return photo, nil
}

// List returns the user's photos, newest first, each with a temporary
// download URL.
func (s *photoService) List(ctx context.Context, userID primitive.ObjectID) ([]PhotoWithURL, error) {
	photos, err := s.photoRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]PhotoWithURL, 0, len(photos))
	for _, photo := range photos {
		downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, photo.S3ObjectKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			return nil, err
		}
		result = append(result, PhotoWithURL{ProgressPhoto: photo, DownloadURL: downloadURL})
	}
	return result, nil
}

// Delete removes the photo record and its stored object.
func (s *photoService) Delete(ctx context.Context, userID, photoID primitive.ObjectID) error {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}
	if photo.UserID != userID {
		return ErrNotOwner
	}

	if err := s.photoRepo.Delete(ctx, photoID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}
	// Metadata row is gone; a failed object delete leaves an orphan in the
	// bucket, not a dangling record.
	return s.fileStorage.DeleteObject(ctx, photo.S3ObjectKey)
}

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"fitforge/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeFileStorage records calls and returns deterministic URLs.
type fakeFileStorage struct {
	deleted []string
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	return "https://bucket.example.com/upload/" + objectKey, nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "https://bucket.example.com/download/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func TestPhotoService_RequestUploadURL(t *testing.T) {
	store := memory.NewStore()
	svc := NewPhotoService(store.Photos(), &fakeFileStorage{})
	ctx := context.Background()
	userID := primitive.NewObjectID()

	resp, err := svc.RequestUploadURL(ctx, userID, "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.ObjectKey, "photos/"+userID.Hex()+"/"))
	assert.True(t, strings.HasSuffix(resp.ObjectKey, ".jpeg"))
	assert.Contains(t, resp.UploadURL, resp.ObjectKey)
}

func TestPhotoService_RequestUploadURL_RejectsNonImage(t *testing.T) {
	store := memory.NewStore()
	svc := NewPhotoService(store.Photos(), &fakeFileStorage{})

	_, err := svc.RequestUploadURL(context.Background(), primitive.NewObjectID(), "application/pdf")
	require.Error(t, err)

	_, err = svc.RequestUploadURL(context.Background(), primitive.NewObjectID(), "")
	require.Error(t, err)
}

func TestPhotoService_ConfirmUpload_OwnershipByKeyPrefix(t *testing.T) {
	store := memory.NewStore()
	svc := NewPhotoService(store.Photos(), &fakeFileStorage{})
	ctx := context.Background()
	userID := primitive.NewObjectID()

	resp, err := svc.RequestUploadURL(ctx, userID, "image/png")
	require.NoError(t, err)

	photo, err := svc.ConfirmUpload(ctx, userID, resp.ObjectKey, "front.png", 1024, "image/png")
	require.NoError(t, err)
	assert.False(t, photo.ID.IsZero())
	assert.Equal(t, "front.png", photo.FileName)

	// A different user cannot claim the same key.
	_, err = svc.ConfirmUpload(ctx, primitive.NewObjectID(), resp.ObjectKey, "stolen.png", 1024, "image/png")
	require.ErrorIs(t, err, ErrNotOwner)
}

func TestPhotoService_ListAndDelete(t *testing.T) {
	store := memory.NewStore()
	fs := &fakeFileStorage{}
	svc := NewPhotoService(store.Photos(), fs)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	resp, err := svc.RequestUploadURL(ctx, userID, "image/jpeg")
	require.NoError(t, err)
	photo, err := svc.ConfirmUpload(ctx, userID, resp.ObjectKey, "front.jpg", 2048, "image/jpeg")
	require.NoError(t, err)

	photos, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Contains(t, photos[0].DownloadURL, resp.ObjectKey)

	// Foreign delete is refused without touching the object.
	err = svc.Delete(ctx, primitive.NewObjectID(), photo.ID)
	require.ErrorIs(t, err, ErrNotOwner)
	assert.Empty(t, fs.deleted)

	require.NoError(t, svc.Delete(ctx, userID, photo.ID))
	assert.Equal(t, []string{resp.ObjectKey}, fs.deleted)

	photos, err = svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, photos)

	require.ErrorIs(t, svc.Delete(ctx, userID, photo.ID), ErrPhotoNotFound)
}

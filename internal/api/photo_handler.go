package api

import (
	"errors"
	"net/http"
	"time"

	"fitforge/internal/domain"
	"fitforge/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PhotoHandler holds the photo service dependency.
type PhotoHandler struct {
	photoService service.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(photoService service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

// --- DTOs ---

type PhotoUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmPhotoRequest struct {
	ObjectKey   string `json:"objectKey" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
	Size        int64  `json:"size" binding:"required,min=1"`
	ContentType string `json:"contentType" binding:"required"`
}

type PhotoResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
	DownloadURL string    `json:"downloadUrl,omitempty"`
}

// MapPhotoToResponse converts a domain.ProgressPhoto to DTO.
func MapPhotoToResponse(photo *domain.ProgressPhoto) PhotoResponse {
	if photo == nil {
		return PhotoResponse{}
	}
	return PhotoResponse{
		ID:          photo.ID.Hex(),
		UserID:      photo.UserID.Hex(),
		FileName:    photo.FileName,
		ContentType: photo.ContentType,
		Size:        photo.Size,
		UploadedAt:  photo.UploadedAt,
	}
}

// --- Handler Methods ---

// RequestUploadURL hands the client a presigned PUT URL for a new photo.
func (h *PhotoHandler) RequestUploadURL(c *gin.Context) {
	var req PhotoUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	resp, err := h.photoService.RequestUploadURL(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrUploadURLError) {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		} else {
			abortWithError(c, http.StatusBadRequest, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmUpload records photo metadata after the client has uploaded the file.
func (h *PhotoHandler) ConfirmUpload(c *gin.Context) {
	var req ConfirmPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	photo, err := h.photoService.ConfirmUpload(c.Request.Context(), userID, req.ObjectKey, req.FileName, req.Size, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			abortWithError(c, http.StatusForbidden, "Object key does not belong to this user.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to record photo.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapPhotoToResponse(photo))
}

// ListPhotos returns the caller's photos with temporary download URLs.
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	photos, err := h.photoService.List(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve photos.")
		return
	}

	responses := make([]PhotoResponse, len(photos))
	for i, p := range photos {
		resp := MapPhotoToResponse(&p.ProgressPhoto)
		resp.DownloadURL = p.DownloadURL
		responses[i] = resp
	}
	c.JSON(http.StatusOK, responses)
}

// DeletePhoto removes a photo record and its stored object.
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	photoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid photo ID format.")
		return
	}

	if err := h.photoService.Delete(c.Request.Context(), userID, photoID); err != nil {
		switch {
		case errors.Is(err, service.ErrPhotoNotFound):
			abortWithError(c, http.StatusNotFound, "Photo not found")
		case errors.Is(err, service.ErrNotOwner):
			abortWithError(c, http.StatusForbidden, "Photo does not belong to this user.")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to delete photo.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

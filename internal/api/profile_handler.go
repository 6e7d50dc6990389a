package api

import (
	"errors"
	"net/http"

	"fitforge/internal/domain"
	"fitforge/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- DTOs ---

// CreateProfileRequest defines the expected JSON for onboarding completion.
type CreateProfileRequest struct {
	Age             *int     `json:"age" binding:"omitempty,min=1"`
	Gender          string   `json:"gender"`
	Height          *int     `json:"height" binding:"omitempty,min=1"` // cm
	Weight          *int     `json:"weight" binding:"omitempty,min=1"` // kg
	Goal            string   `json:"goal" binding:"required,oneof=strength hypertrophy endurance weight_loss"`
	ExperienceLevel string   `json:"experienceLevel" binding:"required,oneof=beginner intermediate advanced"`
	DaysPerWeek     int      `json:"daysPerWeek" binding:"required,min=1,max=7"`
	Equipment       []string `json:"equipment"`
	Injuries        []string `json:"injuries"`
}

// UpdateProfileRequest defines a partial profile update. Absent fields are
// left untouched.
type UpdateProfileRequest struct {
	Age             *int      `json:"age" binding:"omitempty,min=1"`
	Gender          *string   `json:"gender"`
	Height          *int      `json:"height" binding:"omitempty,min=1"`
	Weight          *int      `json:"weight" binding:"omitempty,min=1"`
	Goal            *string   `json:"goal" binding:"omitempty,oneof=strength hypertrophy endurance weight_loss"`
	ExperienceLevel *string   `json:"experienceLevel" binding:"omitempty,oneof=beginner intermediate advanced"`
	DaysPerWeek     *int      `json:"daysPerWeek" binding:"omitempty,min=1,max=7"`
	Equipment       *[]string `json:"equipment"`
	Injuries        *[]string `json:"injuries"`
}

// --- Handler Methods ---

// GetProfile returns the caller's onboarding profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, "Profile not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve profile.")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// CreateProfile stores the onboarding answers.
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	profile := &domain.UserProfile{
		UserID:          userID,
		Age:             req.Age,
		Gender:          req.Gender,
		Height:          req.Height,
		Weight:          req.Weight,
		Goal:            domain.Goal(req.Goal),
		ExperienceLevel: domain.ExperienceLevel(req.ExperienceLevel),
		DaysPerWeek:     req.DaysPerWeek,
		Equipment:       req.Equipment,
		Injuries:        req.Injuries,
	}

	created, err := h.profileService.Create(c.Request.Context(), profile)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create profile.")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateProfile applies a partial update.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	update := domain.ProfileUpdate{
		Age:         req.Age,
		Gender:      req.Gender,
		Height:      req.Height,
		Weight:      req.Weight,
		DaysPerWeek: req.DaysPerWeek,
		Equipment:   req.Equipment,
		Injuries:    req.Injuries,
	}
	if req.Goal != nil {
		goal := domain.Goal(*req.Goal)
		update.Goal = &goal
	}
	if req.ExperienceLevel != nil {
		level := domain.ExperienceLevel(*req.ExperienceLevel)
		update.ExperienceLevel = &level
	}

	profile, err := h.profileService.Update(c.Request.Context(), userID, update)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, "Profile not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to update profile.")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ResetProfile hard-deletes the caller's profile.
func (h *ProfileHandler) ResetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	if err := h.profileService.Reset(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, "Profile not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to reset profile.")
		return
	}
	c.Status(http.StatusNoContent)
}

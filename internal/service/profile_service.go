package service

import (
	"context"
	"errors"

	"fitforge/internal/domain"
	"fitforge/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProfileNotFound = errors.New("profile not found")
)

// --- Service Interface ---

// ProfileService manages the onboarding questionnaire record.
type ProfileService interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error)
	Create(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error)
	Update(ctx context.Context, userID primitive.ObjectID, update domain.ProfileUpdate) (*domain.UserProfile, error)
	// Reset hard-deletes the profile.
	Reset(ctx context.Context, userID primitive.ObjectID) error
}

// --- Service Implementation ---

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// Get retrieves the caller's profile.
func (s *profileService) Get(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// Create stores the onboarding answers. A second create for the same user
// overwrites nothing here; uniqueness is enforced by the storage index, and
// conflicts surface as storage errors.
func (s *profileService) Create(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	if profile.UserID == primitive.NilObjectID {
		return nil, errors.New("profile requires a user")
	}
	if profile.Goal == "" || profile.ExperienceLevel == "" || profile.DaysPerWeek < 1 {
		return nil, errors.New("goal, experience level, and days per week are required")
	}

	id, err := s.profileRepo.Create(ctx, profile)
	if err != nil {
		return nil, err
	}
	profile.ID = id
	return profile, nil
}

// Update applies a partial update, last write wins.
func (s *profileService) Update(ctx context.Context, userID primitive.ObjectID, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	profile, err := s.profileRepo.Update(ctx, userID, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// Reset removes the profile entirely.
func (s *profileService) Reset(ctx context.Context, userID primitive.ObjectID) error {
	err := s.profileRepo.Delete(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProfileNotFound
	}
	return err
}

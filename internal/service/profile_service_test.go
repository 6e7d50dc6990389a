package service

import (
	"context"
	"testing"

	"fitforge/internal/domain"
	"fitforge/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProfileService_CreateAndGet(t *testing.T) {
	store := memory.NewStore()
	svc := NewProfileService(store.Profiles())
	ctx := context.Background()
	userID := primitive.NewObjectID()

	age := 30
	created, err := svc.Create(ctx, &domain.UserProfile{
		UserID:          userID,
		Age:             &age,
		Goal:            domain.GoalHypertrophy,
		ExperienceLevel: domain.ExperienceBeginner,
		DaysPerWeek:     4,
		Equipment:       []string{"dumbbells"},
	})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())

	got, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalHypertrophy, got.Goal)
	assert.Equal(t, 4, got.DaysPerWeek)
	require.NotNil(t, got.Age)
	assert.Equal(t, 30, *got.Age)
}

func TestProfileService_Create_RequiresCoreFields(t *testing.T) {
	store := memory.NewStore()
	svc := NewProfileService(store.Profiles())
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.UserProfile{
		Goal: domain.GoalStrength, ExperienceLevel: domain.ExperienceBeginner, DaysPerWeek: 3,
	})
	require.Error(t, err) // no user

	_, err = svc.Create(ctx, &domain.UserProfile{
		UserID: primitive.NewObjectID(), Goal: domain.GoalStrength, ExperienceLevel: domain.ExperienceBeginner,
	})
	require.Error(t, err) // no training days
}

func TestProfileService_Get_NotFound(t *testing.T) {
	store := memory.NewStore()
	svc := NewProfileService(store.Profiles())

	_, err := svc.Get(context.Background(), primitive.NewObjectID())
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileService_Update_PartialLastWriteWins(t *testing.T) {
	store := memory.NewStore()
	svc := NewProfileService(store.Profiles())
	ctx := context.Background()
	userID := primitive.NewObjectID()

	_, err := svc.Create(ctx, &domain.UserProfile{
		UserID:          userID,
		Goal:            domain.GoalStrength,
		ExperienceLevel: domain.ExperienceBeginner,
		DaysPerWeek:     3,
	})
	require.NoError(t, err)

	days := 5
	goal := domain.GoalEndurance
	updated, err := svc.Update(ctx, userID, domain.ProfileUpdate{DaysPerWeek: &days, Goal: &goal})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.DaysPerWeek)
	assert.Equal(t, domain.GoalEndurance, updated.Goal)
	// Untouched fields survive.
	assert.Equal(t, domain.ExperienceBeginner, updated.ExperienceLevel)
}

func TestProfileService_Update_NotFound(t *testing.T) {
	store := memory.NewStore()
	svc := NewProfileService(store.Profiles())

	days := 5
	_, err := svc.Update(context.Background(), primitive.NewObjectID(), domain.ProfileUpdate{DaysPerWeek: &days})
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileService_Reset(t *testing.T) {
	store := memory.NewStore()
	svc := NewProfileService(store.Profiles())
	ctx := context.Background()
	userID := primitive.NewObjectID()

	_, err := svc.Create(ctx, &domain.UserProfile{
		UserID:          userID,
		Goal:            domain.GoalStrength,
		ExperienceLevel: domain.ExperienceBeginner,
		DaysPerWeek:     3,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, userID))

	_, err = svc.Get(ctx, userID)
	require.ErrorIs(t, err, ErrProfileNotFound)

	require.ErrorIs(t, svc.Reset(ctx, userID), ErrProfileNotFound)
}

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

func seedWorkout(t *testing.T, store *memory.Store, userID primitive.ObjectID) *domain.Workout {
	t.Helper()
	ctx := context.Background()

	plan := &domain.Plan{UserID: userID, Name: "Block 1", Status: domain.PlanStatusActive}
	planID, err := store.Plans().Create(ctx, plan)
	require.NoError(t, err)

	workout := &domain.Workout{PlanID: planID, DayNumber: 1, Name: "Workout A"}
	workoutID, err := store.Workouts().Create(ctx, workout)
	require.NoError(t, err)
	workout.ID = workoutID
	return workout
}

func newSessionServiceForTest(store *memory.Store) SessionService {
	return NewSessionService(store.Workouts(), store.Plans(), store.WorkoutLogs(), store.SetLogs())
}

func TestSessionService_Start(t *testing.T) {
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	workout := seedWorkout(t, store, userID)
	svc := newSessionServiceForTest(store)
	ctx := context.Background()

	log, err := svc.Start(ctx, userID, workout.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LogStatusInProgress, log.Status)
	assert.Equal(t, userID, log.UserID)
	assert.Equal(t, workout.ID, log.WorkoutID)
	require.NotNil(t, log.StartedAt)
	assert.Nil(t, log.CompletedAt)
}

func TestSessionService_Start_UnknownWorkout(t *testing.T) {
	store := memory.NewStore()
	svc := newSessionServiceForTest(store)

	_, err := svc.Start(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	require.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestSessionService_Start_ForeignWorkout(t *testing.T) {
	store := memory.NewStore()
	owner := primitive.NewObjectID()
	workout := seedWorkout(t, store, owner)
	svc := newSessionServiceForTest(store)

	_, err := svc.Start(context.Background(), primitive.NewObjectID(), workout.ID)
	require.ErrorIs(t, err, ErrNotOwner)
}

func TestSessionService_RecordSet_Accumulates(t *testing.T) {
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	workout := seedWorkout(t, store, userID)
	svc := newSessionServiceForTest(store)
	ctx := context.Background()

	log, err := svc.Start(ctx, userID, workout.ID)
	require.NoError(t, err)

	exerciseID := primitive.NewObjectID()
	rpe := 8
	_, err = svc.RecordSet(ctx, userID, log.ID, SetInput{
		ExerciseID: exerciseID, SetNumber: 1, Weight: 100, Reps: 5, RPE: &rpe, Completed: true,
	})
	require.NoError(t, err)
	_, err = svc.RecordSet(ctx, userID, log.ID, SetInput{
		ExerciseID: exerciseID, SetNumber: 2, Weight: 100, Reps: 5, Completed: true,
	})
	require.NoError(t, err)

	sets, err := store.SetLogs().GetByWorkoutLogID(ctx, log.ID)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, 1, sets[0].SetNumber)
	assert.Equal(t, 2, sets[1].SetNumber)
	require.NotNil(t, sets[0].RPE)
	assert.Equal(t, 8, *sets[0].RPE)
	assert.Nil(t, sets[1].RPE)
}

func TestSessionService_RecordSet_DuplicateSetNumberKeepsBothRows(t *testing.T) {
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	workout := seedWorkout(t, store, userID)
	svc := newSessionServiceForTest(store)
	ctx := context.Background()

	log, err := svc.Start(ctx, userID, workout.ID)
	require.NoError(t, err)

	exerciseID := primitive.NewObjectID()
	_, err = svc.RecordSet(ctx, userID, log.ID, SetInput{
		ExerciseID: exerciseID, SetNumber: 1, Weight: 100, Reps: 5, Completed: true,
	})
	require.NoError(t, err)
	// Re-sending set 1 is a correction; both rows survive with the later one
	// last in insertion order.
	_, err = svc.RecordSet(ctx, userID, log.ID, SetInput{
		ExerciseID: exerciseID, SetNumber: 1, Weight: 102, Reps: 5, Completed: true,
	})
	require.NoError(t, err)

	sets, err := store.SetLogs().GetByWorkoutLogID(ctx, log.ID)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, 100, sets[0].Weight)
	assert.Equal(t, 102, sets[1].Weight)
}

func TestSessionService_RecordSet_Denials(t *testing.T) {
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	workout := seedWorkout(t, store, userID)
	svc := newSessionServiceForTest(store)
	ctx := context.Background()

	log, err := svc.Start(ctx, userID, workout.ID)
	require.NoError(t, err)

	input := SetInput{ExerciseID: primitive.NewObjectID(), SetNumber: 1, Weight: 60, Reps: 8, Completed: true}

	_, err = svc.RecordSet(ctx, userID, primitive.NewObjectID(), input)
	require.ErrorIs(t, err, ErrLogNotFound)

	_, err = svc.RecordSet(ctx, primitive.NewObjectID(), log.ID, input)
	require.ErrorIs(t, err, ErrNotOwner)
}

func TestSessionService_Complete(t *testing.T) {
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	workout := seedWorkout(t, store, userID)
	svc := newSessionServiceForTest(store)
	ctx := context.Background()

	log, err := svc.Start(ctx, userID, workout.ID)
	require.NoError(t, err)

	completed, err := svc.Complete(ctx, userID, log.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LogStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	require.NotNil(t, completed.StartedAt)
	assert.False(t, completed.CompletedAt.Before(*completed.StartedAt))
}

func TestSessionService_Complete_RepeatKeepsOriginalTimestamp(t *testing.T) {
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	workout := seedWorkout(t, store, userID)
	svc := newSessionServiceForTest(store)
	ctx := context.Background()

	log, err := svc.Start(ctx, userID, workout.ID)
	require.NoError(t, err)

	first, err := svc.Complete(ctx, userID, log.ID)
	require.NoError(t, err)
	second, err := svc.Complete(ctx, userID, log.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.LogStatusCompleted, second.Status)
	require.NotNil(t, second.CompletedAt)
	assert.True(t, second.CompletedAt.Equal(*first.CompletedAt))
}

func TestSessionService_Complete_Denials(t *testing.T) {
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	workout := seedWorkout(t, store, userID)
	svc := newSessionServiceForTest(store)
	ctx := context.Background()

	log, err := svc.Start(ctx, userID, workout.ID)
	require.NoError(t, err)

	_, err = svc.Complete(ctx, userID, primitive.NewObjectID())
	require.ErrorIs(t, err, ErrLogNotFound)

	_, err = svc.Complete(ctx, primitive.NewObjectID(), log.ID)
	require.ErrorIs(t, err, ErrNotOwner)
}

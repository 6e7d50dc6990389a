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

func newHistoryServiceForTest(store *memory.Store) HistoryService {
	return NewHistoryService(store.Plans(), store.Workouts(), store.Exercises(), store.WorkoutLogs(), store.SetLogs())
}

func TestHistoryService_CurrentPlan_NoneActive(t *testing.T) {
	store := memory.NewStore()
	svc := newHistoryServiceForTest(store)

	_, _, err := svc.CurrentPlan(context.Background(), primitive.NewObjectID())
	require.ErrorIs(t, err, ErrPlanNotFound)
}

func TestHistoryService_CurrentPlan_WorkoutsOrderedByDay(t *testing.T) {
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	ctx := context.Background()

	planID, err := store.Plans().Create(ctx, &domain.Plan{UserID: userID, Name: "Block 1", Status: domain.PlanStatusActive})
	require.NoError(t, err)

	// Insert out of order to exercise the sort.
	for _, day := range []int{3, 1, 2} {
		_, err := store.Workouts().Create(ctx, &domain.Workout{PlanID: planID, DayNumber: day, Name: "Workout"})
		require.NoError(t, err)
	}

	svc := newHistoryServiceForTest(store)
	plan, workouts, err := svc.CurrentPlan(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, planID, plan.ID)
	require.Len(t, workouts, 3)
	assert.Equal(t, 1, workouts[0].DayNumber)
	assert.Equal(t, 2, workouts[1].DayNumber)
	assert.Equal(t, 3, workouts[2].DayNumber)
}

func TestHistoryService_Workout_ExercisesOrderedBySequence(t *testing.T) {
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	ctx := context.Background()

	planID, err := store.Plans().Create(ctx, &domain.Plan{UserID: userID, Name: "Block 1", Status: domain.PlanStatusActive})
	require.NoError(t, err)
	workoutID, err := store.Workouts().Create(ctx, &domain.Workout{PlanID: planID, DayNumber: 1, Name: "Workout A"})
	require.NoError(t, err)

	names := map[int]string{1: "Squat", 2: "Leg Press", 3: "Leg Curl"}
	for _, order := range []int{2, 3, 1} {
		_, err := store.Exercises().Create(ctx, &domain.Exercise{
			WorkoutID: workoutID, Name: names[order], TargetSets: 3, TargetReps: "8-12", Order: order,
		})
		require.NoError(t, err)
	}

	svc := newHistoryServiceForTest(store)
	detail, err := svc.Workout(ctx, userID, workoutID)
	require.NoError(t, err)
	require.Len(t, detail.Exercises, 3)
	assert.Equal(t, "Squat", detail.Exercises[0].Name)
	assert.Equal(t, "Leg Press", detail.Exercises[1].Name)
	assert.Equal(t, "Leg Curl", detail.Exercises[2].Name)
}

func TestHistoryService_Workout_Ownership(t *testing.T) {
	store := memory.NewStore()
	owner := primitive.NewObjectID()
	ctx := context.Background()

	planID, err := store.Plans().Create(ctx, &domain.Plan{UserID: owner, Name: "Block 1", Status: domain.PlanStatusActive})
	require.NoError(t, err)
	workoutID, err := store.Workouts().Create(ctx, &domain.Workout{PlanID: planID, DayNumber: 1, Name: "Workout A"})
	require.NoError(t, err)

	svc := newHistoryServiceForTest(store)

	_, err = svc.Workout(ctx, primitive.NewObjectID(), workoutID)
	require.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.Workout(ctx, owner, primitive.NewObjectID())
	require.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestHistoryService_CurrentWorkouts_EmptyWithoutActivePlan(t *testing.T) {
	store := memory.NewStore()
	svc := newHistoryServiceForTest(store)

	workouts, err := svc.CurrentWorkouts(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, workouts)
	assert.NotNil(t, workouts)
}

func TestHistoryService_Log_Ownership(t *testing.T) {
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	ctx := context.Background()

	logID, err := store.WorkoutLogs().Create(ctx, &domain.WorkoutLog{
		UserID: userID, WorkoutID: primitive.NewObjectID(), Status: domain.LogStatusInProgress,
	})
	require.NoError(t, err)

	svc := newHistoryServiceForTest(store)

	_, err = svc.Log(ctx, primitive.NewObjectID(), logID)
	require.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.Log(ctx, userID, primitive.NewObjectID())
	require.ErrorIs(t, err, ErrLogNotFound)

	detail, err := svc.Log(ctx, userID, logID)
	require.NoError(t, err)
	assert.Equal(t, logID, detail.ID)
	assert.Empty(t, detail.Sets)
}

func TestHistoryService_Stats(t *testing.T) {
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	ctx := context.Background()
	workoutID := primitive.NewObjectID()

	completedID, err := store.WorkoutLogs().Create(ctx, &domain.WorkoutLog{
		UserID: userID, WorkoutID: workoutID, Status: domain.LogStatusInProgress,
	})
	require.NoError(t, err)
	_, err = store.WorkoutLogs().Complete(ctx, completedID)
	require.NoError(t, err)

	inProgressID, err := store.WorkoutLogs().Create(ctx, &domain.WorkoutLog{
		UserID: userID, WorkoutID: workoutID, Status: domain.LogStatusInProgress,
	})
	require.NoError(t, err)

	exerciseID := primitive.NewObjectID()
	for _, set := range []domain.SetLog{
		{WorkoutLogID: completedID, ExerciseID: exerciseID, SetNumber: 1, Weight: 100, Reps: 5, Completed: true},
		{WorkoutLogID: completedID, ExerciseID: exerciseID, SetNumber: 2, Weight: 100, Reps: 5, Completed: true},
		{WorkoutLogID: inProgressID, ExerciseID: exerciseID, SetNumber: 1, Weight: 60, Reps: 10, Completed: true},
	} {
		set := set
		_, err := store.SetLogs().Create(ctx, &set)
		require.NoError(t, err)
	}

	svc := newHistoryServiceForTest(store)
	stats, err := svc.Stats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 1, stats.CompletedSessions)
	assert.Equal(t, 3, stats.TotalSets)
	assert.Equal(t, 100*5+100*5+60*10, stats.TotalVolume)
}

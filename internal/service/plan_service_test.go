package service

import (
	"context"
	"errors"
	"testing"

	"fitforge/internal/domain"
	"fitforge/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// completionFunc adapts a plain function to the CompletionClient interface.
type completionFunc func(ctx context.Context, system, prompt string) (string, error)

func (f completionFunc) Complete(ctx context.Context, system, prompt string) (string, error) {
	return f(ctx, system, prompt)
}

func staticCompletion(payload string) completionFunc {
	return func(ctx context.Context, system, prompt string) (string, error) {
		return payload, nil
	}
}

const validPlanPayload = `{
	"name": "Strength Block 1",
	"weeklySchedule": ["Monday", "Wednesday", "Friday"],
	"workouts": [
		{
			"dayNumber": 1,
			"name": "Workout A",
			"description": "Lower body",
			"exercises": [
				{"name": "Squat", "targetSets": 3, "targetReps": "5", "targetRPE": 8, "restSeconds": 180},
				{"name": "Romanian Deadlift", "targetSets": 3, "targetReps": "8-10", "restSeconds": 120}
			]
		},
		{
			"dayNumber": 2,
			"name": "Workout B",
			"description": "Upper body",
			"exercises": [
				{"name": "Bench Press", "targetSets": 3, "targetReps": "5", "targetRPE": 8, "restSeconds": 180}
			]
		}
	]
}`

func seedProfile(t *testing.T, store *memory.Store, userID primitive.ObjectID) {
	t.Helper()
	_, err := store.Profiles().Create(context.Background(), &domain.UserProfile{
		UserID:          userID,
		Goal:            domain.GoalStrength,
		ExperienceLevel: domain.ExperienceIntermediate,
		DaysPerWeek:     3,
		Equipment:       []string{"barbell", "bench"},
	})
	require.NoError(t, err)
}

func newPlanServiceForTest(store *memory.Store, model CompletionClient) PlanService {
	return NewPlanService(store.Profiles(), store.Plans(), store.Workouts(), store.Exercises(), model, store)
}

func TestPlanService_Generate_RequiresProfile(t *testing.T) {
	store := memory.NewStore()
	svc := newPlanServiceForTest(store, staticCompletion(validPlanPayload))

	_, err := svc.Generate(context.Background(), primitive.NewObjectID())
	require.ErrorIs(t, err, ErrProfileRequired)
}

func TestPlanService_Generate_PersistsPlanTree(t *testing.T) {
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	seedProfile(t, store, userID)

	svc := newPlanServiceForTest(store, staticCompletion(validPlanPayload))

	plan, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, "Strength Block 1", plan.Name)
	assert.Equal(t, domain.PlanStatusActive, plan.Status)
	assert.Equal(t, []string{"Monday", "Wednesday", "Friday"}, plan.WeeklySchedule)
	assert.False(t, plan.ID.IsZero())

	workouts, err := store.Workouts().GetByPlanID(context.Background(), plan.ID)
	require.NoError(t, err)
	require.Len(t, workouts, 2)
	assert.Equal(t, 1, workouts[0].DayNumber)
	assert.Equal(t, "Workout A", workouts[0].Name)
	assert.Equal(t, 2, workouts[1].DayNumber)

	exercises, err := store.Exercises().GetByWorkoutID(context.Background(), workouts[0].ID)
	require.NoError(t, err)
	require.Len(t, exercises, 2)
	assert.Equal(t, "Squat", exercises[0].Name)
	assert.Equal(t, 1, exercises[0].Order)
	assert.Equal(t, "Romanian Deadlift", exercises[1].Name)
	assert.Equal(t, 2, exercises[1].Order)
	require.NotNil(t, exercises[0].TargetRPE)
	assert.Equal(t, 8, *exercises[0].TargetRPE)
	assert.Nil(t, exercises[1].TargetRPE)
}

func TestPlanService_Generate_ArchivesPreviousPlan(t *testing.T) {
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	seedProfile(t, store, userID)

	svc := newPlanServiceForTest(store, staticCompletion(validPlanPayload))
	ctx := context.Background()

	first, err := svc.Generate(ctx, userID)
	require.NoError(t, err)
	second, err := svc.Generate(ctx, userID)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	// Only the newest plan may be active.
	active, err := store.Plans().GetActiveByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	all, err := store.Plans().GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	activeCount := 0
	for _, p := range all {
		if p.Status == domain.PlanStatusActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)

	// The archived plan is still readable, not deleted.
	old, err := store.Plans().GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanStatusArchived, old.Status)
}

func TestPlanService_Generate_ModelFailure(t *testing.T) {
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	seedProfile(t, store, userID)

	svc := newPlanServiceForTest(store, completionFunc(func(ctx context.Context, system, prompt string) (string, error) {
		return "", errors.New("upstream timeout")
	}))

	_, err := svc.Generate(context.Background(), userID)
	require.ErrorIs(t, err, ErrGenerationFailed)

	plans, err := store.Plans().GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestPlanService_Generate_RejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not JSON", `a workout plan: squats, 3x5`},
		{"missing name", `{"name": "", "workouts": [{"dayNumber": 1, "name": "A", "exercises": [{"name": "Squat", "targetSets": 3, "targetReps": "5"}]}]}`},
		{"no workouts", `{"name": "Plan", "workouts": []}`},
		{"workout without exercises", `{"name": "Plan", "workouts": [{"dayNumber": 1, "name": "A", "exercises": []}]}`},
		{"unnamed exercise", `{"name": "Plan", "workouts": [{"dayNumber": 1, "name": "A", "exercises": [{"name": " ", "targetSets": 3, "targetReps": "5"}]}]}`},
		{"zero target sets", `{"name": "Plan", "workouts": [{"dayNumber": 1, "name": "A", "exercises": [{"name": "Squat", "targetSets": 0, "targetReps": "5"}]}]}`},
		{"rpe out of range", `{"name": "Plan", "workouts": [{"dayNumber": 1, "name": "A", "exercises": [{"name": "Squat", "targetSets": 3, "targetReps": "5", "targetRPE": 11}]}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.NewStore()
			userID := primitive.NewObjectID()
			seedProfile(t, store, userID)

			svc := newPlanServiceForTest(store, staticCompletion(tc.payload))

			_, err := svc.Generate(context.Background(), userID)
			require.ErrorIs(t, err, ErrGenerationFailed)

			// A rejected payload must leave nothing behind.
			plans, err := store.Plans().GetByUserID(context.Background(), userID)
			require.NoError(t, err)
			assert.Empty(t, plans)
		})
	}
}

func TestPlanService_Generate_PromptReflectsProfile(t *testing.T) {
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	seedProfile(t, store, userID)

	var capturedSystem, capturedPrompt string
	svc := newPlanServiceForTest(store, completionFunc(func(ctx context.Context, system, prompt string) (string, error) {
		capturedSystem = system
		capturedPrompt = prompt
		return validPlanPayload, nil
	}))

	_, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)

	assert.Contains(t, capturedSystem, "fitness coach")
	assert.Contains(t, capturedPrompt, "Goal: strength")
	assert.Contains(t, capturedPrompt, "Experience: intermediate")
	assert.Contains(t, capturedPrompt, "Days/Week: 3")
	assert.Contains(t, capturedPrompt, `"barbell"`)
}

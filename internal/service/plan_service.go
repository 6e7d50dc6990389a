package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"fitforge/internal/domain"
	"fitforge/internal/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProfileRequired  = errors.New("complete onboarding first")
	ErrGenerationFailed = errors.New("failed to generate plan")
	ErrPlanNotFound     = errors.New("plan not found")
)

// CompletionClient is the surface the plan generator needs from the external
// model provider: a prompt in, a JSON completion out.
type CompletionClient interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// --- Service Interface ---
type PlanService interface {
	// Generate builds a plan for the user's profile via the model provider
	// and persists the whole template tree in one transaction.
	Generate(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error)
}

// --- Service Implementation ---

type planService struct {
	profileRepo  repository.ProfileRepository
	planRepo     repository.PlanRepository
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	model        CompletionClient
	tx           repository.TxRunner
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	profileRepo repository.ProfileRepository,
	planRepo repository.PlanRepository,
	workoutRepo repository.WorkoutRepository,
	exerciseRepo repository.ExerciseRepository,
	model CompletionClient,
	tx repository.TxRunner,
) PlanService {
	return &planService{
		profileRepo:  profileRepo,
		planRepo:     planRepo,
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		model:        model,
		tx:           tx,
	}
}

const generationSystemPrompt = "You are an expert fitness coach."

// generatedPlan mirrors the JSON shape the model is instructed to return.
type generatedPlan struct {
	Name           string             `json:"name"`
	WeeklySchedule []string           `json:"weeklySchedule"`
	Workouts       []generatedWorkout `json:"workouts"`
}

type generatedWorkout struct {
	DayNumber   int                 `json:"dayNumber"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Exercises   []generatedExercise `json:"exercises"`
}

type generatedExercise struct {
	Name        string `json:"name"`
	TargetSets  int    `json:"targetSets"`
	TargetReps  string `json:"targetReps"`
	TargetRPE   *int   `json:"targetRPE"`
	RestSeconds *int   `json:"restSeconds"`
	Notes       string `json:"notes"`
}

// Generate implements the full generation flow: load profile, prompt the
// model, validate the payload, then archive+insert atomically. Nothing is
// written before the payload passes validation.
func (s *planService) Generate(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileRequired
		}
		return nil, err
	}

	completion, err := s.model.Complete(ctx, generationSystemPrompt, buildPlanPrompt(profile))
	if err != nil {
		logrus.WithError(err).WithField("userID", userID.Hex()).Error("plan generation: model call failed")
		return nil, ErrGenerationFailed
	}

	payload, err := parsePlanPayload(completion)
	if err != nil {
		logrus.WithError(err).WithField("userID", userID.Hex()).Error("plan generation: bad payload")
		return nil, ErrGenerationFailed
	}

	plan := &domain.Plan{
		UserID:         userID,
		Name:           payload.Name,
		Status:         domain.PlanStatusActive,
		WeeklySchedule: payload.WeeklySchedule,
	}

	// Archive, plan insert, and the workout/exercise cascade commit as one
	// unit so a partial failure can never leave the user without an active
	// plan or with a half-written plan visible as "current".
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.planRepo.ArchiveActiveByUserID(txCtx, userID); err != nil {
			return err
		}
		planID, err := s.planRepo.Create(txCtx, plan)
		if err != nil {
			return err
		}
		plan.ID = planID

		for _, w := range payload.Workouts {
			workout := &domain.Workout{
				PlanID:      planID,
				DayNumber:   w.DayNumber,
				Name:        w.Name,
				Description: w.Description,
			}
			workoutID, err := s.workoutRepo.Create(txCtx, workout)
			if err != nil {
				return err
			}

			order := 1
			for _, e := range w.Exercises {
				exercise := &domain.Exercise{
					WorkoutID:   workoutID,
					Name:        e.Name,
					TargetSets:  e.TargetSets,
					TargetReps:  e.TargetReps,
					TargetRPE:   e.TargetRPE,
					RestSeconds: e.RestSeconds,
					Notes:       e.Notes,
					Order:       order,
				}
				if _, err := s.exerciseRepo.Create(txCtx, exercise); err != nil {
					return err
				}
				order++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"userID":   userID.Hex(),
		"planID":   plan.ID.Hex(),
		"workouts": len(payload.Workouts),
	}).Info("plan generated")

	return plan, nil
}

// buildPlanPrompt embeds the profile into the generation prompt, including
// the exact JSON shape the model must return.
func buildPlanPrompt(profile *domain.UserProfile) string {
	equipment, _ := json.Marshal(profile.Equipment)
	injuries, _ := json.Marshal(profile.Injuries)

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a 4-week fitness plan for a user with the following profile:\n")
	fmt.Fprintf(&b, "- Goal: %s\n", profile.Goal)
	fmt.Fprintf(&b, "- Experience: %s\n", profile.ExperienceLevel)
	fmt.Fprintf(&b, "- Days/Week: %d\n", profile.DaysPerWeek)
	fmt.Fprintf(&b, "- Equipment: %s\n", equipment)
	fmt.Fprintf(&b, "- Injuries: %s\n\n", injuries)
	b.WriteString(`Return a JSON object with:
{
  "name": "Plan Name",
  "weeklySchedule": ["Monday", "Wednesday", "Friday"],
  "workouts": [
    {
      "dayNumber": 1,
      "name": "Workout Name",
      "description": "Focus area",
      "exercises": [
        {
          "name": "Exercise Name",
          "targetSets": 3,
          "targetReps": "10-12",
          "targetRPE": 8,
          "restSeconds": 60,
          "notes": "Technique notes"
        }
      ]
    }
  ]
}
Only generate unique workouts for the weekly schedule (e.g. Workout A, Workout B).`)
	return b.String()
}

// parsePlanPayload decodes and validates the model's completion. A payload
// failing any check is rejected wholesale; malformed structures must never
// reach the database.
func parsePlanPayload(completion string) (*generatedPlan, error) {
	var payload generatedPlan
	if err := json.Unmarshal([]byte(completion), &payload); err != nil {
		return nil, fmt.Errorf("decode plan payload: %w", err)
	}
	if strings.TrimSpace(payload.Name) == "" {
		return nil, errors.New("plan payload has no name")
	}
	if len(payload.Workouts) == 0 {
		return nil, errors.New("plan payload has no workouts")
	}
	for i, w := range payload.Workouts {
		if strings.TrimSpace(w.Name) == "" {
			return nil, fmt.Errorf("workout %d has no name", i+1)
		}
		if len(w.Exercises) == 0 {
			return nil, fmt.Errorf("workout %q has no exercises", w.Name)
		}
		for _, e := range w.Exercises {
			if strings.TrimSpace(e.Name) == "" {
				return nil, fmt.Errorf("workout %q contains an unnamed exercise", w.Name)
			}
			if e.TargetSets < 1 {
				return nil, fmt.Errorf("exercise %q has invalid target sets %d", e.Name, e.TargetSets)
			}
			if e.TargetRPE != nil && (*e.TargetRPE < 1 || *e.TargetRPE > 10) {
				return nil, fmt.Errorf("exercise %q has RPE out of range: %d", e.Name, *e.TargetRPE)
			}
		}
	}
	return &payload, nil
}

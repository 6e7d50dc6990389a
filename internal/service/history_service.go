package service

import (
	"context"
	"errors"

	"fitforge/internal/domain"
	"fitforge/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutDetail combines a template workout with its exercises, sorted by
// their display order.
type WorkoutDetail struct {
	domain.Workout
	Exercises []domain.Exercise `json:"exercises"`
}

// LogDetail combines a workout log with its recorded sets.
type LogDetail struct {
	domain.WorkoutLog
	Sets []domain.SetLog `json:"sets"`
}

// HistoryStats aggregates a user's training history.
type HistoryStats struct {
	TotalSessions     int `json:"totalSessions"`
	CompletedSessions int `json:"completedSessions"`
	TotalSets         int `json:"totalSets"`
	TotalVolume       int `json:"totalVolume"` // sum of weight*reps over all sets
}

// --- Service Interface ---

// HistoryService covers the read paths: current plan, template detail,
// past logs, aggregate statistics.
type HistoryService interface {
	CurrentPlan(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, []domain.Workout, error)
	Plans(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error)
	Workout(ctx context.Context, userID, workoutID primitive.ObjectID) (*WorkoutDetail, error)
	CurrentWorkouts(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	History(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error)
	Log(ctx context.Context, userID, logID primitive.ObjectID) (*LogDetail, error)
	Stats(ctx context.Context, userID primitive.ObjectID) (*HistoryStats, error)
}

// --- Service Implementation ---

type historyService struct {
	planRepo     repository.PlanRepository
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	logRepo      repository.WorkoutLogRepository
	setRepo      repository.SetLogRepository
}

// NewHistoryService creates a new instance of historyService.
func NewHistoryService(
	planRepo repository.PlanRepository,
	workoutRepo repository.WorkoutRepository,
	exerciseRepo repository.ExerciseRepository,
	logRepo repository.WorkoutLogRepository,
	setRepo repository.SetLogRepository,
) HistoryService {
	return &historyService{
		planRepo:     planRepo,
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		logRepo:      logRepo,
		setRepo:      setRepo,
	}
}

// CurrentPlan returns the user's active plan with its workouts, or
// ErrPlanNotFound when no plan is active.
func (s *historyService) CurrentPlan(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, []domain.Workout, error) {
	plan, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrPlanNotFound
		}
		return nil, nil, err
	}
	workouts, err := s.workoutRepo.GetByPlanID(ctx, plan.ID)
	if err != nil {
		return nil, nil, err
	}
	return plan, workouts, nil
}

// Plans returns every plan of the user, newest first.
func (s *historyService) Plans(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error) {
	return s.planRepo.GetByUserID(ctx, userID)
}

// Workout returns a single template workout with its exercises. The
// workout's plan must belong to the caller.
func (s *historyService) Workout(ctx context.Context, userID, workoutID primitive.ObjectID) (*WorkoutDetail, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	plan, err := s.planRepo.GetByID(ctx, workout.PlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrNotOwner
	}

	exercises, err := s.exerciseRepo.GetByWorkoutID(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	return &WorkoutDetail{Workout: *workout, Exercises: exercises}, nil
}

// CurrentWorkouts returns the workouts of the user's active plan, or an
// empty slice when no plan is active.
func (s *historyService) CurrentWorkouts(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	plan, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []domain.Workout{}, nil
		}
		return nil, err
	}
	return s.workoutRepo.GetByPlanID(ctx, plan.ID)
}

// History returns the user's workout logs, most recent first. Unbounded for
// now; the repository already sorts so a limit can be added without a
// contract change.
func (s *historyService) History(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	return s.logRepo.GetByUserID(ctx, userID)
}

// Log returns one owned workout log with its recorded sets.
func (s *historyService) Log(ctx context.Context, userID, logID primitive.ObjectID) (*LogDetail, error) {
	log, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	if log.UserID != userID {
		return nil, ErrNotOwner
	}
	sets, err := s.setRepo.GetByWorkoutLogID(ctx, logID)
	if err != nil {
		return nil, err
	}
	return &LogDetail{WorkoutLog: *log, Sets: sets}, nil
}

// Stats aggregates the user's history into headline numbers for the
// statistics view.
func (s *historyService) Stats(ctx context.Context, userID primitive.ObjectID) (*HistoryStats, error) {
	logs, err := s.logRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &HistoryStats{TotalSessions: len(logs)}
	for _, log := range logs {
		if log.Status == domain.LogStatusCompleted {
			stats.CompletedSessions++
		}
		sets, err := s.setRepo.GetByWorkoutLogID(ctx, log.ID)
		if err != nil {
			return nil, err
		}
		stats.TotalSets += len(sets)
		for _, set := range sets {
			stats.TotalVolume += set.Weight * set.Reps
		}
	}
	return stats, nil
}

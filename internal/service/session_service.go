package service

import (
	"context"
	"errors"

	"fitforge/internal/domain"
	"fitforge/internal/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrLogNotFound     = errors.New("workout log not found")
	ErrNotOwner        = errors.New("resource does not belong to this user")
)

// SetInput carries one recorded set.
type SetInput struct {
	ExerciseID primitive.ObjectID
	SetNumber  int
	Weight     int
	Reps       int
	RPE        *int
	Completed  bool
}

// --- Service Interface ---

// SessionService manages the lifecycle of one workout-execution session:
// creation, incremental set recording, completion.
type SessionService interface {
	Start(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.WorkoutLog, error)
	RecordSet(ctx context.Context, userID, logID primitive.ObjectID, input SetInput) (*domain.SetLog, error)
	Complete(ctx context.Context, userID, logID primitive.ObjectID) (*domain.WorkoutLog, error)
}

// --- Service Implementation ---

type sessionService struct {
	workoutRepo repository.WorkoutRepository
	planRepo    repository.PlanRepository
	logRepo     repository.WorkoutLogRepository
	setRepo     repository.SetLogRepository
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(
	workoutRepo repository.WorkoutRepository,
	planRepo repository.PlanRepository,
	logRepo repository.WorkoutLogRepository,
	setRepo repository.SetLogRepository,
) SessionService {
	return &sessionService{
		workoutRepo: workoutRepo,
		planRepo:    planRepo,
		logRepo:     logRepo,
		setRepo:     setRepo,
	}
}

// Start creates an in_progress log for the given template workout. The
// workout's plan must belong to the caller.
func (s *sessionService) Start(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.WorkoutLog, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if err := s.assertWorkoutOwner(ctx, userID, workout); err != nil {
		return nil, err
	}

	log := &domain.WorkoutLog{
		UserID:    userID,
		WorkoutID: workoutID,
		Status:    domain.LogStatusInProgress,
	}
	logID, err := s.logRepo.Create(ctx, log)
	if err != nil {
		return nil, err
	}
	log.ID = logID

	logrus.WithFields(logrus.Fields{
		"userID":    userID.Hex(),
		"workoutID": workoutID.Hex(),
		"logID":     logID.Hex(),
	}).Info("workout session started")

	return log, nil
}

// RecordSet inserts a new set row for an owned log. Inserts are
// unconditional: re-sending the same set number creates a second row rather
// than replacing the first, and readers treat the latest row as the
// correction.
func (s *sessionService) RecordSet(ctx context.Context, userID, logID primitive.ObjectID, input SetInput) (*domain.SetLog, error) {
	if _, err := s.getOwnedLog(ctx, userID, logID); err != nil {
		return nil, err
	}

	setLog := &domain.SetLog{
		WorkoutLogID: logID,
		ExerciseID:   input.ExerciseID,
		SetNumber:    input.SetNumber,
		Weight:       input.Weight,
		Reps:         input.Reps,
		RPE:          input.RPE,
		Completed:    input.Completed,
	}
	setID, err := s.setRepo.Create(ctx, setLog)
	if err != nil {
		return nil, err
	}
	setLog.ID = setID
	return setLog, nil
}

// Complete transitions the log to completed. Repeat calls return the log
// unchanged, keeping the original completedAt.
func (s *sessionService) Complete(ctx context.Context, userID, logID primitive.ObjectID) (*domain.WorkoutLog, error) {
	if _, err := s.getOwnedLog(ctx, userID, logID); err != nil {
		return nil, err
	}

	log, err := s.logRepo.Complete(ctx, logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"userID": userID.Hex(),
		"logID":  logID.Hex(),
	}).Info("workout session completed")

	return log, nil
}

func (s *sessionService) getOwnedLog(ctx context.Context, userID, logID primitive.ObjectID) (*domain.WorkoutLog, error) {
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
	return log, nil
}

// assertWorkoutOwner walks workout -> plan -> userId.
func (s *sessionService) assertWorkoutOwner(ctx context.Context, userID primitive.ObjectID, workout *domain.Workout) error {
	plan, err := s.planRepo.GetByID(ctx, workout.PlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	if plan.UserID != userID {
		return ErrNotOwner
	}
	return nil
}

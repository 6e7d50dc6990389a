package repository

import (
	"context"

	"fitforge/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TxRunner executes fn inside a single storage transaction. Every write
// issued through the ctx passed to fn commits or rolls back as one unit.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProfileRepository defines the interface for interacting with onboarding profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.UserProfile) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error)
	Update(ctx context.Context, userID primitive.ObjectID, update domain.ProfileUpdate) (*domain.UserProfile, error)
	Delete(ctx context.Context, userID primitive.ObjectID) error
}

// PlanRepository defines the interface for interacting with training plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	// GetActiveByUserID returns the newest plan with status=active for the
	// user, or ErrNotFound.
	GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Plan, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Plan, error)
	// ArchiveActiveByUserID flips every active plan of the user to archived.
	ArchiveActiveByUserID(ctx context.Context, userID primitive.ObjectID) error
}

// WorkoutRepository defines the interface for interacting with template workouts.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	// GetByPlanID returns the plan's workouts sorted by dayNumber ascending.
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Workout, error)
}

// ExerciseRepository defines the interface for interacting with template exercises.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	// GetByWorkoutID returns the workout's exercises sorted by order ascending.
	GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.Exercise, error)
}

// WorkoutLogRepository defines the interface for interacting with workout logs.
type WorkoutLogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error)
	// Complete transitions an in_progress log to completed, stamping
	// completedAt. A log that is already completed is returned unchanged.
	Complete(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error)
	// GetByUserID returns the user's logs sorted by date descending.
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error)
}

// SetLogRepository defines the interface for interacting with recorded sets.
type SetLogRepository interface {
	Create(ctx context.Context, setLog *domain.SetLog) (primitive.ObjectID, error)
	GetByWorkoutLogID(ctx context.Context, workoutLogID primitive.ObjectID) ([]domain.SetLog, error)
}

// PhotoRepository defines the interface for interacting with progress photo metadata.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.ProgressPhoto) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressPhoto, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgressPhoto, error)
	Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error
}

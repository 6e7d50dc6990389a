package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutLogStatus type for session lifecycle
type WorkoutLogStatus string

const (
	LogStatusInProgress WorkoutLogStatus = "in_progress"
	LogStatusCompleted  WorkoutLogStatus = "completed"
)

// WorkoutLog is one real-world execution of a template Workout. The only
// transition is in_progress -> completed; a log never goes back. There is no
// automatic expiry of stale in_progress sessions.
type WorkoutLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	WorkoutID   primitive.ObjectID `bson:"workoutId" json:"workoutId"` // the template being performed
	Date        time.Time          `bson:"date" json:"date"`
	StartedAt   *time.Time         `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	CompletedAt *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Status      WorkoutLogStatus   `bson:"status" json:"status"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

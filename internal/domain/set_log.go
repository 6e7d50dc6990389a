package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetLog is one recorded set within a WorkoutLog. Rows are insert-only:
// recording the same (log, exercise, setNumber) twice keeps both rows, and
// readers treat the latest row as the correction.
type SetLog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutLogID primitive.ObjectID `bson:"workoutLogId" json:"workoutLogId"`
	ExerciseID   primitive.ObjectID `bson:"exerciseId" json:"exerciseId"` // which template exercise this set belongs to
	SetNumber    int                `bson:"setNumber" json:"setNumber"`   // 1-based within the exercise
	Weight       int                `bson:"weight" json:"weight"`         // in kg/lbs
	Reps         int                `bson:"reps" json:"reps"`
	RPE          *int               `bson:"rpe,omitempty" json:"rpe,omitempty"`
	Completed    bool               `bson:"completed" json:"completed"`
}

package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a single movement prescription within a template Workout.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID   primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	Name        string             `bson:"name" json:"name"`
	TargetSets  int                `bson:"targetSets" json:"targetSets"`
	TargetReps  string             `bson:"targetReps" json:"targetReps"` // free-form, e.g. "8-12" or "5"
	TargetRPE   *int               `bson:"targetRpe,omitempty" json:"targetRpe,omitempty"` // 1-10
	RestSeconds *int               `bson:"restSeconds,omitempty" json:"restSeconds,omitempty"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Order       int                `bson:"order" json:"order"` // display/performance sequence within the workout
}

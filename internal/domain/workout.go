package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a template session within a Plan. The template tree
// (plan -> workouts -> exercises) is created in one shot at generation time
// and is read-only afterwards; regeneration archives the whole plan instead
// of editing it.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID      primitive.ObjectID `bson:"planId" json:"planId"`
	DayNumber   int                `bson:"dayNumber" json:"dayNumber"` // position in the weekly cycle
	Name        string             `bson:"name" json:"name"`           // e.g. "Upper Body A"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

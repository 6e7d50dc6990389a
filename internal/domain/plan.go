package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanStatus type for plan lifecycle
type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "active"
	PlanStatusArchived  PlanStatus = "archived"
	PlanStatusCompleted PlanStatus = "completed"
)

// Plan represents one generated training block. At most one plan per user
// may be active at a time; generating a new plan archives the old ones.
// Plans are never hard-deleted.
type Plan struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	Name           string             `bson:"name" json:"name"` // e.g. "Hypertrophy Block 1"
	Status         PlanStatus         `bson:"status" json:"status"`
	WeeklySchedule []string           `bson:"weeklySchedule,omitempty" json:"weeklySchedule,omitempty"` // ordered weekday names
	StartDate      *time.Time         `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate        *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

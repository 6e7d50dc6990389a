package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal type for the user's primary training goal
type Goal string

const (
	GoalStrength    Goal = "strength"
	GoalHypertrophy Goal = "hypertrophy"
	GoalEndurance   Goal = "endurance"
	GoalWeightLoss  Goal = "weight_loss"
)

// ExperienceLevel type for training experience
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// UserProfile holds the onboarding questionnaire answers for one user.
// Conceptually unique per user; updates are last-write-wins.
type UserProfile struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Age             *int               `bson:"age,omitempty" json:"age,omitempty"`
	Gender          string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Height          *int               `bson:"height,omitempty" json:"height,omitempty"` // in cm
	Weight          *int               `bson:"weight,omitempty" json:"weight,omitempty"` // in kg
	Goal            Goal               `bson:"goal" json:"goal"`
	ExperienceLevel ExperienceLevel    `bson:"experienceLevel" json:"experienceLevel"`
	DaysPerWeek     int                `bson:"daysPerWeek" json:"daysPerWeek"`
	Equipment       []string           `bson:"equipment,omitempty" json:"equipment,omitempty"` // e.g. ["dumbbells", "barbell", "bench"]
	Injuries        []string           `bson:"injuries,omitempty" json:"injuries,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProfileUpdate carries the fields of a partial profile update. Nil pointers
// leave the stored value untouched.
type ProfileUpdate struct {
	Age             *int
	Gender          *string
	Height          *int
	Weight          *int
	Goal            *Goal
	ExperienceLevel *ExperienceLevel
	DaysPerWeek     *int
	Equipment       *[]string
	Injuries        *[]string
}

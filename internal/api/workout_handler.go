package api

import (
	"errors"
	"net/http"

	"fitforge/internal/domain"
	"fitforge/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the history service dependency for template reads.
type WorkoutHandler struct {
	historyService service.HistoryService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(historyService service.HistoryService) *WorkoutHandler {
	return &WorkoutHandler{historyService: historyService}
}

// --- DTOs ---

type ExerciseResponse struct {
	ID          string `json:"id"`
	WorkoutID   string `json:"workoutId"`
	Name        string `json:"name"`
	TargetSets  int    `json:"targetSets"`
	TargetReps  string `json:"targetReps"`
	TargetRPE   *int   `json:"targetRpe,omitempty"`
	RestSeconds *int   `json:"restSeconds,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Order       int    `json:"order"`
}

// WorkoutDetailResponse is a workout together with its exercises.
type WorkoutDetailResponse struct {
	WorkoutResponse
	Exercises []ExerciseResponse `json:"exercises"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:          ex.ID.Hex(),
		WorkoutID:   ex.WorkoutID.Hex(),
		Name:        ex.Name,
		TargetSets:  ex.TargetSets,
		TargetReps:  ex.TargetReps,
		TargetRPE:   ex.TargetRPE,
		RestSeconds: ex.RestSeconds,
		Notes:       ex.Notes,
		Order:       ex.Order,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to DTOs.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i, ex := range exercises {
		responses[i] = MapExerciseToResponse(&ex)
	}
	return responses
}

// --- Handler Methods ---

// ListWorkouts returns the workouts of the caller's active plan.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	workouts, err := h.historyService.CurrentWorkouts(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workouts.")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}

// GetWorkout returns one template workout with its exercises.
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}

	detail, err := h.historyService.Workout(c.Request.Context(), userID, workoutID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusNotFound, "Workout not found")
		case errors.Is(err, service.ErrNotOwner):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout.")
		}
		return
	}

	c.JSON(http.StatusOK, WorkoutDetailResponse{
		WorkoutResponse: MapWorkoutToResponse(&detail.Workout),
		Exercises:       MapExercisesToResponse(detail.Exercises),
	})
}

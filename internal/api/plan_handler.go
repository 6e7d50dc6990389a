package api

import (
	"errors"
	"net/http"
	"time"

	"fitforge/internal/domain"
	"fitforge/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler holds the plan and history service dependencies.
type PlanHandler struct {
	planService    service.PlanService
	historyService service.HistoryService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService, historyService service.HistoryService) *PlanHandler {
	return &PlanHandler{planService: planService, historyService: historyService}
}

// --- DTOs ---

type PlanResponse struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	Name           string     `json:"name"`
	Status         string     `json:"status"`
	WeeklySchedule []string   `json:"weeklySchedule,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type WorkoutResponse struct {
	ID          string `json:"id"`
	PlanID      string `json:"planId"`
	DayNumber   int    `json:"dayNumber"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CurrentPlanResponse is the plan together with its workouts.
type CurrentPlanResponse struct {
	PlanResponse
	Workouts []WorkoutResponse `json:"workouts"`
}

// MapPlanToResponse converts a domain.Plan to PlanResponse DTO.
func MapPlanToResponse(plan *domain.Plan) PlanResponse {
	if plan == nil {
		return PlanResponse{}
	}
	return PlanResponse{
		ID:             plan.ID.Hex(),
		UserID:         plan.UserID.Hex(),
		Name:           plan.Name,
		Status:         string(plan.Status),
		WeeklySchedule: plan.WeeklySchedule,
		StartDate:      plan.StartDate,
		EndDate:        plan.EndDate,
		CreatedAt:      plan.CreatedAt,
	}
}

// MapWorkoutToResponse converts a domain.Workout to WorkoutResponse DTO.
func MapWorkoutToResponse(workout *domain.Workout) WorkoutResponse {
	if workout == nil {
		return WorkoutResponse{}
	}
	return WorkoutResponse{
		ID:          workout.ID.Hex(),
		PlanID:      workout.PlanID.Hex(),
		DayNumber:   workout.DayNumber,
		Name:        workout.Name,
		Description: workout.Description,
	}
}

// MapWorkoutsToResponse converts a slice of domain.Workout to DTOs.
func MapWorkoutsToResponse(workouts []domain.Workout) []WorkoutResponse {
	responses := make([]WorkoutResponse, len(workouts))
	for i, w := range workouts {
		responses[i] = MapWorkoutToResponse(&w)
	}
	return responses
}

// --- Handler Methods ---

// GetCurrentPlan returns the caller's active plan with its workouts.
func (h *PlanHandler) GetCurrentPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	plan, workouts, err := h.historyService.CurrentPlan(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, "No active plan")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve current plan.")
		return
	}

	c.JSON(http.StatusOK, CurrentPlanResponse{
		PlanResponse: MapPlanToResponse(plan),
		Workouts:     MapWorkoutsToResponse(workouts),
	})
}

// ListPlans returns every plan of the caller, newest first.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	plans, err := h.historyService.Plans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plans.")
		return
	}

	responses := make([]PlanResponse, len(plans))
	for i, p := range plans {
		responses[i] = MapPlanToResponse(&p)
	}
	c.JSON(http.StatusOK, responses)
}

// GeneratePlan builds a new plan from the caller's profile.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	plan, err := h.planService.Generate(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileRequired) {
			abortWithError(c, http.StatusBadRequest, "Complete onboarding first")
			return
		}
		if errors.Is(err, service.ErrGenerationFailed) {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate plan")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to generate plan")
		return
	}

	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

package api

import (
	"errors"
	"net/http"
	"time"

	"fitforge/internal/domain"
	"fitforge/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogHandler holds the session and history service dependencies.
type LogHandler struct {
	sessionService service.SessionService
	historyService service.HistoryService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(sessionService service.SessionService, historyService service.HistoryService) *LogHandler {
	return &LogHandler{sessionService: sessionService, historyService: historyService}
}

// --- DTOs ---

type StartLogRequest struct {
	WorkoutID string `json:"workoutId" binding:"required"`
}

type LogSetRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
	SetNumber  int    `json:"setNumber" binding:"required,min=1"`
	Weight     int    `json:"weight" binding:"min=0"`
	Reps       int    `json:"reps" binding:"required,min=1"`
	RPE        *int   `json:"rpe" binding:"omitempty,min=1,max=10"`
	Completed  *bool  `json:"completed"` // defaults to true
}

type WorkoutLogResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	WorkoutID   string     `json:"workoutId"`
	Date        time.Time  `json:"date"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
}

type SetLogResponse struct {
	ID           string `json:"id"`
	WorkoutLogID string `json:"workoutLogId"`
	ExerciseID   string `json:"exerciseId"`
	SetNumber    int    `json:"setNumber"`
	Weight       int    `json:"weight"`
	Reps         int    `json:"reps"`
	RPE          *int   `json:"rpe,omitempty"`
	Completed    bool   `json:"completed"`
}

// LogDetailResponse is a workout log together with its recorded sets.
type LogDetailResponse struct {
	WorkoutLogResponse
	Sets []SetLogResponse `json:"sets"`
}

// MapWorkoutLogToResponse converts a domain.WorkoutLog to DTO.
func MapWorkoutLogToResponse(log *domain.WorkoutLog) WorkoutLogResponse {
	if log == nil {
		return WorkoutLogResponse{}
	}
	return WorkoutLogResponse{
		ID:          log.ID.Hex(),
		UserID:      log.UserID.Hex(),
		WorkoutID:   log.WorkoutID.Hex(),
		Date:        log.Date,
		StartedAt:   log.StartedAt,
		CompletedAt: log.CompletedAt,
		Status:      string(log.Status),
		Notes:       log.Notes,
	}
}

// MapSetLogToResponse converts a domain.SetLog to DTO.
func MapSetLogToResponse(setLog *domain.SetLog) SetLogResponse {
	if setLog == nil {
		return SetLogResponse{}
	}
	return SetLogResponse{
		ID:           setLog.ID.Hex(),
		WorkoutLogID: setLog.WorkoutLogID.Hex(),
		ExerciseID:   setLog.ExerciseID.Hex(),
		SetNumber:    setLog.SetNumber,
		Weight:       setLog.Weight,
		Reps:         setLog.Reps,
		RPE:          setLog.RPE,
		Completed:    setLog.Completed,
	}
}

// --- Handler Methods ---

// StartLog begins a workout session against a template workout.
func (h *LogHandler) StartLog(c *gin.Context) {
	var req StartLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(req.WorkoutID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}

	log, err := h.sessionService.Start(c.Request.Context(), userID, workoutID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusNotFound, "Workout not found")
		case errors.Is(err, service.ErrNotOwner):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to start session.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutLogToResponse(log))
}

// CompleteLog ends a workout session.
func (h *LogHandler) CompleteLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	logID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log ID format.")
		return
	}

	log, err := h.sessionService.Complete(c.Request.Context(), userID, logID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLogNotFound):
			abortWithError(c, http.StatusNotFound, "Workout log not found")
		case errors.Is(err, service.ErrNotOwner):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to complete session.")
		}
		return
	}
	c.JSON(http.StatusOK, MapWorkoutLogToResponse(log))
}

// LogSet records one set within a session.
func (h *LogHandler) LogSet(c *gin.Context) {
	var req LogSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	logID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log ID format.")
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	setLog, err := h.sessionService.RecordSet(c.Request.Context(), userID, logID, service.SetInput{
		ExerciseID: exerciseID,
		SetNumber:  req.SetNumber,
		Weight:     req.Weight,
		Reps:       req.Reps,
		RPE:        req.RPE,
		Completed:  completed,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLogNotFound):
			abortWithError(c, http.StatusNotFound, "Workout log not found")
		case errors.Is(err, service.ErrNotOwner):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to record set.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapSetLogToResponse(setLog))
}

// LogHistory returns the caller's workout logs, most recent first.
func (h *LogHandler) LogHistory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	logs, err := h.historyService.History(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve history.")
		return
	}

	responses := make([]WorkoutLogResponse, len(logs))
	for i, l := range logs {
		responses[i] = MapWorkoutLogToResponse(&l)
	}
	c.JSON(http.StatusOK, responses)
}

// LogStats returns aggregate history numbers.
func (h *LogHandler) LogStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	stats, err := h.historyService.Stats(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute statistics.")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetLog returns one workout log with its sets.
func (h *LogHandler) GetLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	logID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log ID format.")
		return
	}

	detail, err := h.historyService.Log(c.Request.Context(), userID, logID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLogNotFound):
			abortWithError(c, http.StatusNotFound, "Workout log not found")
		case errors.Is(err, service.ErrNotOwner):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve log.")
		}
		return
	}

	sets := make([]SetLogResponse, len(detail.Sets))
	for i, s := range detail.Sets {
		sets[i] = MapSetLogToResponse(&s)
	}
	c.JSON(http.StatusOK, LogDetailResponse{
		WorkoutLogResponse: MapWorkoutLogToResponse(&detail.WorkoutLog),
		Sets:               sets,
	})
}

package api

import (
	"net/http"

	"fitforge/internal/api/contract"
	"fitforge/internal/service"

	"github.com/gin-gonic/gin"
)

// handle registers an operation from the contract package so the method and
// path stay defined in one place.
func handle(r gin.IRoutes, op contract.Operation, handlerFunc gin.HandlerFunc) {
	r.Handle(op.Method, op.Path, handlerFunc)
}

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	profileService service.ProfileService,
	planService service.PlanService,
	historyService service.HistoryService,
	sessionService service.SessionService,
	photoService service.PhotoService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	planHandler := NewPlanHandler(planService, historyService)
	workoutHandler := NewWorkoutHandler(historyService)
	logHandler := NewLogHandler(sessionService, historyService)
	photoHandler := NewPhotoHandler(photoService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	handle(router, contract.Register, authHandler.Register)
	handle(router, contract.Login, authHandler.Login)

	protected := router.Group("")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		handle(protected, contract.GetProfile, profileHandler.GetProfile)
		handle(protected, contract.CreateProfile, profileHandler.CreateProfile)
		handle(protected, contract.UpdateProfile, profileHandler.UpdateProfile)
		handle(protected, contract.ResetProfile, profileHandler.ResetProfile)

		handle(protected, contract.GetCurrentPlan, planHandler.GetCurrentPlan)
		handle(protected, contract.ListPlans, planHandler.ListPlans)
		handle(protected, contract.GeneratePlan, planHandler.GeneratePlan)

		handle(protected, contract.ListWorkouts, workoutHandler.ListWorkouts)
		handle(protected, contract.GetWorkout, workoutHandler.GetWorkout)

		handle(protected, contract.StartLog, logHandler.StartLog)
		handle(protected, contract.CompleteLog, logHandler.CompleteLog)
		handle(protected, contract.LogSet, logHandler.LogSet)
		handle(protected, contract.LogHistory, logHandler.LogHistory)
		handle(protected, contract.LogStats, logHandler.LogStats)
		handle(protected, contract.GetLog, logHandler.GetLog)

		handle(protected, contract.PhotoUploadURL, photoHandler.RequestUploadURL)
		handle(protected, contract.ConfirmPhoto, photoHandler.ConfirmUpload)
		handle(protected, contract.ListPhotos, photoHandler.ListPhotos)
		handle(protected, contract.DeletePhoto, photoHandler.DeletePhoto)
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitforge/internal/api"
	"fitforge/internal/config"
	"fitforge/internal/provider/openai"
	"fitforge/internal/repository/mongo"
	"fitforge/internal/service"
	"fitforge/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.Info("Starting FitForge server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	log.Info("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info("Database connection established.")

	// --- Ensure Indexes ---
	go func() { // index creation runs in the background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureProfileIndexes(ctx, appDB.Collection("user_profiles"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("plans"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongo.EnsureWorkoutLogIndexes(ctx, appDB.Collection("workout_logs"))
		mongo.EnsureSetLogIndexes(ctx, appDB.Collection("set_logs"))
		mongo.EnsurePhotoIndexes(ctx, appDB.Collection("progress_photos"))
		log.Info("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	workoutLogRepo := mongo.NewMongoWorkoutLogRepository(appDB)
	setLogRepo := mongo.NewMongoSetLogRepository(appDB)
	photoRepo := mongo.NewMongoPhotoRepository(appDB)
	txRunner := mongo.NewMongoTxRunner(dbClient)

	// --- Model Provider ---
	model := &openai.Client{
		APIKey:     cfg.Model.APIKey,
		BaseURL:    cfg.Model.BaseURL,
		Model:      cfg.Model.Name,
		HTTPClient: &http.Client{Timeout: cfg.Model.Timeout},
	}

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	profileService := service.NewProfileService(profileRepo)
	planService := service.NewPlanService(profileRepo, planRepo, workoutRepo, exerciseRepo, model, txRunner)
	historyService := service.NewHistoryService(planRepo, workoutRepo, exerciseRepo, workoutLogRepo, setLogRepo)
	sessionService := service.NewSessionService(workoutRepo, planRepo, workoutLogRepo, setLogRepo)
	photoService := service.NewPhotoService(photoRepo, fileStorage)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()

	api.SetupRoutes(router, cfg.JWT.Secret, authService, profileService, planService, historyService, sessionService, photoService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Infof("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exiting.")
}

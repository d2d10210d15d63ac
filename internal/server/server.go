package server

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/config"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/handler"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/middleware"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/repository"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/service"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/telemetry"
)

// AppDependencies holds the dependencies required to start the application
type AppDependencies struct {
	Config      *config.Config
	MongoDB     *mongo.Database
	RedisClient *redis.Client
	AuthClient  service.FirebaseAuthClient
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	// Initialize repositories
	userRepo := repository.NewMongoUserRepository(deps.MongoDB)
	maxRepo := repository.NewMongoMaxTestRepository(deps.MongoDB)
	profileRepo := repository.NewMongoProfileRepository(deps.MongoDB)
	programRepo := repository.NewMongoProgramRepository(deps.MongoDB)
	logRepo := repository.NewMongoSessionLogRepository(deps.MongoDB)
	activeRepo := repository.NewMongoActiveSessionRepository(deps.MongoDB)
	redisRepo := repository.NewRedisCacheRepository(deps.RedisClient)
	scheduleCache := repository.NewScheduleCache(redisRepo)
	historyCache := repository.NewHistoryCache(redisRepo)

	// Export storage is optional; no endpoint or a misconfigured bucket
	// shouldn't keep the whole API from starting.
	var s3Repo *repository.S3ArchiveRepository
	if deps.Config.S3.Endpoint != "" {
		var err error
		s3Repo, err = repository.NewS3ArchiveRepository(context.Background(), deps.Config.S3)
		if err != nil {
			log.Printf("Warning: Failed to initialize S3 archive repository: %v", err)
			s3Repo = nil
		}
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, deps.AuthClient, deps.Config.JWT.Secret)
	maxService := service.NewMaxService(maxRepo, profileRepo, redisRepo)
	profileService := service.NewProfileService(profileRepo, redisRepo)
	programService := service.NewProgramService(programRepo, redisRepo)
	scheduleService := service.NewScheduleService(maxRepo, profileRepo, programRepo, scheduleCache)
	syncService := service.NewSyncService(maxRepo, logRepo, redisRepo)

	newPublisher := func(userID string) service.SnapshotPublisher {
		return repository.NewRedisSessionPublisher(deps.RedisClient, userID)
	}
	sessionService := service.NewSessionService(activeRepo, logRepo, profileRepo, scheduleService, programService, historyCache, newPublisher)

	var exportService *service.ExportService
	if s3Repo != nil {
		exportService = service.NewExportService(maxRepo, logRepo, s3Repo)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	maxHandler := handler.NewMaxHandler(maxService)
	profileHandler := handler.NewProfileHandler(profileService)
	programHandler := handler.NewProgramHandler(programService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	historyHandler := handler.NewHistoryHandler(sessionService, exportService)
	syncHandler := handler.NewSyncHandler(syncService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "TB3 Strength Tracker API",
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	if deps.Config.OTEL.Enabled {
		app.Use(telemetry.FiberMiddleware())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Correlation-ID",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "tb3-api",
		})
	})

	// API v1 routes
	v1 := app.Group("/v1")

	// Auth endpoints (public)
	auth := v1.Group("/auth")
	auth.Post("/login", authHandler.LoginOrRegister)

	// Everything below is scoped to the authenticated user
	api := v1.Group("/")
	api.Use(middleware.VerifyTB3Token(deps.Config.JWT.Secret))

	api.Post("/maxes", maxHandler.RecordTest)
	api.Get("/maxes", maxHandler.History)
	api.Delete("/maxes", maxHandler.DeleteAll)
	api.Get("/lifts", maxHandler.Lifts)
	api.Get("/lifts/:lift/table", maxHandler.LiftTable)

	api.Get("/profile", profileHandler.Get)
	api.Put("/profile", profileHandler.Update)

	api.Get("/templates", programHandler.Templates)
	api.Get("/program", programHandler.Get)
	api.Post("/program", programHandler.Set)
	api.Put("/program", programHandler.Set)
	api.Delete("/program", programHandler.Clear)

	api.Get("/schedule", scheduleHandler.Get)
	api.Get("/schedule/hash", scheduleHandler.Hash)

	// Session mutations carry X-Correlation-ID so flaky-network retries of the
	// same tap replay the first response instead of completing a second set.
	session := api.Group("/session")
	session.Get("/", sessionHandler.State)
	session.Get("/snapshot", sessionHandler.Snapshot)
	session.Get("/tick", sessionHandler.Tick)

	sessionMut := session.Group("/")
	sessionMut.Use(middleware.Idempotency(deps.RedisClient, 10*time.Minute))
	sessionMut.Post("/start", sessionHandler.Start)
	sessionMut.Post("/complete-set", sessionHandler.CompleteSet)
	sessionMut.Post("/undo", sessionHandler.Undo)
	sessionMut.Post("/finish-exercise", sessionHandler.FinishExercise)
	sessionMut.Post("/navigate", sessionHandler.Navigate)
	sessionMut.Post("/override-weight", sessionHandler.OverrideWeight)
	sessionMut.Post("/finish", sessionHandler.Finish)
	sessionMut.Post("/resume", sessionHandler.Resume)
	sessionMut.Post("/discard", sessionHandler.Discard)

	api.Get("/history", historyHandler.List)
	api.Post("/history/export", historyHandler.Export)

	sync := api.Group("/sync")
	sync.Get("/changes", syncHandler.Changes)
	sync.Post("/apply", syncHandler.Apply)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	log.Printf("Error: %v", err)
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

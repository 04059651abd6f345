package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adventura/app/echo-server/router"
	"adventura/business/activity"
	"adventura/business/interaction"
	"adventura/business/preference"
	"adventura/business/recommender"
	userService "adventura/business/user"
	"adventura/internal/middleware"
	psqlRepo "adventura/internal/repository/postgres"
	redisRepo "adventura/internal/repository/redis"
	"adventura/internal/rest"
	"adventura/pkg/config"
	"adventura/pkg/database"
	redisdb "adventura/pkg/database/redis"
	"adventura/pkg/logger"
	"adventura/pkg/metrics"
	"adventura/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting Adventura", "version", cfg.App.Version)

	utils.SetJWTSecret(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected successfully")

	// Recommendation cache: redis when reachable, in-process otherwise.
	var recoCache recommender.RecommendationCache
	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, using in-memory recommendation cache", "error", err)
		recoCache = recommender.NewMemoryCache()
	} else {
		recoCache = redisRepo.NewRecommendationCache(redisClient)
		defer redisdb.CloseRedisClient(redisClient)
	}

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	activityRepo := psqlRepo.NewActivityRepository(db)
	interactionRepo := psqlRepo.NewInteractionRepository(db)
	preferenceRepo := psqlRepo.NewPreferenceRepository(db)
	modelRepo := psqlRepo.NewModelRepository(db)

	// Init service
	usrService := userService.NewUserService(userRepo, validate)
	activityService := activity.NewService(activityRepo)
	recoService := recommender.NewService(
		preferenceRepo,
		interactionRepo,
		activityRepo,
		modelRepo,
		recoCache,
		recommender.DefaultConfig(),
	)
	interactionService := interaction.NewService(interactionRepo, activityRepo, preferenceRepo, recoService)
	preferenceService := preference.NewService(preferenceRepo)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	recommendationHandler := rest.NewRecommendationHandler(recoService, activityService)
	interactionHandler := rest.NewInteractionHandler(interactionService)
	preferenceHandler := rest.NewPreferenceHandler(preferenceService)

	// Background retrain loop
	scheduler := recommender.NewRetrainScheduler(recoService, recommender.SchedulerConfig{
		PollInterval:         cfg.Recommender.PollInterval,
		RetrainInterval:      cfg.Recommender.RetrainInterval,
		MinRetrainInterval:   cfg.Recommender.RetrainMinInterval,
		InteractionThreshold: cfg.Recommender.RetrainThreshold,
	})
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	go scheduler.Run(schedulerCtx)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler)
	router.SetRecommendationRoutes(api, recommendationHandler)
	router.SetInteractionRoutes(api, interactionHandler)
	router.SetPreferenceRoutes(api, preferenceHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"campuseats/database"
	"campuseats/internal/config"
	"campuseats/internal/httpapi/handler"
	"campuseats/internal/httpapi/middleware"
	"campuseats/internal/httpapi/repository"
	"campuseats/internal/httpapi/service"
	"campuseats/internal/uploads"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	store, err := uploads.NewStore(cfg.UploadDir, cfg.UploadURLPrefix, logger)
	if err != nil {
		log.Fatalf("could not initialize upload store: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	canteenRepo := repository.NewCanteenRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	activityService := service.NewActivityService(activityRepo, logger)
	canteenService := service.NewCanteenService(canteenRepo)
	reviewService := service.NewReviewService(
		reviewRepo, canteenRepo, commentRepo, reactionRepo,
		activityService, store, cfg.PlaceholderImageURL, logger,
	)
	interactionService := service.NewInteractionService(reactionRepo, reviewRepo, activityService, logger)
	commentService := service.NewCommentService(commentRepo, reviewRepo, activityService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	go limiter.CleanupLoop(10 * time.Minute)
	router.Use(middleware.RateLimitMiddleware(limiter))

	// Uploaded review and profile images are served straight off disk.
	router.Static(cfg.UploadURLPrefix, store.Dir())

	authRequired := middleware.AuthMiddleware(authService)
	authOptional := middleware.OptionalAuthMiddleware(authService)

	handler.NewAuthHandler(authService, interactionService, store, logger).RegisterRoutes(router, authRequired, authOptional)
	handler.NewCanteenHandler(canteenService, logger).RegisterRoutes(router)
	handler.NewReviewHandler(reviewService, store, logger).RegisterRoutes(router, authRequired)
	handler.NewInteractionHandler(interactionService, logger).RegisterRoutes(router, authRequired)
	handler.NewCommentHandler(commentService, logger).RegisterRoutes(router, authRequired)
	handler.NewActivityHandler(activityService, logger).RegisterRoutes(router, authRequired)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exiting")
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}

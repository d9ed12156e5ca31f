package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"some-planner/pkg/config"
	"some-planner/pkg/logger"
	"some-planner/pkg/queue"
	"some-planner/pkg/session"
	"some-planner/pkg/storage"
	plannerHTTP "some-planner/services/planner/internal/controller/http"
	"some-planner/services/planner/internal/repo/persistent"
	"some-planner/services/planner/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	_ "some-planner/services/planner/docs" // Swagger docs
)

// NewRouter wires repositories, use cases and handlers onto one engine.
// publisher may be nil.
func NewRouter(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, store storage.Storage, publisher usecase.EventPublisher) *gin.Engine {
	sessionStore := session.NewRedisStore(redisClient, 2*cfg.SessionLifetime, []byte(cfg.SessionSecret))
	sessionStore.Options.Secure = cfg.SessionCookieSecure

	// Initialize repositories
	shopRepo := persistent.NewShopRepository(db)
	templateRepo := persistent.NewTemplateRepository(db)
	postRepo := persistent.NewPostRepository(db)
	mediaRepo := persistent.NewMediaRepository(db)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(usecase.AuthConfig{
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPasswordHash,
		Lifetime:     cfg.SessionLifetime,
	}, log)
	shopUseCase := usecase.NewShopUseCase(shopRepo, log)
	templateUseCase := usecase.NewTemplateUseCase(templateRepo, log)
	postUseCase := usecase.NewPostUseCase(postRepo, shopRepo, store, publisher, log)
	mediaUseCase := usecase.NewMediaUseCase(mediaRepo, postRepo, store, usecase.MediaPolicy{
		MaxSize:    cfg.UploadMaxSize,
		ImageTypes: cfg.AllowedImageTypes,
		VideoTypes: cfg.AllowedVideoTypes,
	}, publisher, log)

	// Initialize HTTP handlers
	guard := plannerHTTP.NewGuard(authUseCase, sessionStore, cfg.SessionCookieName, log)
	handlers := plannerHTTP.Handlers{
		Guard:     guard,
		Auth:      plannerHTTP.NewAuthHandler(authUseCase, guard, log),
		Shops:     plannerHTTP.NewShopHandler(shopUseCase, log),
		Templates: plannerHTTP.NewTemplateHandler(templateUseCase, log),
		Posts:     plannerHTTP.NewPostHandler(postUseCase, log),
		Media:     plannerHTTP.NewMediaHandler(mediaUseCase, log),
	}
	if local, ok := store.(*storage.Local); ok {
		handlers.Uploads = local
	}

	return plannerHTTP.NewRouter(plannerHTTP.RouterConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		UploadMaxSize:  cfg.UploadMaxSize,
		LoginLimit:     cfg.LoginRateLimit,
		LoginWindow:    cfg.LoginRateWindow,
	}, handlers, redisClient, log)
}

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, store storage.Storage, queueClient *queue.Client) {
	// a nil *queue.Client must not reach the use cases as a non-nil interface
	var publisher usecase.EventPublisher
	if queueClient != nil {
		publisher = queueClient
	}

	r := NewRouter(cfg, log, db, redisClient, store, publisher)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Planner service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down planner service...")

	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server before closing what its handlers use
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	// Close RabbitMQ connection if it was initialized
	if queueClient != nil {
		queueClient.Close()
	}

	log.Info("Planner service exited")
}

package main

import (
	"some-planner/pkg/cache"
	"some-planner/pkg/config"
	"some-planner/pkg/database"
	"some-planner/pkg/logger"
	"some-planner/pkg/queue"
	"some-planner/pkg/s3"
	"some-planner/pkg/storage"
	plannerApp "some-planner/services/planner/internal/app"
	"some-planner/services/planner/internal/model"

	"github.com/gin-gonic/gin"
)

// @title           Some Planner API
// @version         1.0
// @description     Content planner for shop social media posts. Authentication is a cookie session; state-changing requests carry the session CSRF token.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	gin.SetMode(cfg.GinMode)

	log := logger.New()
	defer log.Sync()

	db, err := database.NewDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}
	// postgres schemas come from cmd/migrate
	if cfg.DBDriver == config.DriverSQLite {
		if err := db.AutoMigrate(model.Models()...); err != nil {
			log.Error("Failed to migrate database: %v", err)
			panic(err)
		}
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	var store storage.Storage
	switch cfg.StorageDriver {
	case config.StorageS3:
		s3Client, err := s3.NewClient(cfg, log)
		if err != nil {
			log.Error("Failed to create S3 client: %v", err)
			panic(err)
		}
		store = s3Client
	default:
		store = storage.NewLocal(cfg.UploadDir)
	}

	// Domain events are optional
	var queueClient *queue.Client
	if cfg.RabbitMQHost != "" {
		queueClient, err = queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
			queueClient = nil
		}
	}

	plannerApp.Run(cfg, log, db, redisClient, store, queueClient)
}

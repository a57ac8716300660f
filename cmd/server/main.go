package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quizwhiz/quiz-service/internal/cache"
	"github.com/quizwhiz/quiz-service/internal/config"
	"github.com/quizwhiz/quiz-service/internal/events"
	"github.com/quizwhiz/quiz-service/internal/handlers"
	"github.com/quizwhiz/quiz-service/internal/repositories"
	"github.com/quizwhiz/quiz-service/internal/services"
	"github.com/quizwhiz/quiz-service/internal/utils"
	"github.com/quizwhiz/quiz-service/internal/validator"
	"github.com/quizwhiz/quiz-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	// Redis is optional: without it the question cache degrades to a
	// pass-through.
	cacheService := cache.NewNoopCache()
	if cfg.RedisURL != "" {
		client, err := pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, running without question cache", "error", err)
		} else {
			defer client.Close()
			cacheService = cache.NewRedisCache(client, logger)
		}
	}

	publisher := events.NewChannelEventPublisher(events.PublisherConfig{
		TopicName: cfg.EventTopic,
		Logger:    utils.ToSlogLogger(logger),
	})
	defer publisher.Close()

	store := repositories.NewFSStore(cfg.QuizDir, cfg.ManifestPath)
	v := validator.New()

	serviceManager := services.NewServiceManager(store, cacheService, publisher, logger, v, services.ManagerConfig{
		CacheTTL:     time.Duration(cfg.CacheTTLSec) * time.Second,
		ExamDuration: time.Duration(cfg.ExamDuration) * time.Second,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(serviceManager, v, logger)
	handlerManager.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting quiz service", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down quiz service")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}

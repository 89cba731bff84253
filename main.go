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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"heala/config"
	_ "heala/docs"
	"heala/internal/cache"
	"heala/internal/repository"
	"heala/internal/service"
	"heala/internal/storage"
	"heala/internal/transport/rest"
	"heala/pkg/database"
	"heala/pkg/logger"
	"heala/pkg/metrics"
)

// @title Heala API
// @version 1.0
// @description Marketplace API connecting clients with verified wellness practitioners.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		panic(err)
	}

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("loading configuration", zap.Error(err))
	}

	db, err := database.NewPostgresDB(cfg.Postgres)
	if err != nil {
		log.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()

	log.Info("running database migrations")
	if err := database.RunMigrations(db, "./migrations", log); err != nil {
		log.Fatal("applying migrations", zap.Error(err))
	}

	var fileStorage storage.FileStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(cfg.S3, log)
		if err != nil {
			log.Fatal("initializing object storage", zap.Error(err))
		}
		fileStorage = s3Storage
		log.Info("object storage initialized", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		log.Warn("object storage not configured, file uploads are disabled")
	}

	var practitionerCache *cache.PractitionerCache
	if cfg.Redis.Addr != "" {
		practitionerCache, err = cache.NewPractitionerCache(cfg.Redis, log)
		if err != nil {
			log.Fatal("connecting to redis", zap.Error(err))
		}
		defer practitionerCache.Close()
		log.Info("practitioner cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	metrics.Init()

	repos := repository.NewRepositories(db)

	services := service.NewServices(service.Deps{
		Repos:       repos,
		Logger:      log,
		Config:      cfg,
		FileStorage: fileStorage,
		Cache:       practitionerCache,
	})

	handler := rest.NewHandler(services, log, cfg)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	handler.InitRoutes(router)

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("starting server", zap.Error(err))
		}
	}()

	log.Info("server started", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("stopping server", zap.Error(err))
	}

	log.Info("server stopped")
}

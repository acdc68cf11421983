package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	// Swagger imports
	_ "juegos/backend/docs" // registers the Swagger docs

	"juegos/backend/internal/config"
	"juegos/backend/internal/database"
	"juegos/backend/internal/handler"
	"juegos/backend/internal/hub"
	"juegos/backend/internal/logger"
	"juegos/backend/internal/media"
	"juegos/backend/internal/metrics"
	"juegos/backend/internal/repository"
	"juegos/backend/internal/router"
)

const shutdownTimeout = 10 * time.Second

// @title           Juegos API
// @version         1.0
// @description     Games catalog with image uploads.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Unable to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Unable to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	games, closeStore, err := openStore(ctx, cfg, zlog)
	if err != nil {
		return err
	}
	defer closeStore()

	store, err := media.NewStore(cfg.PublicDir)
	if err != nil {
		return err
	}
	events := hub.NewHub()

	gin.SetMode(gin.ReleaseMode)
	engine := router.New(router.Deps{
		Log:            zlog,
		Metrics:        metrics.New(),
		Games:          handler.NewGameHandler(games, store, media.NewLifecycle(games, store, zlog), events, zlog),
		Auth:           handler.NewAuthHandler(cfg.AdminUser, cfg.AdminPasswordHash, cfg.JWTSecret, cfg.JWTExpires, zlog),
		Events:         handler.NewEventsHandler(events),
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins(),
		UploadsDir:     store.UploadsDir(),
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server is running", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreDriver))
		zlog.Info("swagger UI available", zap.String("url", fmt.Sprintf("http://localhost%s/swagger/index.html", srv.Addr)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore connects the configured backend and returns its repository and a
// function releasing the connection.
func openStore(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (repository.GameRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := database.ConnectPostgres(cfg.DatabaseURL, zlog)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repository.NewGormGameRepository(db), closeFn, nil
	default:
		client, db, err := database.ConnectMongo(ctx, cfg.MongoURI(), cfg.DBDatabase, zlog)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				zlog.Warn("mongo disconnect", zap.Error(err))
			}
		}
		return repository.NewMongoGameRepository(db), closeFn, nil
	}
}

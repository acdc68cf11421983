package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"juegos/backend/internal/repository"
)

const connectTimeout = 10 * time.Second

// ConnectMongo opens a client for uri, checks the primary is reachable and
// returns the named database.
func ConnectMongo(ctx context.Context, uri, name string, log *zap.Logger) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info("database connection established", zap.String("driver", "mongo"), zap.String("database", name))
	return client, client.Database(name), nil
}

// ConnectPostgres initializes the gorm connection and migrates the games table.
func ConnectPostgres(dsn string, log *zap.Logger) (*gorm.DB, error) {
	// Configure GORM logger
	gormLogger := logger.New(
		stdLogger(),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("database connection established", zap.String("driver", "postgres"))

	if err := db.AutoMigrate(&repository.GameRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("database migrated successfully")
	return db, nil
}

func stdLogger() logger.Writer {
	return log.New(os.Stdout, "\r\n", log.LstdFlags)
}

// Package store owns the process-wide database handle: it is opened once at
// startup, shared by every module, and closed on shutdown.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"lessonstore/internal/config"
	"lessonstore/internal/infrastructure/mongodb"
	"lessonstore/internal/infrastructure/mysql"
)

type Store struct {
	Driver string

	// Set when Driver is config.DriverMongo.
	MongoClient *mongo.Client
	Mongo       *mongo.Database

	// Set when Driver is config.DriverMySQL.
	SQL *sql.DB

	logger *zap.Logger
}

// Open connects to the backend selected by cfg.Store.Driver. On MySQL the
// lesson and order tables are created when missing.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	s := &Store{Driver: cfg.Store.Driver, logger: logger}

	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, err := mongodb.NewConnection(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		s.MongoClient = client
		s.Mongo = client.Database(cfg.Mongo.Database)

		if err := mongodb.EnsureIndexes(ctx, s.Mongo); err != nil {
			// indexes only speed up sorting, the service works without them
			logger.Warn("ensuring mongo indexes", zap.Error(err))
		}
		logger.Info("mongo connected", zap.String("database", cfg.Mongo.Database))

	case config.DriverMySQL:
		db, err := mysql.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		s.SQL = db

		if err := mysql.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("mysql connected", zap.String("database", cfg.Database.Name))

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	return s, nil
}

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	switch {
	case s.MongoClient != nil:
		return s.MongoClient.Ping(ctx, nil)
	case s.SQL != nil:
		return s.SQL.PingContext(ctx)
	default:
		return fmt.Errorf("store is not open")
	}
}

func (s *Store) Close(ctx context.Context) error {
	if s.MongoClient != nil {
		s.logger.Info("disconnecting mongo client")
		if err := s.MongoClient.Disconnect(ctx); err != nil {
			return fmt.Errorf("disconnecting mongo: %w", err)
		}
	}
	if s.SQL != nil {
		s.logger.Info("closing mysql pool")
		if err := s.SQL.Close(); err != nil {
			return fmt.Errorf("closing mysql: %w", err)
		}
	}
	return nil
}

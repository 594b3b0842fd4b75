package repository

import (
	"context"
	"fmt"
	"log/slog"

	"foldernotes/internal/config"
	"foldernotes/internal/domain/repositories"
	"foldernotes/internal/repository/mongodb"
	"foldernotes/internal/repository/postgres"
	"foldernotes/internal/repository/sqlite"
)

// Admin manages schema and connection lifecycle for a store
type Admin interface {
	EnsureSchema(ctx context.Context) error
	DropTables(ctx context.Context) error
	ClearData(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Store bundles the repositories of one backend
type Store struct {
	Driver    string
	Folders   repositories.FolderRepository
	Notes     repositories.NoteRepository
	TxManager repositories.TransactionManager
	Admin     Admin
}

// Open connects to the backend selected by cfg.StoreDriver.
// The schema is not touched; call Admin.EnsureSchema when needed.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("database connected",
			"driver", cfg.StoreDriver,
			"max_conns", pool.Config().MaxConns,
			"min_conns", pool.Config().MinConns,
		)
		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}
		return &Store{
			Driver:    cfg.StoreDriver,
			Folders:   postgres.NewFolderRepository(repoConfig),
			Notes:     postgres.NewNoteRepository(repoConfig),
			TxManager: postgres.NewTransactionManager(repoConfig),
			Admin:     postgres.NewAdmin(repoConfig),
		}, nil

	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		logger.Info("database connected",
			"driver", cfg.StoreDriver,
			"database", cfg.MongoDatabase,
			"transactions", cfg.MongoTransactions,
		)
		repoConfig := &mongodb.RepositoryConfig{
			Client:       client,
			Database:     client.Database(cfg.MongoDatabase),
			Collections:  mongodb.NewCollectionNames(cfg.TablePrefix),
			Logger:       logger,
			Transactions: cfg.MongoTransactions,
		}
		return &Store{
			Driver:    cfg.StoreDriver,
			Folders:   mongodb.NewFolderRepository(repoConfig),
			Notes:     mongodb.NewNoteRepository(repoConfig),
			TxManager: mongodb.NewTransactionManager(repoConfig),
			Admin:     mongodb.NewAdmin(repoConfig),
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		logger.Info("database connected",
			"driver", cfg.StoreDriver,
			"path", cfg.SQLitePath,
		)
		repoConfig := &sqlite.RepositoryConfig{
			DB:     db,
			Tables: sqlite.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}
		return &Store{
			Driver:    cfg.StoreDriver,
			Folders:   sqlite.NewFolderRepository(repoConfig),
			Notes:     sqlite.NewNoteRepository(repoConfig),
			TxManager: sqlite.NewTransactionManager(repoConfig),
			Admin:     sqlite.NewAdmin(repoConfig),
		}, nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER: %s", cfg.StoreDriver)
	}
}

// OpenWithSchema opens the store and makes sure its schema exists
func OpenWithSchema(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	store, err := Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := store.Admin.EnsureSchema(ctx); err != nil {
		_ = store.Admin.Close(ctx)
		return nil, err
	}
	return store, nil
}

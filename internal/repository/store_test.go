package repository_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"foldernotes/internal/config"
	"foldernotes/internal/repository"
	"foldernotes/internal/repository/sqlite"
	"foldernotes/internal/repository/storetest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// uniquePrefix isolates each test's tables/collections on shared servers
func uniquePrefix() string {
	return fmt.Sprintf("test_%s_", strings.ReplaceAll(uuid.NewString()[:8], "-", ""))
}

func openStore(t *testing.T, cfg *config.Config, dropAfter bool) *repository.Store {
	t.Helper()
	ctx := context.Background()

	store, err := repository.OpenWithSchema(ctx, cfg, discardLogger())
	require.NoError(t, err)

	t.Cleanup(func() {
		if dropAfter {
			_ = store.Admin.DropTables(ctx)
		}
		_ = store.Admin.Close(ctx)
	})
	return store
}

func TestSQLiteStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) *repository.Store {
		return openStore(t, &config.Config{
			StoreDriver: config.DriverSQLite,
			SQLitePath:  sqlite.MemoryPath,
			TablePrefix: "test_",
		}, false)
	})
}

func TestSQLiteFileStore(t *testing.T) {
	path := t.TempDir() + "/notes.db"
	storetest.Run(t, func(t *testing.T) *repository.Store {
		return openStore(t, &config.Config{
			StoreDriver: config.DriverSQLite,
			SQLitePath:  path,
			TablePrefix: uniquePrefix(),
		}, true)
	})
}

// TEST_DATABASE_URL points at a disposable PostgreSQL database
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	storetest.Run(t, func(t *testing.T) *repository.Store {
		return openStore(t, &config.Config{
			StoreDriver: config.DriverPostgres,
			DatabaseURL: dsn,
			TablePrefix: uniquePrefix(),
		}, true)
	})
}

// TEST_MONGO_URI points at a disposable MongoDB server
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	storetest.Run(t, func(t *testing.T) *repository.Store {
		return openStore(t, &config.Config{
			StoreDriver:   config.DriverMongo,
			MongoURI:      uri,
			MongoDatabase: "foldernotes_test",
			TablePrefix:   uniquePrefix(),
		}, true)
	})
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := repository.Open(context.Background(), &config.Config{StoreDriver: "redis"}, discardLogger())
	require.Error(t, err)
}

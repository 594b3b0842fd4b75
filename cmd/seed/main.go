package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"foldernotes/internal/config"
	"foldernotes/internal/repository"
	"foldernotes/internal/seed"
	"foldernotes/internal/service"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed folders or notes")
	clearData := flag.Bool("clear-data", false, "Clear all folders and notes (keep schema)")
	fixturesPath := flag.String("fixtures", "", "YAML fixtures file (defaults to the built-in sample data)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *clearData {
		log.Printf("🧹 Clearing data only (driver: %s, prefix: %s)", cfg.StoreDriver, cfg.TablePrefix)
	} else if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (driver: %s, prefix: %s)", cfg.StoreDriver, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding store (driver: %s, prefix: %s)", cfg.StoreDriver, cfg.TablePrefix)
	}

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to store: %v", err)
	}
	defer func() { _ = store.Admin.Close(ctx) }()

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := store.Admin.DropTables(ctx); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring schema is up to date...")
	if err := store.Admin.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	log.Println("⚠️  Clearing existing folders and notes...")
	if err := store.Admin.ClearData(ctx); err != nil {
		log.Fatalf("Failed to clear data: %v", err)
	}
	if *clearData {
		log.Println("✅ Data cleared successfully")
		return
	}

	fixtures, err := loadFixtures(*fixturesPath)
	if err != nil {
		log.Fatalf("Failed to load fixtures: %v", err)
	}

	// Seed through the service layer so fixtures get the same validation as the API
	validator := service.NewResourceValidator(store.Folders)
	seeder := seed.NewSeeder(
		service.NewFolderService(store.Folders, store.Notes, store.TxManager, logger),
		service.NewNoteService(store.Notes, store.TxManager, validator, logger),
		logger,
	)

	log.Println("📝 Seeding folders and notes...")
	res, err := seeder.Seed(ctx, fixtures)
	if err != nil {
		log.Fatalf("❌ Seeding stopped after %d folders and %d notes: %v", res.Folders, res.Notes, err)
	}

	log.Printf("🎉 Seeding complete! (%d folders, %d notes)", res.Folders, res.Notes)
}

func loadFixtures(path string) (*seed.Fixtures, error) {
	if path == "" {
		return seed.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seed.Parse(data)
}

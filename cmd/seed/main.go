package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"archiva/internal/config"
	"archiva/internal/domain/models"
	"archiva/internal/repository/postgres"
	"archiva/internal/service/docsystem"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// seedActor is the synthetic director-of-studies identity the seeder uses
// so provisioned folders have a traceable creator.
var seedActor = models.Actor{ID: "system-seed", Name: "System", Role: models.RoleDOS}

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't apply folder templates")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	templates, err := loadTemplates(cfg.TemplateDir)
	if err != nil {
		log.Fatalf("Failed to load folder templates: %v", err)
	}
	if len(templates) == 0 {
		log.Printf("No folder templates found in %s, nothing to apply", cfg.TemplateDir)
		return
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)
	folderService := docsystem.NewFolderService(folderRepo, txManager, logger)

	log.Printf("Applying %d folder templates...", len(templates))
	result, err := folderService.ApplyTemplates(ctx, templates, seedActor)
	if err != nil {
		log.Fatalf("Failed to apply templates: %v", err)
	}

	log.Printf("Templates applied: %d folders created, %d reused", len(result.Created), len(result.Reused))
}

// loadTemplates reads every *.yaml file in dir and concatenates their
// template lists. Files are applied in name order so runs are deterministic.
func loadTemplates(dir string) ([]models.FolderTemplate, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var templates []models.FolderTemplate
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		var file models.TemplateFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, err
		}

		templates = append(templates, file.Templates...)
		log.Printf("  loaded %d templates from %s", len(file.Templates), path)
	}

	return templates, nil
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	createFolders := `
		CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			parent_id UUID REFERENCES ` + tables.Folders + `(id) ON DELETE SET NULL,
			created_by TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)
	`
	if _, err := pool.Exec(ctx, createFolders); err != nil {
		return err
	}

	createDocuments := `
		CREATE TABLE IF NOT EXISTS ` + tables.Documents + ` (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			file_size TEXT NOT NULL,
			file_type TEXT NOT NULL,
			file_url TEXT,
			class_level TEXT,
			subject TEXT,
			year TEXT,
			tags TEXT[] NOT NULL DEFAULT '{}',
			status TEXT NOT NULL DEFAULT 'pending',
			downloads INTEGER NOT NULL DEFAULT 0,
			uploaded_by TEXT NOT NULL,
			approved_by TEXT,
			approved_at TIMESTAMPTZ,
			rejection_reason TEXT,
			folder_id UUID REFERENCES ` + tables.Folders + `(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)
	`
	if _, err := pool.Exec(ctx, createDocuments); err != nil {
		return err
	}

	// Case-insensitive sibling uniqueness among active folders. Root-level
	// folders need their own partial index since NULLs never collide.
	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_sibling_name
			ON ` + tables.Folders + `(parent_id, lower(name))
			WHERE parent_id IS NOT NULL AND deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_root_name
			ON ` + tables.Folders + `(lower(name))
			WHERE parent_id IS NULL AND deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_parent
			ON ` + tables.Folders + `(parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_status
			ON ` + tables.Documents + `(status) WHERE deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_folder
			ON ` + tables.Documents + `(folder_id)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Documents,
		tables.Folders,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  dropped %s", table)
	}

	return nil
}

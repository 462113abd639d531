package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"archiva/internal/auth"
	"archiva/internal/config"
	"archiva/internal/handler"
	"archiva/internal/middleware"
	"archiva/internal/repository/postgres"
	"archiva/internal/service/docsystem"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier for staff authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	tables := postgres.NewTableNames(cfg.TablePrefix)

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	docRepo := postgres.NewDocumentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Services
	folderService := docsystem.NewFolderService(folderRepo, txManager, logger)
	docService := docsystem.NewDocumentService(docRepo, folderRepo, cfg.RetentionDays, logger)
	treeService := docsystem.NewTreeService(folderRepo, logger)

	// Handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	docHandler := handler.NewDocumentHandler(docService, logger)
	treeHandler := handler.NewTreeHandler(treeService, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Public surfaces: catalogue search, tree browsing, downloads, vocabulary
	mux.HandleFunc("GET /api/documents/search", docHandler.SearchDocuments)
	mux.HandleFunc("GET /api/tree", treeHandler.GetTree)
	mux.HandleFunc("POST /api/documents/{id}/download", docHandler.RecordDownload)
	mux.HandleFunc("GET /api/vocabulary", docHandler.GetVocabulary)

	// Folder routes (staff)
	mux.HandleFunc("POST /api/folders", middleware.RequireStaff(folderHandler.CreateFolder))
	mux.HandleFunc("GET /api/folders/{id}", middleware.RequireStaff(folderHandler.GetFolder))
	mux.HandleFunc("PATCH /api/folders/{id}", middleware.RequireStaff(folderHandler.UpdateFolder))
	mux.HandleFunc("DELETE /api/folders/{id}", middleware.RequireStaff(folderHandler.DeleteFolder))
	mux.HandleFunc("POST /api/folders/{id}/restore", middleware.RequireStaff(folderHandler.RestoreFolder))
	mux.HandleFunc("POST /api/folders/templates", middleware.RequireDOS(folderHandler.ApplyTemplates))

	// Document routes (staff)
	mux.HandleFunc("POST /api/documents", middleware.RequireStaff(docHandler.SubmitDocument))
	mux.HandleFunc("GET /api/documents/{id}", middleware.RequireStaff(docHandler.GetDocument))
	mux.HandleFunc("DELETE /api/documents/{id}", middleware.RequireStaff(docHandler.DeleteDocument))
	mux.HandleFunc("POST /api/documents/{id}/restore", middleware.RequireStaff(docHandler.RestoreDocument))

	// Review and trash routes (director of studies)
	mux.HandleFunc("POST /api/documents/{id}/approve", middleware.RequireDOS(docHandler.ApproveDocument))
	mux.HandleFunc("POST /api/documents/{id}/reject", middleware.RequireDOS(docHandler.RejectDocument))
	mux.HandleFunc("GET /api/admin/documents", middleware.RequireStaff(docHandler.ListDocuments))
	mux.HandleFunc("GET /api/trash", middleware.RequireDOS(docHandler.ListTrash))
	mux.HandleFunc("DELETE /api/trash/{id}", middleware.RequireDOS(docHandler.PurgeDocument))
	mux.HandleFunc("GET /api/stats", middleware.RequireDOS(docHandler.GetStats))

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	h = middleware.Authenticate(jwtVerifier)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"promptbase/internal/auth"
	"promptbase/internal/config"
	"promptbase/internal/domain/repositories"
	"promptbase/internal/handler"
	"promptbase/internal/middleware"
	"promptbase/internal/repository/memory"
	"promptbase/internal/repository/postgres"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

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

	ctx := context.Background()

	var (
		folderRepo repositories.FolderRepository
		promptRepo repositories.PromptRepository
		authMW     func(http.Handler) http.Handler
		authClient *auth.Client
	)

	if cfg.SupabaseDBURL != "" {
		verifier, err := auth.NewJWKSVerifier(ctx, cfg.SupabaseJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create token verifier: %v", err)
		}

		pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()
		logger.Info("database connected", "max_conns", 25, "min_conns", 5)

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}
		folderRepo = postgres.NewFolderRepository(repoConfig)
		promptRepo = postgres.NewPromptRepository(repoConfig)
		authMW = middleware.Auth(verifier)
		authClient = auth.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	} else {
		if cfg.Environment == "prod" {
			log.Fatalf("SUPABASE_DB_URL is required in production")
		}
		logger.Warn("no database configured, using in-memory store with header auth")
		store := memory.NewStore()
		folderRepo = store.Folders()
		promptRepo = store.Prompts()
		authMW = middleware.HeaderAuth()
	}

	registry := handler.NewEngineRegistry(folderRepo, promptRepo, logger)
	viewHandler := handler.NewViewHandler(registry, logger)
	folderHandler := handler.NewFolderHandler(registry, logger)
	promptHandler := handler.NewPromptHandler(registry, logger)
	sessionHandler := handler.NewSessionHandler(authClient, registry, logger)

	logger.Info("services initialized")

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", viewHandler.HealthCheck)

	// View resolution: browser path in, selector + filtered prompts out
	mux.HandleFunc("GET /api/view", viewHandler.GetView)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)

	// Prompt routes
	mux.HandleFunc("POST /api/prompts", promptHandler.SavePrompt)
	mux.HandleFunc("DELETE /api/prompts/{id}", promptHandler.DeletePrompt)

	// Session routes
	mux.HandleFunc("POST /api/session", sessionHandler.SignIn)
	mux.HandleFunc("DELETE /api/session", sessionHandler.SignOut)

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS -> Recovery -> Auth -> Routes
	var root http.Handler = mux
	root = authMW(root)
	root = middleware.Recovery(logger)(root)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"labhub/internal/auth"
	"labhub/internal/authz"
	"labhub/internal/config"
	"labhub/internal/handler"
	"labhub/internal/httputil"
	"labhub/internal/middleware"
	"labhub/internal/repository/postgres"
	"labhub/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
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

	// JWT verifier backed by the identity provider's JWKS endpoint
	verifier, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer verifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)
	taskRepo := postgres.NewTaskRepository(repoConfig)
	commentRepo := postgres.NewCommentRepository(repoConfig)

	// Ownership graph shared by all services
	graph := authz.NewGraph(projectRepo, taskRepo, commentRepo)

	// Create services
	projectService := service.NewProjectService(projectRepo, userRepo, graph, logger)
	taskService := service.NewTaskService(taskRepo, projectRepo, graph, logger)
	commentService := service.NewCommentService(commentRepo, graph, logger)
	userService := service.NewUserService(userRepo, logger)

	// Create handlers
	projectHandler := handler.NewProjectHandler(projectService, logger)
	taskHandler := handler.NewTaskHandler(taskService, logger)
	commentHandler := handler.NewCommentHandler(commentService, logger)
	userHandler := handler.NewUserHandler(userService, logger)

	resolver := auth.NewResolver(verifier, userRepo, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Project routes
	mux.HandleFunc("GET /api/projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /api/projects", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.GetProject)
	mux.HandleFunc("PUT /api/projects/{id}", projectHandler.UpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", projectHandler.DeleteProject)

	// Team membership routes
	mux.HandleFunc("POST /api/projects/{id}/team", projectHandler.AddTeamMember)
	mux.HandleFunc("DELETE /api/projects/{id}/team/{userId}", projectHandler.RemoveTeamMember)

	// Task routes
	mux.HandleFunc("GET /api/tasks", taskHandler.ListTasks)
	mux.HandleFunc("POST /api/tasks", taskHandler.CreateTask)
	mux.HandleFunc("GET /api/tasks/{id}", taskHandler.GetTask)
	mux.HandleFunc("PUT /api/tasks/{id}", taskHandler.UpdateTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", taskHandler.DeleteTask)

	// Comment routes
	mux.HandleFunc("GET /api/projects/{id}/comments", commentHandler.ListComments)
	mux.HandleFunc("POST /api/projects/{id}/comments", commentHandler.CreateComment)
	mux.HandleFunc("DELETE /api/comments/{id}", commentHandler.DeleteComment)

	// User routes
	mux.HandleFunc("GET /api/users", userHandler.ListUsers)
	mux.HandleFunc("PUT /api/users/{id}", userHandler.UpdateUser)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	h = middleware.Auth(resolver, logger)(h)
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
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"taskapi/internal/api"
	"taskapi/internal/config"
	"taskapi/internal/platform/logger"
	"taskapi/internal/platform/postgres"
	"taskapi/internal/service/auth"
	"taskapi/internal/store"
)

// application holds the fully wired dependency graph for the server.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	db          *sql.DB
	userStore   store.UserStore
	taskStore   store.TaskStore
	jwtService  auth.JWTService
	authHandler *api.AuthHandler
	taskHandler *api.TaskHandler
}

// newApplication loads configuration, sets up logging, connects to the
// database, runs migrations, and wires stores, services, and handlers.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := openDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, log); err != nil {
		closeDatabase(db, log)
		return nil, err
	}

	userStore := postgres.NewPostgresUserStore(db, log)
	taskStore := postgres.NewPostgresTaskStore(db, log)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		closeDatabase(db, log)
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BCryptCost)

	app := &application{
		config:      cfg,
		logger:      log,
		db:          db,
		userStore:   userStore,
		taskStore:   taskStore,
		jwtService:  jwtService,
		authHandler: api.NewAuthHandler(userStore, jwtService, hasher, hasher),
		taskHandler: api.NewTaskHandler(taskStore),
	}
	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
}

func closeDatabase(db *sql.DB, log *slog.Logger) {
	if err := db.Close(); err != nil {
		log.Error("failed to close database connection", "error", err)
	}
}

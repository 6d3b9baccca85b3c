// Package server wires the Recetario backend together: database, migrations,
// object storage, services and the HTTP API.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dmitrijs2005/recetario/internal/logging"
	"github.com/dmitrijs2005/recetario/internal/server/config"
	"github.com/dmitrijs2005/recetario/internal/server/pdf"
	"github.com/dmitrijs2005/recetario/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recetario/internal/server/rest"
	"github.com/dmitrijs2005/recetario/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, cfg.LogFormat(), cfg.LogLevel).With("app", "recetario-server")

	db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	s3Client, err := services.NewS3Client(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("s3 client init error: %w", err)
	}

	recipes := services.NewRecipeService(db, rm)
	cookbooks := services.NewCookbookService(db, rm)
	images := services.NewImageService(s3Client, cfg)
	renderer := pdf.NewRenderer(pdf.NewHTTPImageFetcher(pdf.ImageFetchTimeout), logger)

	svc := rest.Services{
		Users:     services.NewUserService(db, rm, cfg),
		Recipes:   recipes,
		Cookbooks: cookbooks,
		Images:    images,
		Exports:   services.NewExportService(recipes, cookbooks, renderer, images),
	}

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		server: rest.NewServer(cfg, logger, svc),
	}, nil
}

// Run blocks until ctx is cancelled or the HTTP server fails.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...", "environment", app.config.Environment)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}

func (app *App) Close() error {
	return app.db.Close()
}

package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"shopsmart/app/controller"
	"shopsmart/app/router"
	"shopsmart/catalog"
	"shopsmart/config"
	"shopsmart/db"
	"shopsmart/repository"
	"shopsmart/service"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

// CatalogSource is an opened catalog repository and the resources behind it.
type CatalogSource struct {
	Repo repository.CatalogRepositoryInterface
	// File is set for file sources, which can be watched.
	File *repository.FileCatalogRepository
	// SQL is set for SQL sources, which can be written by sync.
	SQL *repository.SQLCatalogRepository
	db   *sql.DB
}

// Close releases the database connection of SQL sources.
func (s *CatalogSource) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// OpenCatalogSource opens the repository named by ref.
func OpenCatalogSource(ctx context.Context, cfg *config.Config, ref config.CatalogSourceRef, logger *zap.Logger) (*CatalogSource, error) {
	switch ref.Kind {
	case config.SourceFile:
		file := repository.NewFileCatalogRepository(ref.Value, logger)
		return &CatalogSource{Repo: file, File: file}, nil

	case config.SourceSQL:
		conn, err := db.Open(ctx, cfg.DBDriver, cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		repo := repository.NewSQLCatalogRepository(conn, logger)
		if err := repo.EnsureSchema(ctx); err != nil {
			conn.Close()
			return nil, err
		}
		return &CatalogSource{Repo: repo, SQL: repo, db: conn}, nil

	case config.SourceDrive:
		if cfg.DriveCreds == "" {
			return nil, errors.New("GOOGLE_APPLICATION_CREDENTIALS environment variable is not set")
		}
		driveService, err := service.NewDriveService(ctx, cfg.DriveCreds, logger)
		if err != nil {
			return nil, err
		}
		return &CatalogSource{Repo: repository.NewDriveCatalogRepository(driveService, ref.Value, logger)}, nil

	default:
		return nil, fmt.Errorf("unknown catalog source kind %q", ref.Kind)
	}
}

// App is the wired storefront server.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Catalog  *catalog.Catalog
	Sessions *controller.SessionRegistry
	Handler  http.Handler
	// Watcher is nil unless the catalog is a watched file.
	Watcher  *repository.CatalogWatcher

	source *CatalogSource
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	ref, err := cfg.Source()
	if err != nil {
		return nil, err
	}
	source, err := OpenCatalogSource(ctx, cfg, ref, logger)
	if err != nil {
		return nil, err
	}

	cat, err := repository.LoadCatalog(ctx, source.Repo)
	if err != nil {
		source.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.Info("✓ Catalog loaded", zap.Int("products", cat.Len()), zap.String("source", cfg.CatalogSource))

	badges, err := service.NewBadgeRules(cfg.Badges, logger)
	if err != nil {
		source.Close()
		return nil, err
	}

	media := service.NewMediaService(cfg.MediaCacheDir, logger)
	renderer, err := service.NewRenderService(media, cfg.BaseURL, logger)
	if err != nil {
		source.Close()
		return nil, err
	}
	exporter := service.NewExportService(service.DetectChromePath(cfg.ChromePath), logger)

	sessions := controller.NewSessionRegistry(cat, badges, logger)
	sessions.SetIdleTimeout(cfg.SessionIdleTimeout)
	sessions.SetMaxSessions(cfg.MaxSessions)
	controllers := &router.Controllers{
		Storefront: controller.NewStorefrontController(sessions, renderer, media, exporter, logger),
	}

	a := &App{
		Config:   cfg,
		Logger:   logger,
		Catalog:  cat,
		Sessions: sessions,
		Handler:  router.New(controllers),
		source:   source,
	}

	if cfg.CatalogWatch {
		if source.File == nil {
			logger.Warn("⚠️  catalog.watch only applies to file catalogs, ignoring", zap.String("source", cfg.CatalogSource))
		} else {
			a.Watcher, err = repository.NewCatalogWatcher(source.File, sessions.SetCatalog, logger)
			if err != nil {
				source.Close()
				return nil, fmt.Errorf("failed to create catalog watcher: %w", err)
			}
		}
	}
	return a, nil
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr(),
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("Server starting", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.Logger.Info("Server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// Close releases the catalog source.
func (a *App) Close() error {
	return a.source.Close()
}

// Package server wires the Street Smarts server together: database and
// migrations, location seeding, the image cache, and the HTTP and gRPC
// health servers, which run until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/streetsmarts/internal/logging"
	"github.com/dmitrijs2005/streetsmarts/internal/server/config"
	"github.com/dmitrijs2005/streetsmarts/internal/server/httpapi"
	"github.com/dmitrijs2005/streetsmarts/internal/server/imagecache"
	"github.com/dmitrijs2005/streetsmarts/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/streetsmarts/internal/server/services"
	"github.com/dmitrijs2005/streetsmarts/internal/server/streetview"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/streetsmarts/internal/server/grpc"
)

// seams for tests
var (
	openDB         = sql.Open
	newRepoManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.HTTPServer
	grpcServer *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB(repomanager.DriverName, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	app, err := newApp(ctx, c, logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB) (*App, error) {
	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	if c.SeedLocations {
		if _, err := services.SeedLocations(ctx, db, rm, logger.With("module", "seed")); err != nil {
			return nil, fmt.Errorf("seed error: %w", err)
		}
	}

	store, cacheDir, err := newImageStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("image store error: %w", err)
	}

	fetcher := streetview.NewClient(streetview.Options{
		BaseURL: c.StreetViewBaseURL,
		APIKey:  c.StreetViewAPIKey,
		Size:    c.StreetViewImageSize,
		Timeout: c.ImageFetchTimeout,
	}, logger)
	cache := imagecache.New(store, fetcher, logger)

	us := services.NewUserService(db, rm, c)
	game := services.NewGameService(db, rm, cache, logger)

	return &App{
		config:     c,
		logger:     logger,
		db:         db,
		httpServer: httpapi.NewHTTPServer(c.EndpointAddrHTTP, logger, us, game, cacheDir),
		grpcServer: gs.NewGRPCServer(c.EndpointAddrGRPC, logger),
	}, nil
}

// newImageStore returns the configured store and, for the file backend,
// the directory the HTTP server should expose.
func newImageStore(ctx context.Context, c *config.Config) (imagecache.Store, string, error) {
	switch c.ImageBackend {
	case config.ImageBackendS3:
		s, err := imagecache.NewS3Store(ctx, imagecache.S3Options{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
			Bucket:       c.S3Bucket,
		})
		return s, "", err
	case config.ImageBackendFile, "":
		s, err := imagecache.NewFileStore(c.CacheDir)
		if err != nil {
			return nil, "", err
		}
		return s, s.Dir, nil
	default:
		return nil, "", fmt.Errorf("unknown image backend %q", c.ImageBackend)
	}
}

// Run serves HTTP and gRPC until ctx is cancelled, SIGINT/SIGTERM arrives,
// or either server fails. The database is closed on return.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.httpServer.Run(ctx) })
	g.Go(func() error { return app.grpcServer.Run(ctx) })

	err := g.Wait()
	app.logger.Info(ctx, "App stopped")
	return err
}

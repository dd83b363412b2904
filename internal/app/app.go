// Package app wires the configured storage backends into the vault
// controller and runs the interactive shell until input ends or the process
// is signalled.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/mediavault/internal/blobstore"
	"github.com/dmitrijs2005/mediavault/internal/cli"
	"github.com/dmitrijs2005/mediavault/internal/config"
	"github.com/dmitrijs2005/mediavault/internal/database"
	"github.com/dmitrijs2005/mediavault/internal/logging"
	"github.com/dmitrijs2005/mediavault/internal/repositories/media"
	"github.com/dmitrijs2005/mediavault/internal/repositories/settings"
	"github.com/dmitrijs2005/mediavault/internal/services"
	"github.com/dmitrijs2005/mediavault/internal/wallpaper"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	rdb    *redis.Client
	vault  services.VaultService
}

// NewApp opens the database, the settings backend and the blob store named
// by c and loads the vault from them.
func NewApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	logger := logging.New(c.LogLevel, logOut)
	app := &App{config: c, logger: logger}

	db, err := database.Open(ctx, c.DatabasePath, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.db = db

	kv, err := app.settingsRepository(ctx)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("settings init error: %w", err)
	}

	blobs, err := app.blobStore(ctx)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	vault, err := services.NewVaultService(ctx, services.Options{
		Media:           media.NewSQLiteRepository(db),
		Wallpaper:       wallpaper.NewStore(kv, logger),
		Blobs:           blobs,
		UploadDelay:     c.UploadDelay,
		FilterCacheSize: c.FilterCacheSize,
		SeedDemo:        c.SeedDemo,
		Log:             logger,
	})
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("vault init error: %w", err)
	}
	app.vault = vault

	return app, nil
}

func (app *App) settingsRepository(ctx context.Context) (settings.Repository, error) {
	switch app.config.SettingsBackend {
	case config.SettingsRedis:
		rdb, err := settings.NewRedisClient(ctx, app.config.RedisAddr)
		if err != nil {
			return nil, err
		}
		app.rdb = rdb
		return settings.NewRedisRepository(rdb, settings.DefaultRedisPrefix), nil
	case config.SettingsMemory:
		return settings.NewMemoryRepository(), nil
	default:
		return settings.NewSQLiteRepository(app.db), nil
	}
}

func (app *App) blobStore(ctx context.Context) (blobstore.Store, error) {
	if app.config.BlobBackend == config.BlobsS3 {
		return blobstore.NewS3Store(ctx, blobstore.S3Config{
			Bucket:       app.config.S3Bucket,
			Region:       app.config.S3Region,
			BaseEndpoint: app.config.S3BaseEndpoint,
			AccessKey:    app.config.S3AccessKey,
			SecretKey:    app.config.S3SecretKey,
			URLExpiry:    app.config.S3URLExpiry,
		})
	}
	return blobstore.NewLocalStore(app.config.BlobDir)
}

// Vault exposes the controller, mainly for tests.
func (app *App) Vault() services.VaultService {
	return app.vault
}

// Run starts the shell on in/out and returns when it exits or a
// termination signal arrives.
func (app *App) Run(ctx context.Context, in io.Reader, out io.Writer, prompt bool) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting vault...", "database", app.config.DatabasePath,
		"settings", app.config.SettingsBackend, "blobs", app.config.BlobBackend)

	cli.NewApp(app.vault, app.logger, in, out).WithPrompt(prompt).Run(ctx)

	app.drain(ctx)
}

// drainGrace is how long Run waits for an accepted upload beyond the
// configured upload delay.
const drainGrace = 30 * time.Second

// drain lets an upload accepted by the shell reach the library before the
// database is closed. A second signal does not cut it short.
func (app *App) drain(ctx context.Context) {
	if !app.vault.Uploading() {
		return
	}
	app.logger.Info(ctx, "waiting for upload to finish")

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.config.UploadDelay+drainGrace)
	defer cancel()

	if err := app.vault.Drain(ctx); err != nil {
		app.logger.Error(ctx, "upload did not finish before shutdown", "error", err)
	}
}

// Close releases the database and redis connections.
func (app *App) Close() {
	if app.rdb != nil {
		if err := app.rdb.Close(); err != nil {
			app.logger.Warn(context.Background(), "close redis", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Warn(context.Background(), "close database", "error", err)
		}
	}
}

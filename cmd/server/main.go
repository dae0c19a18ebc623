package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rahul4469/bizstart/internal/cache"
	"github.com/rahul4469/bizstart/internal/config"
	"github.com/rahul4469/bizstart/internal/controllers"
	"github.com/rahul4469/bizstart/internal/crypto"
	"github.com/rahul4469/bizstart/internal/logger"
	"github.com/rahul4469/bizstart/internal/market"
	"github.com/rahul4469/bizstart/internal/middleware"
	"github.com/rahul4469/bizstart/internal/models"
	"github.com/rahul4469/bizstart/internal/notify"
	"github.com/rahul4469/bizstart/internal/views"
	"github.com/rahul4469/bizstart/migrations"
	"github.com/rahul4469/bizstart/templates"
)

const shutdownTimeout = 20 * time.Second

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Options{
		ServiceName: "bizstart",
		Level:       logger.ParseLevel(cfg.Log.Level),
		Format:      cfg.Log.Format,
	})

	if err := run(cfg, log); err != nil {
		log.Error(context.Background(), "server exited", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	views.Log = log
	views.TemplateFS = templates.FS

	// Setup the Database ---------------
	db, err := models.NewDatabase(ctx, models.DefaultDatabaseConfig(cfg.Database.URL))
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info(ctx, "database connected")

	if err := db.MigrateFS(migrations.FS, "."); err != nil {
		return err
	}

	// Snapshot cache is optional; without Redis every lookup computes.
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		log.Info(ctx, "redis connected")
	} else {
		log.Warn(ctx, "redis not configured, snapshot cache disabled", nil)
	}

	cipher, err := crypto.NewFieldCipher([]byte(cfg.Security.EncryptionKey))
	if err != nil {
		return err
	}

	notifier, err := notify.New(ctx, cfg.Mail, cfg.Server.BaseURL)
	if err != nil {
		return err
	}

	// Setup Services ---------------
	deps := dependencies{
		banners:    models.NewBannerService(db.Pool),
		articles:   models.NewArticleService(db.Pool),
		inquiries:  models.NewInquiryService(db.Pool, cipher),
		franchises: models.NewFranchiseService(db.Pool),
		snapshots:  cache.NewSnapshotCache(redisClient, cfg.Cache.SnapshotTTL, log),
		generator:  market.NewGenerator(time.Now),
		notifier:   notifier,
		auth: middleware.NewAdminAuth(middleware.AdminAuthConfig{
			PasswordHash: cfg.Security.AdminPasswordHash,
			HashKey:      []byte(cfg.Security.CookieHashKey),
			CookieName:   cfg.Security.AdminCookieName,
			Duration:     cfg.Security.AdminSessionDuration,
			Secure:       cfg.Security.SecureCookies,
		}),
		health: map[string]controllers.Pinger{"postgres": db},
	}
	if redisClient != nil {
		deps.health["redis"] = controllers.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      newRouter(cfg, log, deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(log.WithFields(ctx, map[string]any{"addr": srv.Addr, "env": cfg.Server.Environment}), "server.start")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info(context.Background(), "server.shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

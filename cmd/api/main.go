package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bryanwahyu/stratiq/internal/application"
	appwizard "github.com/bryanwahyu/stratiq/internal/application/wizard"
	"github.com/bryanwahyu/stratiq/internal/config"
	"github.com/bryanwahyu/stratiq/internal/domain/analysis"
	"github.com/bryanwahyu/stratiq/internal/domain/history"
	"github.com/bryanwahyu/stratiq/internal/domain/wizard"
	"github.com/bryanwahyu/stratiq/internal/infra/ai/live"
	"github.com/bryanwahyu/stratiq/internal/infra/ai/mock"
	mysqlp "github.com/bryanwahyu/stratiq/internal/infra/db/mysql"
	pgp "github.com/bryanwahyu/stratiq/internal/infra/db/postgres"
	"github.com/bryanwahyu/stratiq/internal/infra/deck"
	"github.com/bryanwahyu/stratiq/internal/infra/httpserver"
	"github.com/bryanwahyu/stratiq/internal/infra/session"
	minioStore "github.com/bryanwahyu/stratiq/internal/infra/storage"
	"github.com/bryanwahyu/stratiq/internal/middleware"
)

// set via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "stratiq",
		Short:        "Strategy wizard API",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func serveCmd() *cobra.Command {
	var configPath string
	var debug bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			// path config.yaml
			if configPath == "" {
				configPath = "config.yaml"
				if v := os.Getenv("CONFIG_PATH"); v != "" {
					configPath = v
				}
			}
			log, err := newLogger(debug)
			if err != nil {
				return err
			}
			defer log.Sync()
			return serve(cmd.Context(), configPath, log)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to config.yaml (default $CONFIG_PATH or ./config.yaml)")
	cmd.Flags().BoolVar(&debug, "debug", false, "development logging")
	return cmd
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func serve(ctx context.Context, configPath string, log *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// secrets dulu, sebelum generator dibuat
	secretsPath := "secrets.yaml"
	if v := os.Getenv("SECRETS_PATH"); v != "" {
		secretsPath = v
	}
	exported, err := config.LoadSecrets(secretsPath)
	if err != nil {
		return fmt.Errorf("secrets load: %w", err)
	}
	if len(exported) > 0 {
		log.Info("secrets exported", zap.Strings("keys", exported))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	checks := map[string]middleware.HealthChecker{}

	// session store
	var store wizard.SessionStore
	switch cfg.Session.Backend {
	case "redis":
		rs, err := session.NewRedisStore(cfg.Session.RedisURL, cfg.Session.TTL)
		if err != nil {
			return fmt.Errorf("redis connect: %w", err)
		}
		defer rs.Close()
		store = rs
		checks["redis"] = middleware.CheckFunc(rs.Ping)
	default:
		store = session.NewMemoryStore()
	}

	// history log (optional)
	var hist history.Repository
	if cfg.Database.Driver != "" {
		db, repo, err := connectHistory(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		hist = repo
		checks["database"] = &middleware.DatabaseHealthChecker{DB: db}
	}

	// minio archive (optional)
	var archive analysis.Archive
	if cfg.Minio.Endpoint != "" {
		ms, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			return fmt.Errorf("minio init: %w", err)
		}
		ms.PresignTTL = cfg.Minio.PresignTTL
		archive = ms
		checks["minio"] = middleware.CheckFunc(ms.Ping)
	}

	clock := application.SystemClock{}
	svc := &appwizard.Service{
		Store: store,
		Selector: &appwizard.Selector{
			Live: live.Factory(ctx, live.Settings{
				Provider: cfg.AI.Provider,
				Model:    cfg.AI.Model,
				BaseURL:  cfg.AI.BaseURL,
			}, os.Getenv),
			Mock: func() analysis.Generator { return mock.New() },
			Log:  log,
		},
		Deck:      &deck.Builder{Clock: clock, ChromePath: cfg.Deck.ChromePath, Timeout: cfg.Deck.Timeout},
		Archive:   archive,
		History:   hist,
		Clock:     clock,
		Log:       log,
		AITimeout: cfg.AI.Timeout,

		SessionTTL: cfg.Session.TTL,
	}

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit.Capacity, cfg.Server.RateLimit.Refill)
	defer limiter.Stop()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr: addr,
		Handler: httpserver.NewRouter(svc, httpserver.Options{
			Log:         log,
			Version:     version,
			CORSOrigins: cfg.Server.CORSOrigins,
			RateLimiter: limiter,
			Checks:      checks,
		}),
		ReadTimeout: 15 * time.Second,
		// generation can take several provider calls
		WriteTimeout: writeTimeout(cfg.AI.Timeout),
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", addr),
			zap.String("session_backend", cfg.Session.Backend),
			zap.String("ai_provider", cfg.AI.Provider),
			zap.Bool("history", hist != nil),
			zap.Bool("archive", archive != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case <-stop:
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
	}
	log.Info("shutting down server")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Warn("shutdown error", zap.Error(err))
	}
	return nil
}

type migrator interface {
	history.Repository
	Migrate(ctx context.Context) error
}

func connectHistory(ctx context.Context, cfg *config.Config) (*sql.DB, history.Repository, error) {
	var (
		db   *sql.DB
		repo migrator
		err  error
	)
	switch cfg.Database.Driver {
	case "mysql":
		if db, err = mysqlp.Connect(ctx, cfg.DSN()); err != nil {
			return nil, nil, fmt.Errorf("mysql connect: %w", err)
		}
		repo = mysqlp.NewHistoryRepository(db)
	case "postgres":
		if db, err = pgp.Connect(ctx, cfg.DSN()); err != nil {
			return nil, nil, fmt.Errorf("postgres connect: %w", err)
		}
		repo = pgp.NewHistoryRepository(db)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err := repo.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, repo, nil
}

// minWriteTimeout applies when generation has no deadline.
const minWriteTimeout = 10 * time.Minute

// writeTimeout leaves room for the longest analysis run a request can trigger.
func writeTimeout(aiTimeout time.Duration) time.Duration {
	budget := appwizard.GenerationBudget(aiTimeout, analysis.MaxFrameworks)
	if budget <= 0 {
		return minWriteTimeout
	}
	return budget + 15*time.Second
}

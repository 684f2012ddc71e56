// Copyright (c) 2026 ScoreHub. All rights reserved.

// Command api is the entry point for the ScoreHub HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scorehub/scorehub/internal/api"
	"github.com/scorehub/scorehub/internal/core/category"
	"github.com/scorehub/scorehub/internal/core/genre"
	"github.com/scorehub/scorehub/internal/core/title"
	"github.com/scorehub/scorehub/internal/platform/config"
	"github.com/scorehub/scorehub/internal/platform/constants"
	"github.com/scorehub/scorehub/internal/platform/mail"
	"github.com/scorehub/scorehub/internal/platform/migration"
	pgstore "github.com/scorehub/scorehub/internal/platform/postgres"
	redisstore "github.com/scorehub/scorehub/internal/platform/redis"
	"github.com/scorehub/scorehub/internal/platform/sec"
	"github.com/scorehub/scorehub/internal/social/comment"
	"github.com/scorehub/scorehub/internal/social/review"
	"github.com/scorehub/scorehub/internal/users/account"
	"github.com/scorehub/scorehub/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "scorehub"))
	slog.SetDefault(log)

	log.Info("[ScoreHub] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "scorehub"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Application context, cancelled on shutdown. Background workers such as
	// the rate limiter cleanup loop hang off this one.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security Services ──────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	codeGenerator := sec.NewCodeGenerator(cfg.SecretKey)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Mail Transport ─────────────────────────────────────────────────
	var mailer mail.Mailer
	if cfg.SMTPAddr != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPAddr, cfg.FromEmail)
	} else {
		log.Warn("smtp_not_configured_using_log_mailer")
		mailer = mail.NewLogMailer(log)
	}

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewPostgresUserRepository(pool)
	sessionRepository := auth.NewRedisSessionRepository(rdb)
	resendThrottle := auth.NewRedisResendThrottle(rdb)
	authService := auth.NewService(userRepository, sessionRepository, resendThrottle, codeGenerator, jwtSvc, mailer, log)
	authHandler := auth.NewHandler(authService)

	accountService := account.NewService(account.NewPostgresRepository(pool), log)
	accountHandler := account.NewHandler(accountService)

	categoryService := category.NewService(category.NewPostgresRepository(pool), log)
	categoryHandler := category.NewHandler(categoryService)

	genreService := genre.NewService(genre.NewPostgresRepository(pool), log)
	genreHandler := genre.NewHandler(genreService)

	titleService := title.NewService(title.NewPostgresRepository(pool), log)
	titleHandler := title.NewHandler(titleService)

	reviewService := review.NewService(review.NewPostgresRepository(pool), log)
	reviewHandler := review.NewHandler(reviewService)

	commentService := comment.NewService(comment.NewPostgresRepository(pool), log)
	commentHandler := comment.NewHandler(commentService)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Account:   accountHandler,
		Category:  categoryHandler,
		Genre:     genreHandler,
		Title:     titleHandler,
		Review:    reviewHandler,
		Comment:   commentHandler,
	}

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}

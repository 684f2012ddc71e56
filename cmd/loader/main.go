// Copyright (c) 2026 ScoreHub. All rights reserved.

// Command loader seeds the database from CSV files.
//
// It runs migrations first, then imports the files from IMPORT_PATH in FK
// dependency order. Reference data may be re-imported safely; reviews and
// comments are insert-only.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/scorehub/scorehub/internal/load"
	"github.com/scorehub/scorehub/internal/platform/config"
	"github.com/scorehub/scorehub/internal/platform/migration"
	pgstore "github.com/scorehub/scorehub/internal/platform/postgres"
)

// runTimeout bounds the whole import; large seeds should still finish well
// inside this.
const runTimeout = 10 * time.Minute

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", "scorehub-loader"))
	slog.SetDefault(log)

	cfg, err := config.Load()
	must(log, err, "load configuration")

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	loader := load.New(pool, cfg.ImportPath, log)
	must(log, loader.Run(ctx), "run import")

	log.Info("import finished", slog.String("dir", cfg.ImportPath))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("loader failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}

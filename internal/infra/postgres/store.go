package postgres

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	migrate "github.com/rubenv/sql-migrate"

	"studentenfutter/internal/domain"
	"studentenfutter/internal/infra"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func Migrations() *migrate.EmbedFileSystemMigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}
}

// Store keeps a write-only history of handled requests.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to url, retrying while the database comes up, and applies
// pending migrations.
func Open(ctx context.Context, url string, logger *slog.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}

	err = infra.WithRetry(ctx, infra.DialRetryConfig(logRetry(logger)), func() error {
		return pool.Ping(ctx)
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	n, err := migrate.ExecContext(ctx, sqlDB, "postgres", Migrations(), migrate.Up)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrating: %w", err)
	}
	logger.Info("database ready", "migrations_applied", n)

	return &Store{pool: pool}, nil
}

func (s *Store) Record(ctx context.Context, inv domain.Invocation) error {
	var errText *string
	if inv.Error != "" {
		errText = &inv.Error
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO invocations (request_id, locale, request, outcome, dish_count, error, handled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		inv.RequestID, inv.Locale, inv.Name, string(inv.Outcome), inv.DishCount, errText, inv.HandledAt,
	)
	if err != nil {
		return fmt.Errorf("inserting invocation: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

func logRetry(logger *slog.Logger) func(int, time.Duration, error) {
	return func(attempt int, delay time.Duration, err error) {
		logger.Warn("postgres not reachable yet", "attempt", attempt, "retry_in", delay, "error", err)
	}
}

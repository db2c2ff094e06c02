package server

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/philly/quillpost/internal/adapters/postgres"
	"github.com/philly/quillpost/internal/platform/logger"
)

const (
	dbConnectAttempts = 5
	dbConnectBackoff  = time.Second
)

// OpenPostgres connects to DATABASE_URL, waits for the server to answer and
// applies pending migrations. Callers own the returned cleanup.
func OpenPostgres(ctx context.Context, config Config, log logger.Logger) (*pgxpool.Pool, func(), error) {
	log.Info(ctx, "connecting to postgres")

	poolConfig, err := pgxpool.ParseConfig(config.DatabaseURL)
	if err != nil {
		log.Error(ctx, "failed to parse database URL", "error", err)
		return nil, nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = config.DBMaxConns
	poolConfig.MinConns = min(2, config.DBMaxConns)
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	log.Debug(ctx, "postgres pool configuration",
		"max_conns", poolConfig.MaxConns,
		"min_conns", poolConfig.MinConns,
	)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error(ctx, "failed to create connection pool", "error", err)
		return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := waitForPostgres(ctx, pool, log); err != nil {
		pool.Close()
		return nil, nil, err
	}

	if err := postgres.Migrate(ctx, pool, log); err != nil {
		pool.Close()
		return nil, nil, err
	}

	cleanup := func() {
		log.Info(context.Background(), "closing postgres pool")
		pool.Close()
	}
	return pool, cleanup, nil
}

// waitForPostgres pings until the server accepts connections. A freshly
// started container usually refuses the first few attempts.
func waitForPostgres(ctx context.Context, pool *pgxpool.Pool, log logger.Logger) error {
	var err error
	for attempt := 1; attempt <= dbConnectAttempts; attempt++ {
		if err = pool.Ping(ctx); err == nil {
			log.Info(ctx, "postgres connection established", "attempt", attempt)
			return nil
		}
		log.Warn(ctx, "postgres not ready", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dbConnectBackoff * time.Duration(attempt)):
		}
	}
	log.Error(ctx, "giving up on postgres", "error", err)
	return fmt.Errorf("failed to ping database: %w", err)
}

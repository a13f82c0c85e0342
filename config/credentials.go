package config

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BootCredentialsPool opens the pgx pool backing the credentials store.
// It shares the DSN with the applicant store but keeps its own pool so the
// login path never contends with bulk report reads.
func BootCredentialsPool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create credentials pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping credentials pool: %w", err)
	}

	return pool, nil
}

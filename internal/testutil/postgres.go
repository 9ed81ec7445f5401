package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// SetupPostgresContainer returns a pool on an empty database; callers apply migrations.
func SetupPostgresContainer(ctx context.Context, t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()
	defer skipOnPanic(t, "postgres")

	container, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("coach"),
		postgrescontainer.WithUsername("coach"),
		postgrescontainer.WithPassword("coach"),
		postgrescontainer.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("failed to start postgres container: %v", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Skipf("failed to get postgres connection string: %v", err)
	}

	pool, err := waitForDatabase(ctx, connStr)
	if err != nil {
		t.Skipf("postgres never became ready: %v", err)
	}

	cleanup := func() {
		pool.Close()

		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	}

	return pool, cleanup
}

func waitForDatabase(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				return pool, nil
			}
			pool.Close()
		}
		if time.Now().After(deadline) {
			return nil, err
		}
		time.Sleep(time.Second)
	}
}

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chriscconte/cycling-coach/internal/testutil"
)

func TestRunLockExcludesConcurrentHolders(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	lock := NewRunLock(client)

	token, ok, err := lock.Acquire(ctx, "check-training", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || token == "" {
		t.Fatal("expected first acquire to succeed")
	}

	_, ok, err = lock.Acquire(ctx, "check-training", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected second acquire to fail while held")
	}

	_, ok, err = lock.Acquire(ctx, "detect-conflicts", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected a different job to acquire its own lock")
	}

	if err := lock.Release(ctx, "check-training", "not-the-token"); !errors.Is(err, ErrLockNotHeld) {
		t.Errorf("expected ErrLockNotHeld for foreign token, got %v", err)
	}

	if err := lock.Release(ctx, "check-training", token); err != nil {
		t.Fatalf("unexpected release error: %v", err)
	}

	_, ok, err = lock.Acquire(ctx, "check-training", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected acquire after release to succeed")
	}
}

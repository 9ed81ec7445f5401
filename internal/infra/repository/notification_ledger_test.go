package repository

import (
	"context"
	"testing"
	"time"

	"github.com/chriscconte/cycling-coach/internal/domain"
	"github.com/chriscconte/cycling-coach/internal/testutil"
)

func TestNotificationLedgerMarkRequested(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	ledger := NewNotificationLedger(client)

	req := &domain.NotificationRequest{
		ID:        "7b0f5e0c-2c1d-5a8e-9f3b-1d2e3f4a5b6c",
		Kind:      domain.NotificationMissedWorkout,
		OwnerID:   "user-1",
		SubjectID: "session-1",
		TriggerAt: time.Date(2025, 3, 4, 20, 0, 0, 0, time.UTC),
	}

	requested, err := ledger.IsRequested(ctx, req.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requested {
		t.Fatal("expected request to be absent")
	}

	first, err := ledger.MarkRequested(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first {
		t.Error("expected first mark to record the request")
	}

	second, err := ledger.MarkRequested(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second {
		t.Error("expected second mark to report already recorded")
	}

	requested, err = ledger.IsRequested(ctx, req.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !requested {
		t.Error("expected request to be recorded")
	}

	ttl, err := client.TTL(ctx, requestedKeyPrefix+req.ID).Result()
	if err != nil {
		t.Fatalf("failed to read ttl: %v", err)
	}
	if ttl <= 7*24*time.Hour || ttl > requestedTTL {
		t.Errorf("unexpected ttl %v", ttl)
	}
}

func TestNotificationLedgerRejectsInvalidRequest(t *testing.T) {
	ledger := NewNotificationLedger(nil)

	tests := []struct {
		name string
		req  *domain.NotificationRequest
	}{
		{"nil request", nil},
		{"missing id", &domain.NotificationRequest{Kind: domain.NotificationPreWorkout}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ledger.MarkRequested(context.Background(), tt.req); err != ErrInvalidRequestData {
				t.Errorf("expected ErrInvalidRequestData, got %v", err)
			}
		})
	}
}

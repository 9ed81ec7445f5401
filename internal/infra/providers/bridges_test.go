//go:build !gcloud

package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

func TestHealthBridgeFetchWorkouts(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"workouts":[{"id":"hk-1","start":"2025-03-04T18:02:00Z","end":"2025-03-04T19:00:00Z","distance_m":28000,"avg_hr":150.5,"avg_power":210}]}`))
	}))
	defer server.Close()

	client := NewHealthBridgeClient(server.URL, time.Second)
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	workouts, err := client.FetchWorkouts(context.Background(), "user-1", start, start.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/v1/owners/user-1/workouts" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if len(workouts) != 1 {
		t.Fatalf("expected 1 workout, got %d", len(workouts))
	}
	w := workouts[0]
	if w.ID != "hk-1" || w.End.Sub(w.Start) != 58*time.Minute {
		t.Errorf("unexpected workout %+v", w)
	}
	if w.MaxHeartRate != nil {
		t.Error("expected absent max heart rate to stay nil")
	}
}

func TestCalendarBridgeFetchEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events":[{"id":"ev-1","title":"Dentist","start":"2025-03-04T17:00:00Z","end":"2025-03-04T18:30:00Z","location":"Main St"}]}`))
	}))
	defer server.Close()

	client := NewCalendarBridgeClient(server.URL, time.Second)
	events, err := client.FetchEvents(context.Background(), "user-1", time.Now(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Dentist" || events[0].Location != "Main St" || events[0].AllDay {
		t.Errorf("unexpected events %+v", events)
	}
}

func TestBridgeUnauthorizedIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewCalendarBridgeClient(server.URL, time.Second).FetchEvents(context.Background(), "user-1", time.Now(), time.Now())
	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Errorf("expected provider unavailable, got %v", err)
	}
	if errors.Is(err, domain.ErrAuthenticationFailure) {
		t.Error("calendar authorization failures must not be reported as credential failures")
	}
}

func TestBridgeNotConfigured(t *testing.T) {
	_, err := NewHealthBridgeClient("", time.Second).FetchWorkouts(context.Background(), "user-1", time.Now(), time.Now())
	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Errorf("expected provider unavailable, got %v", err)
	}
}

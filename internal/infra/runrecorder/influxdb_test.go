//go:build !gcloud

package runrecorder

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

func TestNewRecorderFallsBackToNoop(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"disabled", &Config{Disabled: true, InfluxDBToken: "t", InfluxDBOrg: "o"}},
		{"missing token", &Config{InfluxDBOrg: "o"}},
		{"missing org", &Config{InfluxDBToken: "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, err := NewRecorder(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := recorder.(*noopRecorder); !ok {
				t.Errorf("expected noop recorder, got %T", recorder)
			}
		})
	}
}

func TestInfluxDBRecordRun(t *testing.T) {
	var mu sync.Mutex
	var body string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/write" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		body = string(raw)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	recorder, err := NewRecorder(context.Background(), &Config{
		InfluxDBURL:    server.URL,
		InfluxDBToken:  "token",
		InfluxDBOrg:    "coach",
		InfluxDBBucket: "runs",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer recorder.Close()

	err = recorder.RecordRun(context.Background(), []domain.RunRecord{{
		RunID:     "run-1",
		Job:       "check-training",
		OwnerID:   "user-1",
		StartedAt: time.Date(2025, 3, 4, 18, 0, 0, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
		Inserted:  2,
		Updated:   1,
		Success:   true,
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()

	for _, fragment := range []string{"owner_run,", "job=check-training", "owner_id=user-1", "success=true", "inserted=2i", "duration_ms=1500i"} {
		if !strings.Contains(body, fragment) {
			t.Errorf("expected line protocol to contain %q, got %q", fragment, body)
		}
	}
}

func TestInfluxDBWriteFailureIsSoft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	recorder, err := NewRecorder(context.Background(), &Config{
		InfluxDBURL:    server.URL,
		InfluxDBToken:  "token",
		InfluxDBOrg:    "coach",
		InfluxDBBucket: "runs",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer recorder.Close()

	if err := recorder.RecordRun(context.Background(), []domain.RunRecord{{RunID: "run-1", Job: "detect-conflicts"}}); err != nil {
		t.Errorf("expected write failure to be swallowed, got %v", err)
	}
}

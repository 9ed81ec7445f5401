package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestHandlerAddsContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(Config{
		Service:       ServiceInfo{Name: "coach", Version: "v1"},
		Environment:   EnvDev,
		DefaultModule: Module("orchestrator"),
		Level:         slog.LevelInfo,
		Output:        &buf,
	}))

	ctx := WithRequestID(context.Background(), "req-123")
	ctx = WithOwnerID(ctx, "user-1")
	logger.InfoContext(ctx, "run finished", slog.Int("inserted", 2))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log entry: %v", err)
	}

	expected := map[string]string{
		"service":     "coach",
		"version":     "v1",
		"environment": "dev",
		"module":      "orchestrator",
		"request_id":  "req-123",
		"owner_id":    "user-1",
	}
	for key, want := range expected {
		if got, _ := entry[key].(string); got != want {
			t.Errorf("expected %s=%q, got %q", key, want, got)
		}
	}
}

func TestHandlerModuleOverride(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(Config{DefaultModule: Module("default"), Output: &buf}))

	logger.InfoContext(WithModule(context.Background(), Module("postgres")), "connected")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log entry: %v", err)
	}
	if entry["module"] != "postgres" {
		t.Errorf("expected module override, got %v", entry["module"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

package taskqueue

import (
	"testing"
	"time"
)

func TestJobTaskName(t *testing.T) {
	at := time.Date(2025, 3, 4, 18, 0, 0, 0, time.FixedZone("UTC+2", 2*60*60))

	tests := []struct {
		job      string
		expected string
	}{
		{"check-training", "check-training-20250304T160000Z"},
		{"detect_conflicts", "detect-conflicts-20250304T160000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.job, func(t *testing.T) {
			if got := JobTaskName(tt.job, at); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}

	if JobTaskName("check-training", at) == JobTaskName("check-training", at.Add(4*time.Hour)) {
		t.Error("expected different instants to produce different names")
	}
}

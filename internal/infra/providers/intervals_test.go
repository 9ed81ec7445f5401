package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

const eventsBody = `[
	{"id": 4211, "start_date_local": "2025-03-04T18:00:00", "name": "Tempo Intervals", "type": "Ride", "moving_time": 3600, "distance": 30000, "icu_training_load": 72.4},
	{"id": 4212, "start_date_local": "", "name": "Broken", "type": "Ride"}
]`

const activitiesBody = `[
	{"id": "i987", "start_date_local": "2025-03-04T18:05:00", "name": "Evening Ride", "type": "VirtualRide",
	 "moving_time": 3540, "distance": 29500.5, "average_heartrate": 148, "max_heartrate": 176,
	 "average_watts": 221.6, "weighted_average_watts": 235, "icu_training_load": 70, "perceived_exertion": 7}
]`

func TestIntervalsFetchPlannedEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var gotAuth, gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(eventsBody))
	}))
	defer server.Close()

	secrets := domain.NewMockSecretStore(ctrl)
	secrets.EXPECT().Get(gomock.Any(), "intervals_icu.token.user-1").Return("tok-123", true, nil)

	loc := time.FixedZone("UTC-5", -5*60*60)
	ctx := domain.WithLocation(context.Background(), loc)

	client := NewIntervalsClient(server.URL, secrets, time.Second)
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	events, err := client.FetchPlannedEvents(ctx, "user-1", "i42", start, start.AddDate(0, 0, 14))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected bearer credential, got %q", gotAuth)
	}
	if gotPath != "/athlete/i42/events" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if gotQuery != "newest=2025-03-15&oldest=2025-03-01" {
		t.Errorf("unexpected query %s", gotQuery)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	first := events[0]
	if first.ID != "4211" {
		t.Errorf("expected numeric id to be read as string, got %s", first.ID)
	}
	if !first.Start.Equal(time.Date(2025, 3, 4, 18, 0, 0, 0, loc)) {
		t.Errorf("expected start in owner timezone, got %v", first.Start)
	}
	if first.MovingTimeSeconds == nil || *first.MovingTimeSeconds != 3600 {
		t.Errorf("unexpected moving time %v", first.MovingTimeSeconds)
	}
	if first.Load == nil || *first.Load != 72 {
		t.Errorf("unexpected load %v", first.Load)
	}
	if !events[1].Start.IsZero() {
		t.Error("expected missing start to stay zero")
	}
}

func TestIntervalsFetchActivities(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(activitiesBody))
	}))
	defer server.Close()

	secrets := domain.NewMockSecretStore(ctrl)
	secrets.EXPECT().Get(gomock.Any(), gomock.Any()).Return("tok-123", true, nil)

	client := NewIntervalsClient(server.URL, secrets, time.Second)
	now := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	activities, err := client.FetchActivities(context.Background(), "user-1", "i42", now.AddDate(0, 0, -30), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(activities))
	}

	a := activities[0]
	if a.ID != "i987" || a.Type != "VirtualRide" {
		t.Errorf("unexpected activity %+v", a)
	}
	if a.AvgWatts == nil || *a.AvgWatts != 222 {
		t.Errorf("expected rounded average watts, got %v", a.AvgWatts)
	}
	if a.PerceivedExertion == nil || *a.PerceivedExertion != 7 {
		t.Errorf("unexpected perceived exertion %v", a.PerceivedExertion)
	}
	if a.DistanceMeters == nil || *a.DistanceMeters != 29500.5 {
		t.Errorf("unexpected distance %v", a.DistanceMeters)
	}
}

func TestIntervalsErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected error
	}{
		{"unauthorized", http.StatusUnauthorized, domain.ErrAuthenticationFailure},
		{"forbidden", http.StatusForbidden, domain.ErrAuthenticationFailure},
		{"server error", http.StatusInternalServerError, domain.ErrProviderUnavailable},
		{"rate limited", http.StatusTooManyRequests, domain.ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			secrets := domain.NewMockSecretStore(ctrl)
			secrets.EXPECT().Get(gomock.Any(), gomock.Any()).Return("tok-123", true, nil)

			client := NewIntervalsClient(server.URL, secrets, time.Second)
			_, err := client.FetchActivities(context.Background(), "user-1", "i42", time.Now(), time.Now())
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestIntervalsMissingCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	secrets := domain.NewMockSecretStore(ctrl)
	secrets.EXPECT().Get(gomock.Any(), "intervals_icu.token.user-1").Return("", false, nil)

	client := NewIntervalsClient("http://127.0.0.1:1", secrets, time.Second)
	_, err := client.FetchPlannedEvents(context.Background(), "user-1", "i42", time.Now(), time.Now())
	if !errors.Is(err, domain.ErrAuthenticationFailure) {
		t.Errorf("expected authentication failure, got %v", err)
	}
}

func TestIntervalsUnreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	secrets := domain.NewMockSecretStore(ctrl)
	secrets.EXPECT().Get(gomock.Any(), gomock.Any()).Return("tok-123", true, nil)

	client := NewIntervalsClient(baseURL, secrets, time.Second)
	_, err := client.FetchPlannedEvents(context.Background(), "user-1", "i42", time.Now(), time.Now())
	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Errorf("expected provider unavailable, got %v", err)
	}
}

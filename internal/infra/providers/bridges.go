package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

const (
	healthProvider   = "health_bridge"
	calendarProvider = "calendar_bridge"
)

type bridgeWorkout struct {
	ID        string    `json:"id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	DistanceM *float64  `json:"distance_m"`
	AvgHR     *float64  `json:"avg_hr"`
	MaxHR     *float64  `json:"max_hr"`
	AvgPower  *float64  `json:"avg_power"`
}

type bridgeEvent struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	AllDay   bool      `json:"all_day"`
	Location string    `json:"location"`
}

// bridgeClient talks to the device-side bridge services that relay health store
// and calendar data. A missing authorization on the device surfaces as 401/403.
type bridgeClient struct {
	baseURL    string
	httpClient *http.Client
}

func newBridgeClient(baseURL string, timeout time.Duration) bridgeClient {
	return bridgeClient{
		baseURL:    baseURL,
		httpClient: newBridgeHTTPClient(baseURL, timeout),
	}
}

func (c bridgeClient) get(ctx context.Context, provider, ownerID, resource string, start, end time.Time, out any) error {
	if c.baseURL == "" {
		return fmt.Errorf("%w: %s: %w", domain.ErrProviderUnavailable, provider, errNotConfigured)
	}

	q := url.Values{}
	q.Set("start", start.UTC().Format(time.RFC3339))
	q.Set("end", end.UTC().Format(time.RFC3339))
	target := fmt.Sprintf("%s/api/v1/owners/%s/%s?%s", c.baseURL, url.PathEscape(ownerID), resource, q.Encode())

	return getJSON(ctx, c.httpClient, provider, target, nil, nil, out)
}

type HealthBridgeClient struct {
	bridge bridgeClient
}

func NewHealthBridgeClient(baseURL string, timeout time.Duration) *HealthBridgeClient {
	return &HealthBridgeClient{bridge: newBridgeClient(baseURL, timeout)}
}

func (c *HealthBridgeClient) FetchWorkouts(ctx context.Context, ownerID string, start, end time.Time) ([]domain.Workout, error) {
	var resp struct {
		Workouts []bridgeWorkout `json:"workouts"`
	}
	if err := c.bridge.get(ctx, healthProvider, ownerID, "workouts", start, end, &resp); err != nil {
		return nil, err
	}

	out := make([]domain.Workout, 0, len(resp.Workouts))
	for _, w := range resp.Workouts {
		out = append(out, domain.Workout{
			ID:             w.ID,
			Start:          w.Start,
			End:            w.End,
			DistanceMeters: w.DistanceM,
			AvgHeartRate:   w.AvgHR,
			MaxHeartRate:   w.MaxHR,
			AvgPowerWatts:  w.AvgPower,
		})
	}

	return out, nil
}

type CalendarBridgeClient struct {
	bridge bridgeClient
}

func NewCalendarBridgeClient(baseURL string, timeout time.Duration) *CalendarBridgeClient {
	return &CalendarBridgeClient{bridge: newBridgeClient(baseURL, timeout)}
}

func (c *CalendarBridgeClient) FetchEvents(ctx context.Context, ownerID string, start, end time.Time) ([]domain.CalendarEvent, error) {
	var resp struct {
		Events []bridgeEvent `json:"events"`
	}
	if err := c.bridge.get(ctx, calendarProvider, ownerID, "events", start, end, &resp); err != nil {
		return nil, err
	}

	out := make([]domain.CalendarEvent, 0, len(resp.Events))
	for _, e := range resp.Events {
		out = append(out, domain.CalendarEvent{
			ID:       e.ID,
			Title:    e.Title,
			Start:    e.Start,
			End:      e.End,
			AllDay:   e.AllDay,
			Location: e.Location,
		})
	}

	return out, nil
}

var (
	_ domain.TrainingPlatform = (*IntervalsClient)(nil)
	_ domain.WorkoutProvider  = (*HealthBridgeClient)(nil)
	_ domain.CalendarProvider = (*CalendarBridgeClient)(nil)
)

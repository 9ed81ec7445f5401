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
	DefaultIntervalsBaseURL = "https://intervals.icu/api/v1"

	intervalsProvider  = "intervals_icu"
	intervalsLocalTime = "2006-01-02T15:04:05"
)

type intervalsEvent struct {
	ID             flexibleID `json:"id"`
	StartDateLocal string     `json:"start_date_local"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Type           string     `json:"type"`
	MovingTime     *float64   `json:"moving_time"`
	Distance       *float64   `json:"distance"`
	TrainingLoad   *float64   `json:"icu_training_load"`
}

type intervalsActivity struct {
	ID                   flexibleID `json:"id"`
	StartDateLocal       string     `json:"start_date_local"`
	Name                 string     `json:"name"`
	Type                 string     `json:"type"`
	MovingTime           *float64   `json:"moving_time"`
	Distance             *float64   `json:"distance"`
	AverageHeartRate     *float64   `json:"average_heartrate"`
	MaxHeartRate         *float64   `json:"max_heartrate"`
	AverageWatts         *float64   `json:"average_watts"`
	WeightedAverageWatts *float64   `json:"weighted_average_watts"`
	TrainingLoad         *float64   `json:"icu_training_load"`
	PerceivedExertion    *float64   `json:"perceived_exertion"`
}

// IntervalsClient reads the owner's intervals.icu calendar and activity history.
// The bearer token is looked up per call and never logged.
type IntervalsClient struct {
	baseURL    string
	httpClient *http.Client
	secrets    domain.SecretStore
}

func NewIntervalsClient(baseURL string, secrets domain.SecretStore, timeout time.Duration) *IntervalsClient {
	if baseURL == "" {
		baseURL = DefaultIntervalsBaseURL
	}
	return &IntervalsClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		secrets: secrets,
	}
}

func (c *IntervalsClient) FetchPlannedEvents(ctx context.Context, ownerID, athleteID string, start, end time.Time) ([]domain.PlannedEvent, error) {
	var events []intervalsEvent
	if err := c.get(ctx, ownerID, athleteID, "events", start, end, &events); err != nil {
		return nil, err
	}

	loc := domain.LocationFromContext(ctx)
	out := make([]domain.PlannedEvent, 0, len(events))
	for _, e := range events {
		out = append(out, domain.PlannedEvent{
			ID:                string(e.ID),
			Start:             parseLocal(e.StartDateLocal, loc),
			Name:              e.Name,
			Description:       e.Description,
			Type:              e.Type,
			MovingTimeSeconds: roundedInt(e.MovingTime),
			DistanceMeters:    e.Distance,
			Load:              roundedInt(e.TrainingLoad),
		})
	}

	return out, nil
}

func (c *IntervalsClient) FetchActivities(ctx context.Context, ownerID, athleteID string, start, end time.Time) ([]domain.Activity, error) {
	var activities []intervalsActivity
	if err := c.get(ctx, ownerID, athleteID, "activities", start, end, &activities); err != nil {
		return nil, err
	}

	loc := domain.LocationFromContext(ctx)
	out := make([]domain.Activity, 0, len(activities))
	for _, a := range activities {
		out = append(out, domain.Activity{
			ID:                string(a.ID),
			Start:             parseLocal(a.StartDateLocal, loc),
			Name:              a.Name,
			Type:              a.Type,
			MovingTimeSeconds: roundedInt(a.MovingTime),
			DistanceMeters:    a.Distance,
			AvgHeartRate:      roundedInt(a.AverageHeartRate),
			MaxHeartRate:      roundedInt(a.MaxHeartRate),
			AvgWatts:          roundedInt(a.AverageWatts),
			WeightedAvgWatts:  roundedInt(a.WeightedAverageWatts),
			Load:              roundedInt(a.TrainingLoad),
			PerceivedExertion: roundedInt(a.PerceivedExertion),
		})
	}

	return out, nil
}

func (c *IntervalsClient) get(ctx context.Context, ownerID, athleteID, resource string, start, end time.Time, out any) error {
	if athleteID == "" {
		return fmt.Errorf("%w: no athlete id linked for owner %s", domain.ErrAuthenticationFailure, ownerID)
	}

	token, ok, err := c.secrets.Get(ctx, domain.PlatformCredentialName(ownerID))
	if err != nil {
		return fmt.Errorf("%w: failed to read platform credential: %v", domain.ErrProviderUnavailable, err)
	}
	if !ok || token == "" {
		return fmt.Errorf("%w: no platform credential for owner %s", domain.ErrAuthenticationFailure, ownerID)
	}

	q := url.Values{}
	q.Set("oldest", formatDate(start))
	q.Set("newest", formatDate(end))
	target := fmt.Sprintf("%s/athlete/%s/%s?%s", c.baseURL, url.PathEscape(athleteID), resource, q.Encode())

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	return getJSON(ctx, c.httpClient, intervalsProvider, target, header, classifyIntervalsStatus, out)
}

func classifyIntervalsStatus(status int) error {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return domain.ErrAuthenticationFailure
	}
	return nil
}

// parseLocal reads a zone-less timestamp in loc, falling back to RFC3339.
// Unparseable values yield the zero time so normalization drops the record.
func parseLocal(value string, loc *time.Location) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.ParseInLocation(intervalsLocalTime, value, loc); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc)
	}
	return time.Time{}
}

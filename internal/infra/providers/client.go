package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/chriscconte/cycling-coach/internal/domain"
	"github.com/chriscconte/cycling-coach/internal/observability/logging"
	"github.com/chriscconte/cycling-coach/internal/observability/tracing"
)

const maxErrorBody = 512

// statusError carries a non-2xx provider response.
type statusError struct {
	provider string
	status   int
	body     string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s responded with status %d: %s", e.provider, e.status, e.body)
}

// getJSON issues a GET and decodes a 2xx body into out. Transport failures and
// unexpected statuses are wrapped with domain.ErrProviderUnavailable unless
// classify maps the status to something more specific.
func getJSON(ctx context.Context, client *http.Client, provider, target string, header http.Header, classify func(int) error, out any) error {
	ctx, span := tracing.StartExternalAPISpan(ctx, provider+".get", target)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(logging.RequestIDHeader, requestID)
	}
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := client.Do(req)
	if err != nil {
		span.RecordError(err)
		slog.WarnContext(ctx, "provider request failed",
			slog.String("provider", provider),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %s: %v", domain.ErrProviderUnavailable, provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &statusError{provider: provider, status: resp.StatusCode, body: strings.TrimSpace(string(body))}
		span.RecordError(statusErr)

		slog.WarnContext(ctx, "unexpected status code from provider",
			slog.String("provider", provider),
			slog.Int("status_code", resp.StatusCode),
		)

		if classify != nil {
			if sentinel := classify(resp.StatusCode); sentinel != nil {
				return fmt.Errorf("%w: %w", sentinel, statusErr)
			}
		}
		return fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, statusErr)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: failed to decode response: %v", domain.ErrProviderUnavailable, provider, err)
	}

	return nil
}

// flexibleID accepts identifiers encoded either as JSON strings or numbers.
type flexibleID string

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = flexibleID(n.String())
	return nil
}

func roundedInt(v *float64) *int {
	if v == nil {
		return nil
	}
	n := int(*v + 0.5)
	return &n
}

var errNotConfigured = errors.New("provider base url is not configured")

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

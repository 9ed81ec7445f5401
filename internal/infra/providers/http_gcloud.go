//go:build gcloud

package providers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/api/idtoken"
)

// newBridgeHTTPClient creates an HTTP client with GCP ID token authentication.
func newBridgeHTTPClient(audience string, timeout time.Duration) *http.Client {
	httpClient, err := idtoken.NewClient(context.Background(), audience)
	if err != nil {
		slog.Error("failed to create idtoken client, falling back to unauthenticated client",
			slog.String("error", err.Error()),
		)
		return &http.Client{
			Timeout: timeout,
		}
	}
	httpClient.Timeout = timeout
	return httpClient
}

//go:build !gcloud

package providers

import (
	"net/http"
	"time"
)

// newBridgeHTTPClient creates a plain HTTP client for local development.
func newBridgeHTTPClient(_ string, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}

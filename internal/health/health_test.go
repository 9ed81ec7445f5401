package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/grpchealth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestReadyHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantHealth Status
	}{
		{"postgres reachable", nil, http.StatusOK, StatusHealthy},
		{"postgres down", errors.New("connection refused"), http.StatusServiceUnavailable, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker(nil, pingerFunc(func(context.Context) error { return tt.pingErr }), "test")

			r := gin.New()
			r.GET("/health/ready", checker.ReadyHandler())

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
			require.Equal(t, tt.wantStatus, rec.Code)

			var body HealthStatus
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tt.wantHealth, body.Status)
			require.Equal(t, "test", body.Version)
			require.Equal(t, tt.wantHealth, body.Checks["postgres"].Status)
		})
	}
}

func TestGRPCChecker(t *testing.T) {
	healthy := NewChecker(nil, pingerFunc(func(context.Context) error { return nil }), "test")
	resp, err := healthy.GRPCChecker().Check(context.Background(), &grpchealth.CheckRequest{})
	require.NoError(t, err)
	require.Equal(t, grpchealth.StatusServing, resp.Status)

	down := NewChecker(nil, pingerFunc(func(context.Context) error { return errors.New("down") }), "test")
	resp, err = down.GRPCChecker().Check(context.Background(), &grpchealth.CheckRequest{})
	require.NoError(t, err)
	require.Equal(t, grpchealth.StatusNotServing, resp.Status)
}

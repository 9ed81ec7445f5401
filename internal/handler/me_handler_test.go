package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/chriscconte/cycling-coach/internal/auth"
	"github.com/chriscconte/cycling-coach/internal/domain"
	"github.com/chriscconte/cycling-coach/internal/service/training"
)

var (
	authConfig = auth.Config{Secret: "handler-secret", Issuer: "cycling-coach"}
	fixedNow   = time.Date(2025, 3, 4, 20, 30, 0, 0, time.UTC)
)

type meMocks struct {
	sessions *domain.MockTrainingRepository
	alerts   *domain.MockAlertRepository
	users    *domain.MockUserRepository
	goals    *domain.MockGoalRepository
	calendar *domain.MockCalendarProvider
}

func newMeRouter(t *testing.T) (*gin.Engine, meMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := meMocks{
		sessions: domain.NewMockTrainingRepository(ctrl),
		alerts:   domain.NewMockAlertRepository(ctrl),
		users:    domain.NewMockUserRepository(ctrl),
		goals:    domain.NewMockGoalRepository(ctrl),
		calendar: domain.NewMockCalendarProvider(ctrl),
	}

	svc := training.NewService(m.sessions, m.alerts, m.users, m.goals, m.calendar,
		training.WithClock(func() time.Time { return fixedNow }),
	)
	h := NewMeHandler(svc)
	h.clock = func() time.Time { return fixedNow }

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.Register(r.Group("/api/v1/me", auth.Gin(authConfig)))
	return r, m
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.Issue("user-1", time.Hour, authConfig)
	require.NoError(t, err)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func storedSession() *domain.TrainingSession {
	return &domain.TrainingSession{
		ID:          "session-1",
		OwnerID:     "user-1",
		ScheduledAt: time.Date(2025, 3, 4, 18, 0, 0, 0, time.UTC),
		Title:       "Tempo Intervals",
		Sources:     []domain.Source{domain.SourceTrainingPlatform},
	}
}

func TestMeRequiresToken(t *testing.T) {
	r, _ := newMeRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/sessions", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListSessionsDefaultRange(t *testing.T) {
	r, m := newMeRouter(t)

	m.sessions.EXPECT().
		ListSessions(gomock.Any(), "user-1", fixedNow.Add(-defaultSessionRange), fixedNow.Add(defaultSessionRange)).
		Return([]domain.TrainingSession{*storedSession()}, nil)

	rec := doRequest(t, r, http.MethodGet, "/api/v1/me/sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Sessions []domain.TrainingSession `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Sessions, 1)
	require.Equal(t, "session-1", body.Sessions[0].ID)
}

func TestListSessionsRejectsInvertedRange(t *testing.T) {
	r, _ := newMeRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/api/v1/me/sessions?from=2025-03-05T00:00:00Z&to=2025-03-04T00:00:00Z", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompleteSession(t *testing.T) {
	r, m := newMeRouter(t)

	m.sessions.EXPECT().GetSession(gomock.Any(), "user-1", "session-1").Return(storedSession(), nil)
	m.sessions.EXPECT().UpdateSession(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, s *domain.TrainingSession) error {
			require.True(t, s.Completed)
			require.NotNil(t, s.CompletedAt)
			return nil
		},
	)

	rec := doRequest(t, r, http.MethodPost, "/api/v1/me/sessions/session-1/complete", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body domain.TrainingSession
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Completed)
}

func TestUpdateEffort(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		found      bool
		wantStatus int
	}{
		{"valid effort", `{"perceived_effort": 7}`, true, http.StatusOK},
		{"out of range", `{"perceived_effort": 11}`, false, http.StatusBadRequest},
		{"missing field", `{}`, false, http.StatusBadRequest},
		{"malformed body", `{"perceived_effort":`, false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, m := newMeRouter(t)
			if tt.found {
				m.sessions.EXPECT().GetSession(gomock.Any(), "user-1", "session-1").Return(storedSession(), nil)
				m.sessions.EXPECT().UpdateSession(gomock.Any(), gomock.Any()).Return(nil)
			}

			rec := doRequest(t, r, http.MethodPut, "/api/v1/me/sessions/session-1/effort", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestDeleteSessionNotFound(t *testing.T) {
	r, m := newMeRouter(t)

	m.sessions.EXPECT().DeleteSession(gomock.Any(), "user-1", "missing").Return(domain.ErrSessionNotFound)

	rec := doRequest(t, r, http.MethodDelete, "/api/v1/me/sessions/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAlertTransitions(t *testing.T) {
	pending := func() *domain.ConflictAlert {
		return &domain.ConflictAlert{
			ID:        "alert-1",
			OwnerID:   "user-1",
			SessionID: "session-1",
			EventID:   "event-1",
			Status:    domain.AlertStatusPending,
		}
	}

	t.Run("resolve pending alert", func(t *testing.T) {
		r, m := newMeRouter(t)
		m.alerts.EXPECT().GetAlert(gomock.Any(), "user-1", "alert-1").Return(pending(), nil)
		m.alerts.EXPECT().
			UpdateStatus(gomock.Any(), "user-1", "alert-1", domain.AlertStatusResolved, "moved to morning", fixedNow).
			Return(nil)

		rec := doRequest(t, r, http.MethodPost, "/api/v1/me/alerts/alert-1/resolve", `{"resolution": "moved to morning"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var body domain.ConflictAlert
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, domain.AlertStatusResolved, body.Status)
		require.Equal(t, "moved to morning", body.Resolution)
	})

	t.Run("resolve requires a resolution", func(t *testing.T) {
		r, _ := newMeRouter(t)

		rec := doRequest(t, r, http.MethodPost, "/api/v1/me/alerts/alert-1/resolve", `{}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ignore an already resolved alert", func(t *testing.T) {
		r, m := newMeRouter(t)
		resolved := pending()
		resolved.Status = domain.AlertStatusResolved
		m.alerts.EXPECT().GetAlert(gomock.Any(), "user-1", "alert-1").Return(resolved, nil)

		rec := doRequest(t, r, http.MethodPost, "/api/v1/me/alerts/alert-1/ignore", "")
		require.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestStats(t *testing.T) {
	r, m := newMeRouter(t)

	window := 14 * 24 * time.Hour
	m.sessions.EXPECT().
		ListSessions(gomock.Any(), "user-1", fixedNow.Add(-window), fixedNow.Add(window)).
		Return([]domain.TrainingSession{*storedSession()}, nil)

	rec := doRequest(t, r, http.MethodGet, "/api/v1/me/stats?days=14", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body domain.TrainingStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.TotalSessions)

	rec = doRequest(t, r, http.MethodGet, "/api/v1/me/stats?days=zero", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

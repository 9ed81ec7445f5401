package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/chriscconte/cycling-coach/internal/domain"
	"github.com/chriscconte/cycling-coach/internal/testutil"
)

func setupDatabase(t *testing.T) (context.Context, *pgxpool.Pool) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pool, cleanup := testutil.SetupPostgresContainer(ctx, t)
	t.Cleanup(cleanup)

	require.NoError(t, Migrate(ctx, pool))
	// A second run must be a no-op.
	require.NoError(t, Migrate(ctx, pool))

	return ctx, pool
}

func intPtr(v int) *int { return &v }

func testSession(id, externalID string, at time.Time) domain.TrainingSession {
	s := domain.TrainingSession{
		ID:          id,
		OwnerID:     "user-1",
		ScheduledAt: at,
		SessionType: domain.SessionTypeEndurance,
		Title:       "Endurance Ride",
		Planned:     domain.PlannedMetrics{DurationMinutes: intPtr(90)},
		CreatedAt:   at.Add(-time.Hour),
		UpdatedAt:   at.Add(-time.Hour),
	}
	s.AttachSource(domain.SourceTrainingPlatform, externalID)
	return s
}

func TestTrainingRepositoryRoundTrip(t *testing.T) {
	ctx, pool := setupDatabase(t)
	repo := NewTrainingRepository(pool)

	at := time.Date(2025, 3, 4, 18, 0, 0, 0, time.UTC)
	s := testSession("session-1", "evt-1", at)

	require.NoError(t, repo.ApplyReconciliation(ctx, "user-1", []domain.TrainingSession{s}, nil))

	got, err := repo.GetSession(ctx, "user-1", "session-1")
	require.NoError(t, err)
	require.True(t, got.ScheduledAt.Equal(at))
	require.Equal(t, 90, *got.Planned.DurationMinutes)
	require.Nil(t, got.Actual.AvgPowerWatts)
	require.Equal(t, []domain.Source{domain.SourceTrainingPlatform}, got.Sources)

	externalID, ok := got.ExternalID(domain.SourceTrainingPlatform)
	require.True(t, ok)
	require.Equal(t, "evt-1", externalID)

	// Enrich with a health store completion.
	completedAt := at.Add(95 * time.Minute)
	got.Completed = true
	got.CompletedAt = &completedAt
	got.Actual.AvgPowerWatts = intPtr(210)
	got.AttachSource(domain.SourceHealthStore, "hk-1")
	got.UpdatedAt = completedAt
	require.NoError(t, repo.ApplyReconciliation(ctx, "user-1", nil, []domain.TrainingSession{*got}))

	sessions, err := repo.ListSessions(ctx, "user-1", at.Add(-time.Hour), at.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.True(t, sessions[0].Completed)
	require.Equal(t, 210, *sessions[0].Actual.AvgPowerWatts)
	require.ElementsMatch(t, []domain.Source{domain.SourceHealthStore, domain.SourceTrainingPlatform}, sessions[0].Sources)

	hkID, ok := sessions[0].ExternalID(domain.SourceHealthStore)
	require.True(t, ok)
	require.Equal(t, "hk-1", hkID)

	other, err := repo.ListSessions(ctx, "user-2", at.Add(-time.Hour), at.Add(time.Hour))
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestTrainingRepositoryDuplicateExternalIDConflicts(t *testing.T) {
	ctx, pool := setupDatabase(t)
	repo := NewTrainingRepository(pool)

	at := time.Date(2025, 3, 4, 18, 0, 0, 0, time.UTC)
	require.NoError(t, repo.ApplyReconciliation(ctx, "user-1",
		[]domain.TrainingSession{testSession("session-1", "evt-1", at)}, nil))

	err := repo.ApplyReconciliation(ctx, "user-1",
		[]domain.TrainingSession{
			testSession("session-2", "evt-2", at.Add(24*time.Hour)),
			testSession("session-3", "evt-1", at.Add(48*time.Hour)),
		}, nil)
	require.ErrorIs(t, err, domain.ErrPersistenceConflict)

	// The failed batch must leave nothing behind.
	_, err = repo.GetSession(ctx, "user-1", "session-2")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestTrainingRepositoryDeleteSession(t *testing.T) {
	ctx, pool := setupDatabase(t)
	repo := NewTrainingRepository(pool)

	at := time.Date(2025, 3, 4, 18, 0, 0, 0, time.UTC)
	require.NoError(t, repo.ApplyReconciliation(ctx, "user-1",
		[]domain.TrainingSession{testSession("session-1", "evt-1", at)}, nil))

	require.NoError(t, repo.DeleteSession(ctx, "user-1", "session-1"))
	require.ErrorIs(t, repo.DeleteSession(ctx, "user-1", "session-1"), domain.ErrSessionNotFound)

	// The dedup key is released with the session.
	require.NoError(t, repo.ApplyReconciliation(ctx, "user-1",
		[]domain.TrainingSession{testSession("session-4", "evt-1", at)}, nil))
}

func TestAlertRepositoryInsertIsIdempotent(t *testing.T) {
	ctx, pool := setupDatabase(t)
	repo := NewAlertRepository(pool)

	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	alert := domain.ConflictAlert{
		ID:         "alert-1",
		OwnerID:    "user-1",
		SessionID:  "session-1",
		EventID:    "event-1",
		EventTitle: "Dentist",
		ConflictAt: time.Date(2025, 3, 4, 18, 30, 0, 0, time.UTC),
		Type:       domain.ConflictOverlap,
		Status:     domain.AlertStatusPending,
		CreatedAt:  created,
	}

	inserted, err := repo.InsertAlerts(ctx, "user-1", []domain.ConflictAlert{alert})
	require.NoError(t, err)
	require.Equal(t, 1, inserted)

	duplicate := alert
	duplicate.ID = "alert-2"
	inserted, err = repo.InsertAlerts(ctx, "user-1", []domain.ConflictAlert{duplicate})
	require.NoError(t, err)
	require.Equal(t, 0, inserted)

	alerts, err := repo.ListAlerts(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	require.Equal(t, "alert-1", alerts[0].ID)
}

func TestAlertRepositoryNotifyAndStatus(t *testing.T) {
	ctx, pool := setupDatabase(t)
	repo := NewAlertRepository(pool)

	_, err := repo.InsertAlerts(ctx, "user-1", []domain.ConflictAlert{{
		ID:         "alert-1",
		SessionID:  "session-1",
		EventID:    "event-1",
		ConflictAt: time.Date(2025, 3, 4, 18, 30, 0, 0, time.UTC),
		Type:       domain.ConflictTooCloseBefore,
		Status:     domain.AlertStatusPending,
		CreatedAt:  time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}})
	require.NoError(t, err)

	at := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	flipped, err := repo.MarkNotified(ctx, "user-1", "alert-1", at)
	require.NoError(t, err)
	require.True(t, flipped)

	flipped, err = repo.MarkNotified(ctx, "user-1", "alert-1", at.Add(time.Hour))
	require.NoError(t, err)
	require.False(t, flipped)

	_, err = repo.MarkNotified(ctx, "user-1", "missing", at)
	require.ErrorIs(t, err, domain.ErrAlertNotFound)

	require.NoError(t, repo.UpdateStatus(ctx, "user-1", "alert-1", domain.AlertStatusResolved, "moved ride", at))
	require.ErrorIs(t,
		repo.UpdateStatus(ctx, "user-1", "alert-1", domain.AlertStatusIgnored, "", at),
		domain.ErrInvalidAlertTransition)

	got, err := repo.GetAlert(ctx, "user-1", "alert-1")
	require.NoError(t, err)
	require.Equal(t, domain.AlertStatusResolved, got.Status)
	require.Equal(t, "moved ride", got.Resolution)
	require.True(t, got.NotificationSent)
	require.NotNil(t, got.NotifiedAt)
}

func TestUserRepositoryUsersAndGoals(t *testing.T) {
	ctx, pool := setupDatabase(t)
	repo := NewUserRepository(pool)

	ftp := 250
	user := &domain.User{
		ID:                   "user-1",
		Name:                 "Alex",
		AthleteID:            "i12345",
		FTPWatts:             &ftp,
		PreferredDays:        []time.Weekday{time.Tuesday, time.Saturday},
		Timezone:             "Europe/Berlin",
		NotificationsEnabled: true,
	}
	require.NoError(t, repo.UpsertUser(ctx, user))

	got, err := repo.GetUser(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "i12345", got.AthleteID)
	require.Equal(t, 250, *got.FTPWatts)
	require.Nil(t, got.ThresholdHeartRate)
	require.Equal(t, []time.Weekday{time.Tuesday, time.Saturday}, got.PreferredDays)

	_, err = repo.GetUser(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, repo.UpsertGoal(ctx, &domain.Goal{ID: "g1", OwnerID: "user-1", Title: "Gran Fondo", Status: domain.GoalStatusActive, Priority: 1}))
	require.NoError(t, repo.UpsertGoal(ctx, &domain.Goal{ID: "g2", OwnerID: "user-1", Title: "Raise FTP", Status: domain.GoalStatusActive, Priority: 2}))

	goals, err := repo.ListGoals(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, goals, 2)
	require.Equal(t, "Raise FTP", goals[0].Title)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

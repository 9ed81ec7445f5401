package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(notificationDispatcherEnv, "")
	t.Setenv(defaultTimezoneEnv, "")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, slog.LevelInfo, cfg.LogLevel)
	require.Equal(t, time.UTC, cfg.DefaultLocation)
	require.Equal(t, 4*time.Hour, cfg.Coach.MatchWindow)
	require.Equal(t, 30*24*time.Hour, cfg.Coach.HistoryWindow)
	require.Equal(t, 14*24*time.Hour, cfg.Coach.ConflictLookahead)
	require.Equal(t, time.Sunday, cfg.Coach.WeeklyReviewWeekday)
	require.Equal(t, 18, cfg.Coach.WeeklyReviewHour)
	require.Equal(t, 4*time.Hour, cfg.Orchestrator.CheckTrainingCadence)
	require.Equal(t, 24*time.Hour, cfg.Orchestrator.DetectConflictsCadence)
	require.Equal(t, 4, cfg.Orchestrator.Concurrency)
	require.Equal(t, 5*time.Minute, cfg.Orchestrator.RunBudget)
	require.Equal(t, 20*time.Second, cfg.Orchestrator.ProviderTimeout)
	require.Equal(t, DispatcherTasks, cfg.Dispatcher.Kind)
	require.Equal(t, defaultIntervalsBaseURL, cfg.Providers.IntervalsBaseURL)
	require.Equal(t, "cycling-coach", cfg.Auth.Issuer)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(logLevelEnv, "debug")
	t.Setenv(defaultTimezoneEnv, "Europe/Berlin")
	t.Setenv(reconcileMatchWindowEnv, "120")
	t.Setenv(weeklyReviewWeekdayEnv, "1")
	t.Setenv(weeklyReviewHourEnv, "7")
	t.Setenv(orchestratorRunBudgetEnv, "90s")
	t.Setenv(orchestratorConcurrencyEnv, "-2")
	t.Setenv(notificationDispatcherEnv, "Kafka")
	t.Setenv(kafkaBrokersEnv, "kafka-1:9092, kafka-2:9092,")
	t.Setenv(jobTargetBaseURLEnv, "http://coach:8080/")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, slog.LevelDebug, cfg.LogLevel)
	require.Equal(t, "Europe/Berlin", cfg.DefaultLocation.String())
	require.Equal(t, 2*time.Hour, cfg.Coach.MatchWindow)
	require.Equal(t, time.Monday, cfg.Coach.WeeklyReviewWeekday)
	require.Equal(t, 7, cfg.Coach.WeeklyReviewHour)
	require.Equal(t, 90*time.Second, cfg.Orchestrator.RunBudget)
	require.Equal(t, defaultConcurrency, cfg.Orchestrator.Concurrency)
	require.Equal(t, DispatcherKafka, cfg.Dispatcher.Kind)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Dispatcher.KafkaBrokers)
	require.Equal(t, "http://coach:8080", cfg.Orchestrator.JobTargetBaseURL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
		err  error
	}{
		{"timezone", defaultTimezoneEnv, "Mars/Olympus", ErrInvalidTimezone},
		{"redis db", redisDBEnv, "one", ErrInvalidRedisDB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.val)
			_, err := Load()
			require.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("duration", func(t *testing.T) {
		t.Setenv(providerTimeoutEnv, "soon")
		_, err := Load()

		var durErr *InvalidDurationError
		require.True(t, errors.As(err, &durErr))
		require.Equal(t, providerTimeoutEnv, durErr.Env)
	})
}

func TestValidateForServe(t *testing.T) {
	t.Setenv(databaseURLEnv, "")
	t.Setenv(jwtSecretEnv, "")
	t.Setenv(notificationDispatcherEnv, "carrier-pigeon")

	cfg, err := Load()
	require.NoError(t, err)

	err = ValidateForServe(cfg)
	require.ErrorIs(t, err, ErrDatabaseURLMissing)
	require.ErrorIs(t, err, ErrJWTSecretMissing)
	require.ErrorIs(t, err, ErrUnknownDispatcher)

	require.NotErrorIs(t, ValidateForRun(cfg), ErrJWTSecretMissing)
}

func TestRedisOptions(t *testing.T) {
	cfg := &RedisConfig{Addr: "redis:6380", DB: 2, TLS: true}
	opts := cfg.Options()

	require.Equal(t, "redis:6380", opts.Addr)
	require.Equal(t, 2, opts.DB)
	require.NotNil(t, opts.TLSConfig)
}

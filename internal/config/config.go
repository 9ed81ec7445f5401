package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/chriscconte/cycling-coach/internal/observability/logging"
)

const (
	portEnv            = "PORT"
	logLevelEnv        = "LOG_LEVEL"
	defaultTimezoneEnv = "DEFAULT_TIMEZONE"

	defaultPort = "8080"
)

type Config struct {
	Port            string
	LogLevel        slog.Level
	DefaultLocation *time.Location

	Database     *DatabaseConfig
	Redis        *RedisConfig
	TaskQueue    *TaskQueueConfig
	Dispatcher   *DispatcherConfig
	Coach        *CoachConfig
	Orchestrator *OrchestratorConfig
	Providers    *ProvidersConfig
	Auth         *AuthConfig
}

func Load() (*Config, error) {
	port := os.Getenv(portEnv)
	if port == "" {
		port = defaultPort
	}

	loc := time.UTC
	if tz := os.Getenv(defaultTimezoneEnv); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			return nil, ErrInvalidTimezone
		}
		loc = parsed
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	orchestratorConfig, err := LoadOrchestratorConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:            port,
		LogLevel:        logging.ParseLevel(os.Getenv(logLevelEnv)),
		DefaultLocation: loc,

		Database:     LoadDatabaseConfig(),
		Redis:        redisConfig,
		TaskQueue:    LoadTaskQueueConfig(),
		Dispatcher:   LoadDispatcherConfig(),
		Coach:        LoadCoachConfig(),
		Orchestrator: orchestratorConfig,
		Providers:    LoadProvidersConfig(),
		Auth:         LoadAuthConfig(),
	}, nil
}

// positiveInt falls back to def when the variable is unset, malformed or not positive.
func positiveInt(env string, def int) int {
	if v := os.Getenv(env); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func duration(env string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(env)
	if v == "" {
		return def, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil || parsed <= 0 {
		return 0, &InvalidDurationError{Env: env, Value: v}
	}
	return parsed, nil
}

func stringOr(env, def string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

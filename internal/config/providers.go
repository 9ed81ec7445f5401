package config

import "os"

const (
	intervalsBaseURLEnv  = "INTERVALS_ICU_BASE_URL"
	calendarBridgeURLEnv = "CALENDAR_BRIDGE_URL"
	healthBridgeURLEnv   = "HEALTH_BRIDGE_URL"

	defaultIntervalsBaseURL = "https://intervals.icu/api/v1"
)

// ProvidersConfig locates the external sources. An empty bridge URL disables that source.
type ProvidersConfig struct {
	IntervalsBaseURL  string
	CalendarBridgeURL string
	HealthBridgeURL   string
}

func LoadProvidersConfig() *ProvidersConfig {
	return &ProvidersConfig{
		IntervalsBaseURL:  stringOr(intervalsBaseURLEnv, defaultIntervalsBaseURL),
		CalendarBridgeURL: os.Getenv(calendarBridgeURLEnv),
		HealthBridgeURL:   os.Getenv(healthBridgeURLEnv),
	}
}

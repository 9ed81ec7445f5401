package config

import "os"

const (
	databaseURLEnv      = "DATABASE_URL"
	databaseMaxConnsEnv = "DATABASE_MAX_CONNS"

	defaultDatabaseMaxConns = 10
)

type DatabaseConfig struct {
	URL      string
	MaxConns int
}

func LoadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL:      os.Getenv(databaseURLEnv),
		MaxConns: positiveInt(databaseMaxConnsEnv, defaultDatabaseMaxConns),
	}
}

func (c *DatabaseConfig) Validate() error {
	if c == nil || c.URL == "" {
		return ErrDatabaseURLMissing
	}
	return nil
}

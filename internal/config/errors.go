package config

import (
	"errors"
	"fmt"
)

var (
	ErrRedisAddrMissing   = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB     = errors.New("REDIS_DB must be a valid integer")
	ErrDatabaseURLMissing = errors.New("DATABASE_URL is required")
	ErrInvalidTimezone    = errors.New("DEFAULT_TIMEZONE must be a valid IANA timezone")
	ErrJWTSecretMissing   = errors.New("JWT_SECRET is required")
	ErrKafkaBrokerMissing = errors.New("KAFKA_BROKERS is required when NOTIFICATION_DISPATCHER=kafka")
	ErrUnknownDispatcher  = errors.New("NOTIFICATION_DISPATCHER must be tasks or kafka")
	ErrJobTargetMissing   = errors.New("JOB_TARGET_BASE_URL is required")
)

type InvalidDurationError struct {
	Env   string
	Value string
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("%s must be a positive duration, got %q", e.Env, e.Value)
}

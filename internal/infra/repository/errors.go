package repository

import "errors"

var (
	ErrRedisConnection    = errors.New("redis connection error")
	ErrInvalidRequestData = errors.New("invalid notification request data")
	ErrInvalidSecretName  = errors.New("invalid secret name")
	ErrLockNotHeld        = errors.New("run lock not held")
)

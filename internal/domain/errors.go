package domain

import "errors"

var (
	ErrProviderUnavailable   = errors.New("provider unavailable")
	ErrMalformedRecord       = errors.New("malformed record")
	ErrPersistenceConflict   = errors.New("persistence conflict")
	ErrAuthenticationFailure = errors.New("authentication failure")

	ErrSessionNotFound        = errors.New("training session not found")
	ErrAlertNotFound          = errors.New("conflict alert not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidAlertTransition = errors.New("invalid alert status transition")
	ErrInvalidPerceivedEffort = errors.New("perceived effort must be between 1 and 10")
	ErrRunInProgress          = errors.New("job run already in progress")
)

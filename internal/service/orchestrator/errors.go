package orchestrator

import "errors"

var (
	ErrUnknownJob = errors.New("unknown job")
	ErrRunFailed  = errors.New("job run failed")
)

package taskqueue

import (
	"errors"
	"fmt"
)

var ErrUnexpectedStatus = errors.New("unexpected status code from task queue")

type RetriesExhaustedError struct {
	Attempts int
	Err      error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("failed to register task after %d retries: %v", e.Attempts, e.Err)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Err
}

package runrecorder

import (
	"context"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.RunResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordRun(_ context.Context, _ []domain.RunRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}

package taskqueue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/chriscconte/cycling-coach/internal/domain"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaDispatch(t *testing.T) {
	writer := &fakeWriter{}
	d := newKafkaDispatcher(writer, "coach.notifications")

	req := &domain.NotificationRequest{
		ID:        "req-1",
		Kind:      domain.NotificationPreWorkout,
		OwnerID:   "user-1",
		SubjectID: "session-1",
		TriggerAt: time.Date(2025, 3, 4, 17, 30, 0, 0, time.UTC),
		Category:  domain.CategoryUpcomingWorkout,
	}

	if err := d.Dispatch(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(writer.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(writer.messages))
	}

	msg := writer.messages[0]
	if string(msg.Key) != "req-1" {
		t.Errorf("expected key req-1, got %s", msg.Key)
	}

	var task NotificationTask
	if err := json.Unmarshal(msg.Value, &task); err != nil {
		t.Fatalf("failed to decode message: %v", err)
	}
	if task.Kind != "pre_workout" || task.SubjectID != "session-1" {
		t.Errorf("unexpected payload %+v", task)
	}

	if err := d.Close(); err != nil || !writer.closed {
		t.Error("expected writer to be closed")
	}
}

func TestKafkaDispatchError(t *testing.T) {
	writeErr := errors.New("broker down")
	d := newKafkaDispatcher(&fakeWriter{err: writeErr}, "coach.notifications")

	err := d.Dispatch(context.Background(), &domain.NotificationRequest{ID: "req-1"})
	if !errors.Is(err, writeErr) {
		t.Errorf("expected broker error, got %v", err)
	}
}

package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/chriscconte/cycling-coach/internal/domain"
	"github.com/chriscconte/cycling-coach/internal/observability/tracing"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaDispatcher publishes notification requests keyed by request id.
// Consumers de-duplicate on the key.
type KafkaDispatcher struct {
	mu     sync.Mutex
	writer messageWriter
	topic  string
	now    func() time.Time
}

func NewKafkaDispatcher(brokers []string, topic string) *KafkaDispatcher {
	return newKafkaDispatcher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		Balancer:     &kafka.Hash{},
		Async:        false,
	}, topic)
}

func newKafkaDispatcher(writer messageWriter, topic string) *KafkaDispatcher {
	return &KafkaDispatcher{
		writer: writer,
		topic:  topic,
		now:    time.Now,
	}
}

func (d *KafkaDispatcher) Dispatch(ctx context.Context, req *domain.NotificationRequest) error {
	ctx, span := tracing.StartExternalAPISpan(ctx, "kafka.publish", d.topic)
	defer span.End()

	payload, err := json.Marshal(NewNotificationTask(req))
	if err != nil {
		return fmt.Errorf("failed to marshal notification task: %w", err)
	}

	carrier := map[string]string{}
	tracing.InjectToMap(ctx, carrier)

	headers := []kafka.Header{
		{Key: "kind", Value: []byte(req.Kind.String())},
		{Key: "trigger_at", Value: []byte(req.TriggerAt.UTC().Format(time.RFC3339))},
	}
	for k, v := range carrier {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	msg := kafka.Message{
		Key:     []byte(req.ID),
		Value:   payload,
		Headers: headers,
		Time:    d.now().UTC(),
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.writer.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to publish notification %s: %w", req.ID, err)
	}

	slog.DebugContext(ctx, "notification published",
		slog.String("topic", d.topic),
		slog.String("request_id", req.ID),
	)

	return nil
}

func (d *KafkaDispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.writer.Close()
}

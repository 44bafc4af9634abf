package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Event interface {
	Type() string
	AggregateID() string
}

type Dispatcher interface {
	Dispatch(ctx context.Context, e Event) error
}

// Envelope is the wire format written to the broker.
type Envelope struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Payload   Event     `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

type Publisher interface {
	Publish(ctx context.Context, key string, value []byte, headers map[string]string) error
}

type KafkaDispatcher struct {
	producer Publisher
	now      func() time.Time
}

func NewKafkaDispatcher(producer Publisher) *KafkaDispatcher {
	return &KafkaDispatcher{producer: producer, now: time.Now}
}

func (d *KafkaDispatcher) Dispatch(ctx context.Context, e Event) error {
	env := Envelope{
		EventID:   uuid.NewString(),
		EventType: e.Type(),
		Payload:   e,
		Timestamp: d.now().UTC(),
	}
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return d.producer.Publish(ctx, e.AggregateID(), b, map[string]string{"event_type": e.Type()})
}

// NopDispatcher drops every event. It is used when no broker is configured.
type NopDispatcher struct{}

func (NopDispatcher) Dispatch(context.Context, Event) error { return nil }

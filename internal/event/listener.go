package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/fekuna/storefront-service/pkg/logger"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Record is an envelope read back from the broker with its payload left raw.
type Record struct {
	Key       string          `json:"-"`
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

type HandlerFunc func(ctx context.Context, rec Record) error

type Listener struct {
	reader     MessageReader
	handle     HandlerFunc
	logger     logger.ZapLogger
	retryDelay time.Duration
}

func NewListener(reader MessageReader, handle HandlerFunc, log logger.ZapLogger) *Listener {
	return &Listener{
		reader:     reader,
		handle:     handle,
		logger:     log,
		retryDelay: time.Second,
	}
}

// Start consumes until ctx is cancelled. Undecodable messages and handler
// failures are logged and skipped.
func (l *Listener) Start(ctx context.Context) {
	l.logger.Info("starting event listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping event listener")
			return
		default:
		}

		msg, err := l.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Info("stopping event listener")
				return
			}
			l.logger.Error("failed to read kafka message", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(l.retryDelay):
			}
			continue
		}
		l.processMessage(ctx, msg)
	}
}

func (l *Listener) processMessage(ctx context.Context, msg kafka.Message) {
	var rec Record
	if err := json.Unmarshal(msg.Value, &rec); err != nil {
		l.logger.Error("failed to unmarshal event", zap.Int64("offset", msg.Offset), zap.Error(err))
		return
	}
	rec.Key = string(msg.Key)

	if err := l.handle(ctx, rec); err != nil {
		l.logger.Error("failed to handle event",
			zap.String("event_id", rec.EventID),
			zap.String("event_type", rec.EventType),
			zap.Error(err),
		)
	}
}

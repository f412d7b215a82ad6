package communication

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"relay-server/internal/monitor/domain"
	"relay-server/internal/monitor/usecases"

	"github.com/lovoo/goka"
	"github.com/lovoo/goka/codec"
)

const (
	DefaultCommandTopic = "device_commands"

	maxRetries    int = 10
	_retryBackoff     = 5 * time.Second
)

type commandEmitter interface {
	EmitSync(key string, msg interface{}) error
	Finish() error
}

var _ usecases.CommandDispatcher = (*KafkaCommandDispatcher)(nil)

// KafkaCommandDispatcher emits the raw command keyed by device id.
type KafkaCommandDispatcher struct {
	emitter commandEmitter
	topic   string
}

func NewKafkaCommandDispatcher(brokers []string, topic string, options ...goka.EmitterOption) (*KafkaCommandDispatcher, error) {
	if topic == "" {
		topic = DefaultCommandTopic
	}

	var lastErr error
	for try := 0; try < maxRetries; try++ {
		emitter, err := goka.NewEmitter(brokers, goka.Stream(topic), new(codec.Bytes), options...)
		if err == nil {
			return &KafkaCommandDispatcher{emitter: emitter, topic: topic}, nil
		}
		lastErr = err
		slog.Warn("kafka emitter not ready",
			slog.Int("try", try+1),
			slog.String("topic", topic),
			slog.Any("error", err))
		time.Sleep(_retryBackoff)
	}

	return nil, fmt.Errorf("impossible to connect to kafka brokers after %d retries: %w", maxRetries, lastErr)
}

func (d *KafkaCommandDispatcher) Dispatch(_ context.Context, cmd domain.Command) error {
	if err := d.emitter.EmitSync(cmd.DeviceID.String(), cmd.Payload.Bytes()); err != nil {
		return fmt.Errorf("kafka dispatch: %w", err)
	}

	slog.Debug("command emitted",
		slog.String("transport", "kafka"),
		slog.String("topic", d.topic),
		slog.String("command_id", cmd.ID.String()))
	return nil
}

func (d *KafkaCommandDispatcher) Close() error {
	return d.emitter.Finish()
}

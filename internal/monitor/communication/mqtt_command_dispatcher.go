package communication

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"relay-server/internal/infra/mqtt"
	"relay-server/internal/monitor/domain"
	"relay-server/internal/monitor/usecases"
)

const _defaultTopicPrefix = "devices"

var _ usecases.CommandDispatcher = (*MQTTCommandDispatcher)(nil)

// MQTTCommandDispatcher publishes the raw command to <prefix>/<device id>/commands.
type MQTTCommandDispatcher struct {
	client      mqtt.Client
	topicPrefix string
}

func NewMQTTCommandDispatcher(client mqtt.Client, topicPrefix string) *MQTTCommandDispatcher {
	topicPrefix = strings.Trim(topicPrefix, "/")
	if topicPrefix == "" {
		topicPrefix = _defaultTopicPrefix
	}
	return &MQTTCommandDispatcher{
		client:      client,
		topicPrefix: topicPrefix,
	}
}

func (d *MQTTCommandDispatcher) Topic(deviceID domain.ID) string {
	return fmt.Sprintf("%s/%s/commands", d.topicPrefix, deviceID)
}

func (d *MQTTCommandDispatcher) Dispatch(_ context.Context, cmd domain.Command) error {
	topic := d.Topic(cmd.DeviceID)
	if err := d.client.Publish(topic, cmd.Payload.Bytes()); err != nil {
		return fmt.Errorf("mqtt dispatch: %w", err)
	}

	slog.Debug("command published",
		slog.String("transport", "mqtt"),
		slog.String("topic", topic),
		slog.String("command_id", cmd.ID.String()))
	return nil
}

func (d *MQTTCommandDispatcher) Close() error {
	d.client.Disconnect()
	return nil
}

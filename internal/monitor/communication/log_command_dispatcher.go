package communication

import (
	"context"
	"log/slog"

	"relay-server/internal/monitor/domain"
	"relay-server/internal/monitor/usecases"
)

var _ usecases.CommandDispatcher = (*LogCommandDispatcher)(nil)

// LogCommandDispatcher only logs commands. Used when running locally without a device.
type LogCommandDispatcher struct{}

func NewLogCommandDispatcher() *LogCommandDispatcher {
	return &LogCommandDispatcher{}
}

func (LogCommandDispatcher) Dispatch(_ context.Context, cmd domain.Command) error {
	slog.Info("command dispatched",
		slog.String("transport", "log"),
		slog.String("device_id", cmd.DeviceID.String()),
		slog.String("command_id", cmd.ID.String()),
		slog.String("command", string(cmd.Payload)))
	return nil
}

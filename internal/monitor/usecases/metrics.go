package usecases

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const _instrumentationName = "relay_server"

// ControlLoopMetrics groups the counters of the telemetry to actuator path.
type ControlLoopMetrics struct {
	received       metric.Int64Counter
	filtered       metric.Int64Counter
	decodeErrors   metric.Int64Counter
	receiveErrors  metric.Int64Counter
	commandsSent   metric.Int64Counter
	commandsFailed metric.Int64Counter
}

func NewControlLoopMetrics() (*ControlLoopMetrics, error) {
	meter := otel.Meter(_instrumentationName)
	m := &ControlLoopMetrics{}

	counters := []struct {
		target      *metric.Int64Counter
		name        string
		description string
	}{
		{&m.received, "telemetry.messages.received", "telemetry messages pulled from the stream"},
		{&m.filtered, "telemetry.messages.filtered", "telemetry messages of other devices"},
		{&m.decodeErrors, "telemetry.messages.decode_errors", "telemetry messages that could not be decoded"},
		{&m.receiveErrors, "telemetry.receive.errors", "transport errors while receiving telemetry"},
		{&m.commandsSent, "actuator.commands.dispatched", "actuator commands handed to the dispatcher"},
		{&m.commandsFailed, "actuator.commands.failed", "actuator commands the dispatcher rejected"},
	}

	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.description))
		if err != nil {
			return nil, fmt.Errorf("creating %s counter: %w", c.name, err)
		}
		*c.target = counter
	}

	return m, nil
}

package usecases

import (
	"context"
	"log/slog"
	"sync"

	"relay-server/internal/monitor/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ThresholdController drives the relay from accepted samples. It is the only
// writer of the actuator state, and its mutex makes read, decide, transition and
// dispatch one step so concurrent partitions cannot issue the same command twice.
type ThresholdController struct {
	mu         sync.Mutex
	store      DeviceStateStore
	threshold  *domain.ThresholdConfig
	dispatcher CommandDispatcher
	metrics    *ControlLoopMetrics
}

func NewThresholdController(
	store DeviceStateStore,
	threshold *domain.ThresholdConfig,
	dispatcher CommandDispatcher,
	metrics *ControlLoopMetrics,
) *ThresholdController {
	return &ThresholdController{
		store:      store,
		threshold:  threshold,
		dispatcher: dispatcher,
		metrics:    metrics,
	}
}

// Evaluate compares the sample against the current threshold and dispatches a
// command when the relay has to change state. A failed dispatch keeps the new
// state; the next crossing is evaluated against it.
func (c *ThresholdController) Evaluate(ctx context.Context, sample domain.SensorSample) (domain.ActuatorTransition, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	span := trace.SpanFromContext(ctx)
	threshold := c.threshold.Get()
	state := c.store.Snapshot(ctx)
	current := state.Actuator

	next, changed := domain.NextActuatorState(current, sample.Temperature, threshold)
	if !changed {
		return domain.ActuatorTransition{}, false
	}

	cmd := domain.NewCommand(state.DeviceID, next.Command())
	transition := c.store.UpdateActuator(ctx, next, cmd.ID)

	slog.Info("relay state changed",
		slog.String("trace_id", span.SpanContext().TraceID().String()),
		slog.String("span_id", span.SpanContext().SpanID().String()),
		slog.String("device_id", cmd.DeviceID.String()),
		slog.String("command_id", cmd.ID.String()),
		slog.String("from", current.String()),
		slog.String("to", next.String()),
		slog.Int("temperature", sample.Temperature),
		slog.Int("threshold", threshold))

	attrs := metric.WithAttributes(attribute.String("command", string(cmd.Payload)))
	if err := c.dispatcher.Dispatch(ctx, cmd); err != nil {
		c.metrics.commandsFailed.Add(ctx, 1, attrs)
		slog.Error("dispatching actuator command",
			slog.String("trace_id", span.SpanContext().TraceID().String()),
			slog.String("span_id", span.SpanContext().SpanID().String()),
			slog.String("command_id", cmd.ID.String()),
			slog.String("command", string(cmd.Payload)),
			slog.Any("error", err))
		return transition, true
	}
	c.metrics.commandsSent.Add(ctx, 1, attrs)

	return transition, true
}

func (c *ThresholdController) Threshold() int {
	return c.threshold.Get()
}

// SetThreshold replaces the threshold. Samples already evaluated are not
// re-evaluated.
func (c *ThresholdController) SetThreshold(threshold int) int {
	previous := c.threshold.Set(threshold)
	if previous != threshold {
		slog.Info("temperature threshold updated",
			slog.Int("previous", previous),
			slog.Int("threshold", threshold))
	}
	return previous
}

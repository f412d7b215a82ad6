package usecases

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"relay-server/internal/infra/async"
	"relay-server/internal/infra/stream"
	"relay-server/internal/monitor/domain"
	"relay-server/internal/monitor/dto"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const _defaultReceiveErrorBackoff = time.Second

var _ async.Worker = (*PartitionConsumer)(nil)

type PartitionConsumerOptions struct {
	Partition           stream.Partition
	DeviceID            domain.ID
	ReceiveErrorBackoff time.Duration
}

// PartitionConsumer pulls telemetry from one partition, keeps only the tracked
// device and feeds the store and the controller, in that order, before the next
// receive.
type PartitionConsumer struct {
	opts       PartitionConsumerOptions
	stream     stream.Stream
	store      DeviceStateStore
	controller *ThresholdController
	metrics    *ControlLoopMetrics
}

func NewPartitionConsumer(
	opts PartitionConsumerOptions,
	telemetry stream.Stream,
	store DeviceStateStore,
	controller *ThresholdController,
	metrics *ControlLoopMetrics,
) *PartitionConsumer {
	if opts.ReceiveErrorBackoff <= 0 {
		opts.ReceiveErrorBackoff = _defaultReceiveErrorBackoff
	}
	return &PartitionConsumer{
		opts:       opts,
		stream:     telemetry,
		store:      store,
		controller: controller,
		metrics:    metrics,
	}
}

func (c *PartitionConsumer) Run(ctx context.Context, done func()) {
	defer done()

	partitionAttr := slog.Int("partition", int(c.opts.Partition))
	receiver, err := c.stream.OpenPartition(ctx, c.opts.Partition, stream.StartFromNow)
	if err != nil {
		slog.Error("opening partition", partitionAttr, slog.Any("error", err))
		return
	}
	defer func() {
		if err := receiver.Close(); err != nil {
			slog.Warn("closing partition receiver", partitionAttr, slog.Any("error", err))
		}
	}()

	slog.Info("partition consumer started", partitionAttr, slog.String("device_id", c.opts.DeviceID.String()))
	for {
		if ctx.Err() != nil {
			slog.Info("partition consumer cancelled", partitionAttr)
			return
		}

		msg, err := receiver.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, stream.ErrStreamClosed) {
				slog.Info("partition consumer stopped", partitionAttr, slog.Any("reason", err))
				return
			}
			c.metrics.receiveErrors.Add(ctx, 1, metric.WithAttributes(attribute.Int("partition", int(c.opts.Partition))))
			slog.Error("receiving telemetry", partitionAttr, slog.Any("error", err))
			c.pause(ctx)
			continue
		}

		c.Handle(ctx, msg)
	}
}

func (c *PartitionConsumer) pause(ctx context.Context) {
	timer := time.NewTimer(c.opts.ReceiveErrorBackoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Handle processes one received message and reports whether it was applied to
// the store. Empty polls, other devices and undecodable payloads are skipped.
func (c *PartitionConsumer) Handle(ctx context.Context, msg *stream.Message) bool {
	if msg == nil || len(msg.Payload) == 0 {
		return false
	}

	ctx, span := otel.Tracer(_instrumentationName).Start(ctx, "telemetry.handle",
		trace.WithAttributes(
			attribute.Int("partition", int(msg.Partition)),
			attribute.Int64("offset", msg.Offset),
			attribute.String("device_id", msg.DeviceID),
		))
	defer span.End()

	partitionAttr := metric.WithAttributes(attribute.Int("partition", int(msg.Partition)))
	c.metrics.received.Add(ctx, 1, partitionAttr)

	if domain.ID(msg.DeviceID) != c.opts.DeviceID {
		c.metrics.filtered.Add(ctx, 1, partitionAttr)
		slog.Debug("telemetry of another device discarded",
			slog.String("trace_id", span.SpanContext().TraceID().String()),
			slog.String("device_id", msg.DeviceID),
			slog.Int("partition", int(msg.Partition)))
		return false
	}

	sample, err := dto.DecodeSample(msg.Payload)
	if err != nil {
		c.metrics.decodeErrors.Add(ctx, 1, partitionAttr)
		span.SetStatus(codes.Error, "decode failed")
		span.RecordError(err)
		slog.Warn("telemetry discarded",
			slog.String("trace_id", span.SpanContext().TraceID().String()),
			slog.String("span_id", span.SpanContext().SpanID().String()),
			slog.Int("partition", int(msg.Partition)),
			slog.Int64("offset", msg.Offset),
			slog.Any("error", err))
		return false
	}

	c.store.UpdateSample(ctx, sample)
	c.controller.Evaluate(ctx, sample)

	slog.Debug("telemetry applied",
		slog.String("trace_id", span.SpanContext().TraceID().String()),
		slog.String("span_id", span.SpanContext().SpanID().String()),
		slog.Int("temperature", sample.Temperature),
		slog.Time("enqueued_at", msg.EnqueuedAt))
	return true
}

// Shutdown is a no-op; the consumer stops when its context is cancelled.
func (c *PartitionConsumer) Shutdown() {
	slog.Debug("partition consumer shutdown", slog.Int("partition", int(c.opts.Partition)))
}

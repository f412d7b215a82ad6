package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"relay-server/internal/infra/async"
	"relay-server/internal/infra/stream"
	"relay-server/internal/monitor/domain"
)

var _ async.Worker = (*TelemetryWorker)(nil)

type TelemetryWorkerOptions struct {
	DeviceID            domain.ID
	ReceiveErrorBackoff time.Duration
}

// TelemetryWorker starts one PartitionConsumer per partition of the stream and
// waits for all of them.
type TelemetryWorker struct {
	opts       TelemetryWorkerOptions
	stream     stream.Stream
	store      DeviceStateStore
	controller *ThresholdController
	metrics    *ControlLoopMetrics

	mu        sync.Mutex
	consumers []*PartitionConsumer
}

func NewTelemetryWorker(
	opts TelemetryWorkerOptions,
	telemetry stream.Stream,
	store DeviceStateStore,
	controller *ThresholdController,
	metrics *ControlLoopMetrics,
) *TelemetryWorker {
	return &TelemetryWorker{
		opts:       opts,
		stream:     telemetry,
		store:      store,
		controller: controller,
		metrics:    metrics,
	}
}

// Prepare reads the stream topology and builds the consumers. Run calls it when
// it was not called before.
func (w *TelemetryWorker) Prepare(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.consumers != nil {
		return nil
	}

	partitions, err := w.stream.Partitions(ctx)
	if err != nil {
		return fmt.Errorf("listing partitions: %w", err)
	}

	consumers := make([]*PartitionConsumer, 0, len(partitions))
	for _, partition := range partitions {
		consumers = append(consumers, NewPartitionConsumer(
			PartitionConsumerOptions{
				Partition:           partition,
				DeviceID:            w.opts.DeviceID,
				ReceiveErrorBackoff: w.opts.ReceiveErrorBackoff,
			},
			w.stream, w.store, w.controller, w.metrics,
		))
	}
	w.consumers = consumers

	slog.Info("telemetry topology loaded", slog.Int("partitions", len(partitions)))
	return nil
}

func (w *TelemetryWorker) Run(ctx context.Context, done func()) {
	defer done()

	if err := w.Prepare(ctx); err != nil {
		slog.Error("telemetry worker not started", slog.Any("error", err))
		return
	}

	w.mu.Lock()
	consumers := w.consumers
	w.mu.Unlock()

	var wg sync.WaitGroup
	for _, consumer := range consumers {
		wg.Add(1)
		go consumer.Run(ctx, wg.Done)
	}
	wg.Wait()
	slog.Info("telemetry worker stopped")
}

// Shutdown leaves the stream open. Partition receivers close when Run returns and
// the stream owner closes the stream after that.
func (w *TelemetryWorker) Shutdown() {
	w.mu.Lock()
	consumers := w.consumers
	w.mu.Unlock()

	for _, consumer := range consumers {
		consumer.Shutdown()
	}
}

package usecases

import (
	"context"
	"log/slog"

	"relay-server/internal/infra/async"
)

var _ async.Worker = (*SnapshotWorker)(nil)

// SnapshotWorker mirrors the latest device state into a SnapshotRepository
// every time the state changes. Only the last snapshot is kept.
type SnapshotWorker struct {
	broker     async.InternalBroker
	store      DeviceStateStore
	repository SnapshotRepository
}

func NewSnapshotWorker(broker async.InternalBroker, store DeviceStateStore, repository SnapshotRepository) *SnapshotWorker {
	return &SnapshotWorker{
		broker:     broker,
		store:      store,
		repository: repository,
	}
}

func (w *SnapshotWorker) Run(ctx context.Context, done func()) {
	defer done()

	topic := async.BrokerTopicName(DeviceStateTopic)
	subscription, err := w.broker.Subscribe(topic)
	if err != nil {
		slog.Error("subscribing to device state", slog.Any("error", err))
		return
	}
	defer func() {
		_ = w.broker.Unsubscribe(topic, subscription)
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("snapshot worker cancelled")
			return
		case msg, ok := <-subscription.Receiver:
			if !ok {
				return
			}
			w.handle(ctx, msg)
		}
	}
}

func (w *SnapshotWorker) handle(ctx context.Context, msg async.BrokerMessage) {
	switch msg.Event {
	case SampleUpdatedEvent, ActuatorChangedEvent:
	default:
		slog.Warn("event not supported", slog.String("event", msg.Event))
		return
	}

	snapshot := w.store.Snapshot(ctx).Snapshot()
	if err := w.repository.Save(ctx, snapshot); err != nil {
		slog.Error("saving device snapshot",
			slog.String("device_id", snapshot.DeviceID.String()),
			slog.Any("error", err))
	}
}

func (w *SnapshotWorker) Shutdown() {
	slog.Info("snapshot worker shutdown")
}

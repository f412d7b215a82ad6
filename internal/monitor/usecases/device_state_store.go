package usecases

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"relay-server/internal/infra/async"
	"relay-server/internal/monitor/domain"
)

var _ DeviceStateStore = (*SimpleDeviceStateStore)(nil)

// SimpleDeviceStateStore is the in-memory state of the single tracked device.
// Every change is pushed to the device_state topic while the lock is held, so
// subscribers see changes in the order they were stored. Broker publishing never
// blocks.
type SimpleDeviceStateStore struct {
	mu     sync.Mutex
	state  domain.DeviceState
	broker async.InternalBroker
	now    func() time.Time
}

func NewSimpleDeviceStateStore(deviceID domain.ID, broker async.InternalBroker) *SimpleDeviceStateStore {
	return &SimpleDeviceStateStore{
		state:  domain.NewDeviceState(deviceID),
		broker: broker,
		now:    time.Now,
	}
}

func (s *SimpleDeviceStateStore) UpdateSample(ctx context.Context, sample domain.SensorSample) domain.StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Sample = sample
	s.state.UpdatedAt = s.now()
	snapshot := s.state.Snapshot()
	s.publish(ctx, SampleUpdatedEvent, snapshot)
	return snapshot
}

func (s *SimpleDeviceStateStore) UpdateActuator(ctx context.Context, state domain.ActuatorState, commandID domain.ID) domain.ActuatorTransition {
	s.mu.Lock()
	defer s.mu.Unlock()

	transition := domain.ActuatorTransition{
		DeviceID:  s.state.DeviceID,
		From:      s.state.Actuator,
		To:        state,
		Label:     state.Label(),
		CommandID: commandID,
		At:        s.now(),
	}
	s.state.Actuator = state
	s.publish(ctx, ActuatorChangedEvent, transition)
	return transition
}

func (s *SimpleDeviceStateStore) Snapshot(_ context.Context) domain.DeviceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *SimpleDeviceStateStore) publish(ctx context.Context, event string, value any) {
	err := s.broker.Publish(ctx, async.BrokerTopicName(DeviceStateTopic), async.BrokerMessage{
		Event: event,
		Value: value,
	})
	if err != nil && !errors.Is(err, async.ErrTopicNotFound) {
		slog.Error("publishing device state",
			slog.String("event", event),
			slog.Any("error", err))
	}
}

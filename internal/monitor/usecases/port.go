package usecases

import (
	"context"
	"errors"

	"relay-server/internal/monitor/domain"
)

//go:generate mockgen -source=port.go -destination=../../../test/unit/doubles/monitor/usecases/port_mock.go -package=usecases -mock_names=DeviceStateStore=MockDeviceStateStore,CommandDispatcher=MockCommandDispatcher,SnapshotRepository=MockSnapshotRepository

const (
	DeviceStateTopic = "device_state"

	SampleUpdatedEvent   = "sample_updated"
	ActuatorChangedEvent = "actuator_changed"
)

// DeviceStateStore keeps the last known state of the tracked device.
type DeviceStateStore interface {
	UpdateSample(ctx context.Context, sample domain.SensorSample) domain.StateSnapshot
	UpdateActuator(ctx context.Context, state domain.ActuatorState, commandID domain.ID) domain.ActuatorTransition
	Snapshot(ctx context.Context) domain.DeviceState
}

// CommandDispatcher sends a command to the device control channel. One attempt,
// no acknowledgement.
type CommandDispatcher interface {
	Dispatch(ctx context.Context, cmd domain.Command) error
}

var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository keeps the latest state snapshot outside the process.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot domain.StateSnapshot) error
	Get(ctx context.Context, deviceID domain.ID) (domain.StateSnapshot, error)
}

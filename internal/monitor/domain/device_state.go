package domain

import "time"

// DeviceState is the last known state of the tracked device.
type DeviceState struct {
	DeviceID  ID
	Sample    SensorSample
	Actuator  ActuatorState
	UpdatedAt time.Time
}

func NewDeviceState(deviceID ID) DeviceState {
	return DeviceState{
		DeviceID: deviceID,
		Actuator: ActuatorOff,
	}
}

// HasSample reports whether a sample was ever accepted.
func (s DeviceState) HasSample() bool {
	return !s.UpdatedAt.IsZero()
}

// Snapshot returns the read-only view handed to presentation sinks.
func (s DeviceState) Snapshot() StateSnapshot {
	return StateSnapshot{
		DeviceID:    s.DeviceID,
		Temperature: s.Sample.Temperature,
		Humidity:    s.Sample.Humidity,
		Light:       s.Sample.Light,
		Sound:       s.Sample.Sound,
		Gas:         s.Sample.Gas,
		Actuator:    s.Actuator,
		UpdatedAt:   s.UpdatedAt,
	}
}

type StateSnapshot struct {
	DeviceID    ID
	Temperature int
	Humidity    int
	Light       int
	Sound       int
	Gas         int
	Actuator    ActuatorState
	UpdatedAt   time.Time
}

// ActuatorTransition is published every time the relay changes state.
type ActuatorTransition struct {
	DeviceID  ID
	From      ActuatorState
	To        ActuatorState
	Label     string
	CommandID ID
	At        time.Time
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActuatorState is the logical state of the relay, i.e. the last command issued to it.
type ActuatorState string

const (
	ActuatorOff ActuatorState = "OFF"
	ActuatorOn  ActuatorState = "ON"
)

func (s ActuatorState) String() string {
	return string(s)
}

// Label is the human readable relay status shown by presentation sinks.
func (s ActuatorState) Label() string {
	if s == ActuatorOn {
		return "Relay ON"
	}
	return "Relay OFF"
}

// Command returns the payload that drives the relay into this state.
func (s ActuatorState) Command() CommandPayload {
	if s == ActuatorOn {
		return CommandOn
	}
	return CommandOff
}

// NextActuatorState applies the edge-triggered rule: it only reports a
// transition when the temperature crossed the threshold relative to the
// current state. Equality counts as the ON side.
func NextActuatorState(current ActuatorState, temperature, threshold int) (ActuatorState, bool) {
	switch {
	case current != ActuatorOn && temperature >= threshold:
		return ActuatorOn, true
	case current == ActuatorOn && temperature < threshold:
		return ActuatorOff, true
	default:
		return current, false
	}
}

type CommandPayload string

const (
	CommandOn  CommandPayload = "On"
	CommandOff CommandPayload = "Off"
)

func (p CommandPayload) Bytes() []byte {
	return []byte(p)
}

// Command is a one-way actuator message. The ID only correlates logs and traces,
// there is no delivery tracking.
type Command struct {
	ID       ID
	DeviceID ID
	Payload  CommandPayload
	IssuedAt time.Time
}

func NewCommand(deviceID ID, payload CommandPayload) Command {
	return Command{
		ID:       ID(uuid.NewString()),
		DeviceID: deviceID,
		Payload:  payload,
		IssuedAt: time.Now(),
	}
}

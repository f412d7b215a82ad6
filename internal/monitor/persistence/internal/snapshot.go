package internal

import (
	"time"

	"relay-server/internal/monitor/domain"
)

// StateSnapshot is the stored shape of domain.StateSnapshot.
type StateSnapshot struct {
	DeviceID    string    `msgpack:"device_id"`
	Temperature int       `msgpack:"temperature"`
	Humidity    int       `msgpack:"humidity"`
	Light       int       `msgpack:"light"`
	Sound       int       `msgpack:"sound"`
	Gas         int       `msgpack:"gas"`
	Actuator    string    `msgpack:"actuator"`
	UpdatedAt   time.Time `msgpack:"updated_at"`
}

func FromStateSnapshot(value domain.StateSnapshot) StateSnapshot {
	return StateSnapshot{
		DeviceID:    value.DeviceID.String(),
		Temperature: value.Temperature,
		Humidity:    value.Humidity,
		Light:       value.Light,
		Sound:       value.Sound,
		Gas:         value.Gas,
		Actuator:    value.Actuator.String(),
		UpdatedAt:   value.UpdatedAt,
	}
}

func (s StateSnapshot) ToDomain() domain.StateSnapshot {
	actuator := domain.ActuatorOff
	if s.Actuator == domain.ActuatorOn.String() {
		actuator = domain.ActuatorOn
	}
	return domain.StateSnapshot{
		DeviceID:    domain.ID(s.DeviceID),
		Temperature: s.Temperature,
		Humidity:    s.Humidity,
		Light:       s.Light,
		Sound:       s.Sound,
		Gas:         s.Gas,
		Actuator:    actuator,
		UpdatedAt:   s.UpdatedAt,
	}
}

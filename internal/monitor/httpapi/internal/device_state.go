package internal

import (
	"time"

	"relay-server/internal/monitor/domain"
)

type DeviceStateResponse struct {
	DeviceID    string     `json:"device_id"`
	HasSample   bool       `json:"has_sample"`
	Temperature int        `json:"temperature"`
	Humidity    int        `json:"humidity"`
	Light       int        `json:"light"`
	Sound       int        `json:"sound"`
	Gas         int        `json:"gas"`
	Relay       string     `json:"relay"`
	RelayLabel  string     `json:"relay_label"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func FromDeviceState(state domain.DeviceState) DeviceStateResponse {
	response := DeviceStateResponse{
		DeviceID:    state.DeviceID.String(),
		HasSample:   state.HasSample(),
		Temperature: state.Sample.Temperature,
		Humidity:    state.Sample.Humidity,
		Light:       state.Sample.Light,
		Sound:       state.Sample.Sound,
		Gas:         state.Sample.Gas,
		Relay:       state.Actuator.String(),
		RelayLabel:  state.Actuator.Label(),
	}
	if state.HasSample() {
		updatedAt := state.UpdatedAt.UTC()
		response.UpdatedAt = &updatedAt
	}
	return response
}

// StateEvent is the websocket frame pushed to presentation clients.
type StateEvent struct {
	Type      string    `json:"type"`
	DeviceID  string    `json:"device_id"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type SampleData struct {
	Temperature int `json:"temperature"`
	Humidity    int `json:"humidity"`
	Light       int `json:"light"`
	Sound       int `json:"sound"`
	Gas         int `json:"gas"`
}

type RelayData struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}

func FromSnapshot(eventType string, snapshot domain.StateSnapshot) StateEvent {
	return StateEvent{
		Type:      eventType,
		DeviceID:  snapshot.DeviceID.String(),
		Timestamp: snapshot.UpdatedAt.UTC(),
		Data: SampleData{
			Temperature: snapshot.Temperature,
			Humidity:    snapshot.Humidity,
			Light:       snapshot.Light,
			Sound:       snapshot.Sound,
			Gas:         snapshot.Gas,
		},
	}
}

func FromTransition(eventType string, transition domain.ActuatorTransition) StateEvent {
	return StateEvent{
		Type:      eventType,
		DeviceID:  transition.DeviceID.String(),
		Timestamp: transition.At.UTC(),
		Data: RelayData{
			From:  transition.From.String(),
			To:    transition.To.String(),
			Label: transition.Label,
		},
	}
}

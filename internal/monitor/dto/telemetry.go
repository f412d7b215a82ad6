package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"relay-server/internal/monitor/domain"
)

var (
	ErrEmptyPayload = errors.New("empty payload")
	ErrMissingField = errors.New("missing field")
)

// Telemetry is the wire format published by the device. Field names are matched
// case-insensitively and unknown fields are ignored.
type Telemetry struct {
	DeviceName  *string   `json:"DeviceName"`
	Temperature *intField `json:"temperature"`
	Humidity    *intField `json:"humidity"`
	Light       *intField `json:"light"`
	Sound       *intField `json:"sound"`
	Gas         *intField `json:"gas"`
}

// intField accepts integral JSON numbers and numeric strings.
type intField int

func (f *intField) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		return fmt.Errorf("null value: %w", ErrMissingField)
	}

	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		raw = []byte(s)
	}

	value, err := strconv.Atoi(string(raw))
	if err != nil {
		return fmt.Errorf("parsing integer %q: %w", string(raw), err)
	}

	*f = intField(value)
	return nil
}

// DecodeSample decodes a telemetry payload. The sample is only returned when every
// field is present and valid.
func DecodeSample(payload []byte) (domain.SensorSample, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return domain.SensorSample{}, ErrEmptyPayload
	}

	var telemetry Telemetry
	if err := json.Unmarshal(payload, &telemetry); err != nil {
		return domain.SensorSample{}, fmt.Errorf("unmarshaling telemetry: %w", err)
	}

	return telemetry.ToSample()
}

func (t Telemetry) ToSample() (domain.SensorSample, error) {
	missing := make([]string, 0)
	if t.DeviceName == nil {
		missing = append(missing, "DeviceName")
	}
	fields := []struct {
		name  string
		value *intField
	}{
		{"temperature", t.Temperature},
		{"humidity", t.Humidity},
		{"light", t.Light},
		{"sound", t.Sound},
		{"gas", t.Gas},
	}
	for _, field := range fields {
		if field.value == nil {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return domain.SensorSample{}, fmt.Errorf("%w: %v", ErrMissingField, missing)
	}

	return domain.SensorSample{
		DeviceID:    domain.ID(*t.DeviceName),
		Temperature: int(*t.Temperature),
		Humidity:    int(*t.Humidity),
		Light:       int(*t.Light),
		Sound:       int(*t.Sound),
		Gas:         int(*t.Gas),
	}, nil
}

// FromSample builds the wire representation of a sample.
func FromSample(sample domain.SensorSample) Telemetry {
	name := sample.DeviceID.String()
	temperature := intField(sample.Temperature)
	humidity := intField(sample.Humidity)
	light := intField(sample.Light)
	sound := intField(sample.Sound)
	gas := intField(sample.Gas)

	return Telemetry{
		DeviceName:  &name,
		Temperature: &temperature,
		Humidity:    &humidity,
		Light:       &light,
		Sound:       &sound,
		Gas:         &gas,
	}
}

func EncodeSample(sample domain.SensorSample) ([]byte, error) {
	data, err := json.Marshal(FromSample(sample))
	if err != nil {
		return nil, fmt.Errorf("marshaling telemetry: %w", err)
	}

	return data, nil
}

package simulator

import (
	"context"
	"log/slog"
	"time"

	"relay-server/internal/infra/async"
	"relay-server/internal/infra/stream"
	"relay-server/internal/monitor/domain"
	"relay-server/internal/monitor/dto"
)

const (
	DefaultOtherDeviceID = "OTHER"

	_defaultInterval  = 2 * time.Second
	_defaultBase      = 22
	_defaultAmplitude = 8
)

type Options struct {
	DeviceID      string
	OtherDeviceID string
	Interval      time.Duration
	// Temperatures sweep between Base-Amplitude and Base+Amplitude one degree per tick.
	Base      int
	Amplitude int
	// Every Nth tick also emits a sample for OtherDeviceID. Zero disables it.
	OtherEvery int
	// Every Nth tick also emits a payload that cannot be decoded. Zero disables it.
	MalformedEvery int
}

var _ async.Worker = (*TelemetrySimulator)(nil)

// TelemetrySimulator feeds a producer with synthetic samples for local runs.
type TelemetrySimulator struct {
	opts     Options
	producer stream.Producer
	tick     int
}

func NewTelemetrySimulator(opts Options, producer stream.Producer) *TelemetrySimulator {
	if opts.Interval <= 0 {
		opts.Interval = _defaultInterval
	}
	if opts.Base == 0 && opts.Amplitude == 0 {
		opts.Base = _defaultBase
		opts.Amplitude = _defaultAmplitude
	}
	if opts.OtherDeviceID == "" {
		opts.OtherDeviceID = DefaultOtherDeviceID
	}

	return &TelemetrySimulator{
		opts:     opts,
		producer: producer,
	}
}

func (s *TelemetrySimulator) Run(ctx context.Context, done func()) {
	defer done()

	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	slog.Info("telemetry simulator started",
		slog.String("device_id", s.opts.DeviceID),
		slog.Duration("interval", s.opts.Interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("telemetry simulator cancelled")
			return
		case <-ticker.C:
			s.Step(ctx)
		}
	}
}

// Step emits the messages of one tick and returns how many were sent.
func (s *TelemetrySimulator) Step(ctx context.Context) int {
	s.tick++
	sent := 0

	sample := s.Sample(s.tick)
	if s.send(ctx, s.opts.DeviceID, sample) {
		sent++
	}

	if every(s.opts.OtherEvery, s.tick) {
		other := sample
		other.DeviceID = domain.ID(s.opts.OtherDeviceID)
		other.Temperature = 99
		if s.send(ctx, s.opts.OtherDeviceID, other) {
			sent++
		}
	}

	if every(s.opts.MalformedEvery, s.tick) {
		if s.sendRaw(ctx, s.opts.DeviceID, []byte(`{"DeviceName":"`+s.opts.DeviceID+`","temperature":"warm"}`)) {
			sent++
		}
	}

	return sent
}

// Sample returns the synthetic reading of the given tick.
func (s *TelemetrySimulator) Sample(tick int) domain.SensorSample {
	return domain.SensorSample{
		DeviceID:    domain.ID(s.opts.DeviceID),
		Temperature: triangle(tick, s.opts.Base, s.opts.Amplitude),
		Humidity:    40 + tick%10,
		Light:       300 + (tick*37)%200,
		Sound:       10 + tick%5,
		Gas:         tick % 3,
	}
}

func (s *TelemetrySimulator) send(ctx context.Context, deviceID string, sample domain.SensorSample) bool {
	payload, err := dto.EncodeSample(sample)
	if err != nil {
		slog.Error("encoding simulated sample", slog.Any("error", err))
		return false
	}
	return s.sendRaw(ctx, deviceID, payload)
}

func (s *TelemetrySimulator) sendRaw(ctx context.Context, deviceID string, payload []byte) bool {
	if err := s.producer.Send(ctx, deviceID, payload); err != nil {
		slog.Error("sending simulated telemetry",
			slog.String("device_id", deviceID),
			slog.Any("error", err))
		return false
	}
	slog.Debug("simulated telemetry sent",
		slog.String("device_id", deviceID),
		slog.String("payload", string(payload)))
	return true
}

func (s *TelemetrySimulator) Shutdown() {
	slog.Info("telemetry simulator shutdown")
}

func every(n, tick int) bool {
	return n > 0 && tick%n == 0
}

// triangle walks from base-amplitude up to base+amplitude and back, one step per tick.
func triangle(tick, base, amplitude int) int {
	if amplitude <= 0 {
		return base
	}
	period := 4 * amplitude
	phase := tick % period
	switch {
	case phase <= amplitude:
		return base + phase
	case phase <= 3*amplitude:
		return base + 2*amplitude - phase
	default:
		return base + phase - 4*amplitude
	}
}

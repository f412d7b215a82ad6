package usecases

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"relay-server/cmd/config"
	"relay-server/internal/infra/async"
	"relay-server/internal/monitor/domain"
)

var ErrInvalidMetricConfig = errors.New("invalid metric config")

// deviceStateValues maps each device_state event to the type of its value.
var deviceStateValues = map[string]reflect.Type{
	SampleUpdatedEvent:   reflect.TypeOf(domain.StateSnapshot{}),
	ActuatorChangedEvent: reflect.TypeOf(domain.ActuatorTransition{}),
}

type MetricWorkerFactory struct {
	broker async.InternalBroker
}

func NewMetricWorkerFactory(broker async.InternalBroker) *MetricWorkerFactory {
	return &MetricWorkerFactory{
		broker: broker,
	}
}

// CreateWorkers builds one worker per configured metric. Entries are checked
// against the device_state events before any worker is built, so a typo in a
// property name fails at startup instead of recording zeros.
func (f *MetricWorkerFactory) CreateWorkers(cfg config.MetricsConfig) ([]*MetricWorker, error) {
	for _, workerCfg := range cfg {
		if err := validateMetricConfig(workerCfg); err != nil {
			slog.Error("invalid metric worker",
				slog.String("name", workerCfg.Name),
				slog.Any("error", err))
			return nil, err
		}
	}

	workers := make([]*MetricWorker, 0, len(cfg))
	for _, workerCfg := range cfg {
		worker, err := NewMetricWorker(workerCfg, f.broker)
		if err != nil {
			return nil, fmt.Errorf("metric %q: %w", workerCfg.Name, err)
		}
		slog.Info("metric worker created",
			slog.String("name", workerCfg.Name),
			slog.String("type", workerCfg.Type),
			slog.String("event", workerCfg.Event))
		workers = append(workers, worker)
	}

	return workers, nil
}

func validateMetricConfig(cfg config.MetricWorkerConfig) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: metric %q: %s", ErrInvalidMetricConfig, cfg.Name, fmt.Sprintf(format, args...))
	}

	if cfg.Name == "" {
		return invalid("name is required")
	}
	if cfg.Topic != DeviceStateTopic {
		return invalid("topic %q is not %q", cfg.Topic, DeviceStateTopic)
	}

	valueType, known := deviceStateValues[cfg.Event]
	if cfg.Event != "" && !known {
		return invalid("unknown event %q", cfg.Event)
	}

	switch cfg.Type {
	case "counter":
	case "gauge", "histogram":
		if !known {
			return invalid("%s needs an event to read %q from", cfg.Type, cfg.ValuePropertyName)
		}
		kind, ok := propertyKind(valueType, cfg.ValuePropertyName)
		if !ok {
			return invalid("%s has no property %q", cfg.Event, cfg.ValuePropertyName)
		}
		if !isNumericKind(kind) {
			return invalid("property %q of %s is not numeric", cfg.ValuePropertyName, cfg.Event)
		}
	default:
		return invalid("unsupported metric type %q", cfg.Type)
	}

	for label, path := range cfg.CustomAttributes {
		if !known {
			continue
		}
		if _, ok := propertyKind(valueType, path); !ok {
			return invalid("attribute %s: %s has no property %q", label, cfg.Event, path)
		}
	}

	return nil
}

func propertyKind(t reflect.Type, path string) (reflect.Kind, bool) {
	if path == "" {
		return reflect.Invalid, false
	}
	for _, name := range strings.Split(path, ".") {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return reflect.Invalid, false
		}
		field, ok := t.FieldByName(name)
		if !ok || !field.IsExported() {
			return reflect.Invalid, false
		}
		t = field.Type
	}
	return t.Kind(), true
}

func isNumericKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Bool:
		return true
	}
	return false
}

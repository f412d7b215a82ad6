package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"relay-server/cmd/config"
	"relay-server/internal/infra/async"
	"relay-server/internal/infra/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var _ async.Worker = (*MetricWorker)(nil)

// MetricWorker turns device state events into one configured otel instrument.
type MetricWorker struct {
	config config.MetricWorkerConfig
	broker async.InternalBroker
	record func(ctx context.Context, msg async.BrokerMessage)
}

func NewMetricWorker(cfg config.MetricWorkerConfig, broker async.InternalBroker) (*MetricWorker, error) {
	meter := otel.Meter(_instrumentationName)
	attributes := attributeExtractor(cfg.CustomAttributes)

	var record func(ctx context.Context, msg async.BrokerMessage)
	switch cfg.Type {
	case "counter":
		counter, err := meter.Float64Counter(cfg.Name)
		if err != nil {
			return nil, err
		}
		record = func(ctx context.Context, msg async.BrokerMessage) {
			counter.Add(ctx, 1, metric.WithAttributes(attributes(msg)...))
		}
	case "gauge":
		gauge, err := meter.Float64Gauge(cfg.Name)
		if err != nil {
			return nil, err
		}
		record = func(ctx context.Context, msg async.BrokerMessage) {
			value := utils.ExtractFloat64Value(msg.Value, cfg.ValuePropertyName)
			gauge.Record(ctx, value, metric.WithAttributes(attributes(msg)...))
		}
	case "histogram":
		histogram, err := meter.Float64Histogram(cfg.Name)
		if err != nil {
			return nil, err
		}
		record = func(ctx context.Context, msg async.BrokerMessage) {
			value := utils.ExtractFloat64Value(msg.Value, cfg.ValuePropertyName)
			histogram.Record(ctx, value, metric.WithAttributes(attributes(msg)...))
		}
	default:
		return nil, fmt.Errorf("unsupported metric type: %s", cfg.Type)
	}

	return &MetricWorker{
		config: cfg,
		broker: broker,
		record: record,
	}, nil
}

func attributeExtractor(customAttributes map[string]string) func(msg async.BrokerMessage) []attribute.KeyValue {
	return func(msg async.BrokerMessage) []attribute.KeyValue {
		attributes := make([]attribute.KeyValue, 0, len(customAttributes))
		for label, path := range customAttributes {
			if value := utils.ExtractStringValue(msg.Value, path); value != "" {
				attributes = append(attributes, attribute.String(label, value))
			}
		}
		return attributes
	}
}

func (w *MetricWorker) Run(ctx context.Context, done func()) {
	defer done()

	topic := async.BrokerTopicName(w.config.Topic)
	slog.Info("starting metric worker",
		slog.String("name", w.config.Name),
		slog.String("type", w.config.Type),
		slog.String("topic", w.config.Topic))

	subscription, err := w.broker.Subscribe(topic)
	if err != nil {
		slog.Error("failed to subscribe to topic",
			slog.String("topic", w.config.Topic),
			slog.Any("error", err))
		return
	}
	defer func() {
		if err := w.broker.Unsubscribe(topic, subscription); err != nil {
			slog.Debug("metric worker unsubscribe", slog.String("name", w.config.Name), slog.Any("error", err))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("metric worker cancelled", slog.String("name", w.config.Name))
			return
		case msg, ok := <-subscription.Receiver:
			if !ok {
				return
			}
			w.Record(ctx, msg)
		}
	}
}

// Record applies the instrument to msg when the event matches the configured one.
func (w *MetricWorker) Record(ctx context.Context, msg async.BrokerMessage) bool {
	if w.config.Event != "" && w.config.Event != msg.Event {
		return false
	}
	w.record(ctx, msg)
	return true
}

func (w *MetricWorker) Shutdown() {
	slog.Info("metric worker shutdown", slog.String("name", w.config.Name))
}

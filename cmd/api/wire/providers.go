package wire

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"relay-server/cmd/config"
	"relay-server/internal/infra/cache"
	"relay-server/internal/infra/mqtt"
	"relay-server/internal/infra/stream"
	"relay-server/internal/monitor/communication"
	"relay-server/internal/monitor/domain"
	"relay-server/internal/monitor/persistence"
	"relay-server/internal/monitor/simulator"
	"relay-server/internal/monitor/usecases"
)

const (
	_localPartitions = 2
	_clientID        = "relay-server"
)

type Environment string

const LocalEnvironment Environment = "local"

// ControlLoop holds the singletons shared by the workers and the HTTP surface.
type ControlLoop struct {
	Stream     stream.Stream
	Store      *usecases.SimpleDeviceStateStore
	Controller *usecases.ThresholdController
	Dispatcher usecases.CommandDispatcher
	Telemetry  *usecases.TelemetryWorker
}

// Close releases the telemetry stream and the dispatcher transport. Call it once
// the telemetry worker has returned.
func (l *ControlLoop) Close() error {
	var errs []error
	if err := l.Stream.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing telemetry stream: %w", err))
	}
	if closer, ok := l.Dispatcher.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing command dispatcher: %w", err))
		}
	}
	return errors.Join(errs...)
}

func provideAppConfig() config.AppConfig {
	return config.LoadConfig()
}

func provideEnvironment() Environment {
	env, ok := os.LookupEnv("ENV")
	if !ok {
		env = "production"
	}
	return Environment(env)
}

func provideDeviceID(cfg config.AppConfig) (domain.ID, error) {
	if cfg.Control.DeviceID == "" {
		return "", errors.New("control.device_id is required")
	}
	return domain.ID(cfg.Control.DeviceID), nil
}

func provideThresholdConfig(cfg config.AppConfig) *domain.ThresholdConfig {
	return domain.NewThresholdConfig(cfg.Control.TemperatureThreshold)
}

func provideStream(cfg config.AppConfig, env Environment) (stream.Stream, error) {
	return stream.NewStream(stream.FactoryOptions{
		Environment:     string(env),
		LocalPartitions: _localPartitions,
		Kafka: stream.KafkaStreamOptions{
			Brokers:        cfg.Kafka.Brokers,
			Topic:          cfg.Telemetry.Topic,
			ClientID:       _clientID,
			DeviceIDHeader: cfg.Telemetry.DeviceIDHeader,
			PollInterval:   cfg.Telemetry.PollInterval,
		},
	})
}

func provideCommandDispatcher(cfg config.AppConfig, env Environment) (usecases.CommandDispatcher, error) {
	transport := cfg.Dispatcher.Transport
	if env == LocalEnvironment {
		transport = "log"
	}

	slog.Info("command dispatcher selected", slog.String("transport", transport))
	switch transport {
	case "log":
		return communication.NewLogCommandDispatcher(), nil
	case "kafka":
		return communication.NewKafkaCommandDispatcher(cfg.Kafka.Brokers, cfg.Kafka.CommandTopic)
	case "mqtt":
		client, err := mqtt.NewSimpleClient(mqtt.SimpleClientOpts{
			Broker:   cfg.MQTTClient.Broker,
			ClientID: cfg.MQTTClient.ClientID,
			Username: cfg.MQTTClient.Username,
			Password: cfg.MQTTClient.Password, //pragma: allowlist secret
		})
		if err != nil {
			return nil, err
		}
		return communication.NewMQTTCommandDispatcher(client, cfg.Dispatcher.TopicPrefix), nil
	default:
		return nil, fmt.Errorf("unsupported dispatcher transport: %s", transport)
	}
}

func provideTelemetryWorkerOptions(cfg config.AppConfig, deviceID domain.ID) usecases.TelemetryWorkerOptions {
	return usecases.TelemetryWorkerOptions{
		DeviceID:            deviceID,
		ReceiveErrorBackoff: cfg.Telemetry.ReceiveErrorBackoff,
	}
}

func provideRedisCache(cfg config.AppConfig) (*cache.RedisCache, error) {
	redisConfig := cache.DefaultRedisConfig()
	if cfg.Redis.Addr != "" {
		redisConfig.Addr = cfg.Redis.Addr
	}
	redisConfig.Password = cfg.Redis.Password
	redisConfig.DB = cfg.Redis.DB
	return cache.NewRedisCache(redisConfig)
}

func provideSnapshotRepositoryConfig() persistence.RedisSnapshotRepositoryConfig {
	return persistence.DefaultRedisSnapshotRepositoryConfig()
}

func provideSimulatorOptions(cfg config.AppConfig) simulator.Options {
	return simulator.Options{
		DeviceID:       cfg.Control.DeviceID,
		Base:           cfg.Control.TemperatureThreshold,
		Amplitude:      4,
		OtherEvery:     5,
		MalformedEvery: 7,
	}
}

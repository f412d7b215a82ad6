package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	_defaultHTTPAddr            = ":3000"
	_defaultDeviceIDHeader      = "iothub-connection-device-id"
	_defaultPollInterval        = time.Second
	_defaultReceiveErrorBackoff = time.Second
	_defaultCommandTopic        = "device_commands"
	_defaultTopicPrefix         = "devices"
	_defaultTransport           = "mqtt"

	_thresholdKey = "control.temperature_threshold"
)

var ErrThresholdNotSet = errors.New(_thresholdKey + " is not set")

var loadConfigOnce sync.Once
var configInstance AppConfig

func LoadConfig() AppConfig {
	loadConfigOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			slog.Debug("no .env file loaded", slog.Any("error", err))
		}
		viper.SetEnvPrefix("relay_server")
		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.SetConfigName("server")
		viper.AddConfigPath("config")
		viper.AddConfigPath("/config")
		setDefaults()
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
		threshold, err := readThreshold()
		if err != nil {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
		configInstance = readAppConfig()
		configInstance.Control.TemperatureThreshold = threshold
	})

	return configInstance
}

func setDefaults() {
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("http.addr", _defaultHTTPAddr)
	viper.SetDefault("telemetry.device_id_header", _defaultDeviceIDHeader)
	viper.SetDefault("telemetry.poll_interval", _defaultPollInterval)
	viper.SetDefault("telemetry.receive_error_backoff", _defaultReceiveErrorBackoff)
	viper.SetDefault("kafka.command_topic", _defaultCommandTopic)
	viper.SetDefault("dispatcher.transport", _defaultTransport)
	viper.SetDefault("dispatcher.topic_prefix", _defaultTopicPrefix)
}

func readAppConfig() AppConfig {
	return AppConfig{
		General: GeneralConfig{
			LogLevel: viper.GetString("general.log_level"),
		},
		HTTP: HTTPConfig{
			Addr: viper.GetString("http.addr"),
		},
		Control: ControlConfig{
			DeviceID: viper.GetString("control.device_id"),
		},
		Telemetry: TelemetryConfig{
			Topic:               viper.GetString("telemetry.topic"),
			DeviceIDHeader:      viper.GetString("telemetry.device_id_header"),
			PollInterval:        viper.GetDuration("telemetry.poll_interval"),
			ReceiveErrorBackoff: viper.GetDuration("telemetry.receive_error_backoff"),
		},
		MQTTClient: MQTTClientConfig{
			Broker:   viper.GetString("mqtt_client.broker"),
			ClientID: viper.GetString("mqtt_client.client_id"),
			Username: viper.GetString("mqtt_client.username"),
			Password: viper.GetString("mqtt_client.password"),
		},
		Kafka: KafkaConfig{
			Brokers:      viper.GetStringSlice("kafka.brokers"),
			CommandTopic: viper.GetString("kafka.command_topic"),
		},
		Dispatcher: DispatcherConfig{
			Transport:   viper.GetString("dispatcher.transport"),
			TopicPrefix: viper.GetString("dispatcher.topic_prefix"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("redis.enabled"),
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Metrics: readMetrics(),
	}
}

func readMetrics() MetricsConfig {
	var metrics MetricsConfig
	if err := viper.UnmarshalKey("metrics", &metrics); err != nil {
		slog.Error("invalid metrics section", slog.Any("error", err))
		return nil
	}
	return metrics
}

// WatchThreshold calls onChange with the new control.temperature_threshold every
// time the config file is written and the value actually changed. A missing or
// non-integer value is logged and the current threshold is kept.
func WatchThreshold(current int, onChange func(threshold int)) {
	viper.OnConfigChange(newThresholdReloader(current, onChange))
	viper.WatchConfig()
}

func newThresholdReloader(current int, onChange func(threshold int)) func(fsnotify.Event) {
	var mu sync.Mutex
	last := current
	return func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}

		mu.Lock()
		defer mu.Unlock()

		threshold, err := readThreshold()
		if err != nil {
			slog.Warn("temperature threshold not reloaded",
				slog.String("file", e.Name),
				slog.Int("threshold", last),
				slog.Any("error", err))
			return
		}
		if threshold == last {
			return
		}
		slog.Info("temperature threshold reloaded",
			slog.String("file", e.Name),
			slog.Int("previous", last),
			slog.Int("threshold", threshold))
		last = threshold
		onChange(threshold)
	}
}

// readThreshold accepts integers and integral strings only. viper.GetInt would
// turn anything else into 0.
func readThreshold() (int, error) {
	raw := viper.Get(_thresholdKey)
	switch value := raw.(type) {
	case nil:
		return 0, ErrThresholdNotSet
	case bool:
		return 0, fmt.Errorf("%s: %v is not an integer", _thresholdKey, value)
	case float32, float64:
		f := cast.ToFloat64(value)
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("%s: %v is not an integer", _thresholdKey, value)
		}
	}

	threshold, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", _thresholdKey, err)
	}
	return threshold, nil
}

type AppConfig struct {
	General    GeneralConfig
	HTTP       HTTPConfig
	Control    ControlConfig
	Telemetry  TelemetryConfig
	MQTTClient MQTTClientConfig
	Kafka      KafkaConfig
	Dispatcher DispatcherConfig
	Redis      RedisConfig
	Metrics    MetricsConfig
}

type GeneralConfig struct {
	LogLevel string
}

type HTTPConfig struct {
	Addr string
}

type ControlConfig struct {
	DeviceID             string
	TemperatureThreshold int
}

type TelemetryConfig struct {
	Topic               string
	DeviceIDHeader      string
	PollInterval        time.Duration
	ReceiveErrorBackoff time.Duration
}

type MQTTClientConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
}

type KafkaConfig struct {
	Brokers      []string
	CommandTopic string
}

type DispatcherConfig struct {
	Transport   string
	TopicPrefix string
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type MetricsConfig []MetricWorkerConfig

type MetricWorkerConfig struct {
	Name              string            `mapstructure:"name"`
	Type              string            `mapstructure:"type"`
	Topic             string            `mapstructure:"topic"`
	Event             string            `mapstructure:"event"`
	ValuePropertyName string            `mapstructure:"value_property_name"`
	CustomAttributes  map[string]string `mapstructure:"custom_attributes"`
}

package mqtt

import (
	"fmt"
	"log/slog"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

//go:generate mockgen -source=client.go -destination=../../../test/unit/doubles/infra/mqtt/client_mock.go -package=mqtt

const (
	_defaultQoS       = 0 // At most once
	_defaultRetained  = false
	_publishTimeout   = 5 * time.Second
	_connectTimeout   = 5 * time.Second
	_disconnectWaitMs = 5 * 1000
)

type Client interface {
	Publish(topic string, payload []byte) error
	Disconnect()
}

type SimpleClientOpts struct {
	Broker   string
	ClientID string
	Username string
	Password string
}

// NewSimpleClient connects to the broker and keeps reconnecting on its own
// after the first successful connection.
func NewSimpleClient(opts SimpleClientOpts) (*SimpleClient, error) {
	onConnectHandler := func(_ paho.Client) {
		slog.Info("connected to MQTT broker", slog.String("broker", opts.Broker))
	}

	onConnectionLostHandler := func(_ paho.Client, err error) {
		slog.Error("connection lost to MQTT broker", slog.Any("error", err))
	}

	pahoOpts := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetUsername(opts.Username).
		SetPassword(opts.Password).
		SetOnConnectHandler(onConnectHandler).
		SetAutoReconnect(true).
		SetConnectionLostHandler(onConnectionLostHandler).
		SetKeepAlive(10 * time.Second).
		SetConnectTimeout(_connectTimeout)

	client := paho.NewClient(pahoOpts)
	token := client.Connect()
	if !token.WaitTimeout(_connectTimeout) {
		return nil, fmt.Errorf("connecting to %s: timeout", opts.Broker)
	}
	if token.Error() != nil {
		return nil, fmt.Errorf("connecting to %s: %w", opts.Broker, token.Error())
	}

	return &SimpleClient{client: client}, nil
}

var _ Client = (*SimpleClient)(nil)

type SimpleClient struct {
	client paho.Client
}

func (c *SimpleClient) Disconnect() {
	c.client.Disconnect(uint(_disconnectWaitMs))
}

// Publish sends payload as is, QoS 0 and not retained.
func (c *SimpleClient) Publish(topic string, payload []byte) error {
	token := c.client.Publish(topic, _defaultQoS, _defaultRetained, payload)
	if !token.WaitTimeout(_publishTimeout) {
		return fmt.Errorf("publishing to topic %s: timeout", topic)
	}
	if token.Error() != nil {
		return fmt.Errorf("publishing to topic %s: %w", topic, token.Error())
	}

	return nil
}

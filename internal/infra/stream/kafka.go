package stream

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Shopify/sarama"
)

const (
	maxRetries int = 10

	DefaultDeviceIDHeader = "iothub-connection-device-id"
	_defaultPollInterval  = time.Second
)

type KafkaStreamOptions struct {
	Brokers        []string
	Topic          string
	ClientID       string
	DeviceIDHeader string
	PollInterval   time.Duration
}

func newSaramaConfig(clientID string) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_0_0_0
	if clientID != "" {
		cfg.ClientID = clientID
	}
	cfg.Consumer.Return.Errors = true
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Partitioner = sarama.NewHashPartitioner
	return cfg
}

func newSaramaClient(brokers []string, cfg *sarama.Config) (sarama.Client, error) {
	var lastErr error
	for try := 0; try < maxRetries; try++ {
		slog.Debug("connecting to kafka brokers", slog.String("brokers", strings.Join(brokers, ",")))
		client, err := sarama.NewClient(brokers, cfg)
		if err == nil {
			return client, nil
		}
		lastErr = err
		time.Sleep(5 * time.Second)
	}

	return nil, fmt.Errorf("🤦‍♂️ imposible to connect to kafka brokers after %d retries: %w", maxRetries, lastErr)
}

var _ Stream = (*KafkaStream)(nil)

// KafkaStream reads a topic partition by partition without a consumer group,
// so every instance sees every message from its start offset on.
type KafkaStream struct {
	client         sarama.Client
	consumer       sarama.Consumer
	topic          string
	deviceIDHeader string
	pollInterval   time.Duration
}

func NewKafkaStream(opts KafkaStreamOptions) (*KafkaStream, error) {
	client, err := newSaramaClient(opts.Brokers, newSaramaConfig(opts.ClientID))
	if err != nil {
		return nil, err
	}

	consumer, err := sarama.NewConsumerFromClient(client)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("creating kafka consumer: %w", err)
	}

	return newKafkaStream(client, consumer, opts), nil
}

func newKafkaStream(client sarama.Client, consumer sarama.Consumer, opts KafkaStreamOptions) *KafkaStream {
	header := opts.DeviceIDHeader
	if header == "" {
		header = DefaultDeviceIDHeader
	}
	poll := opts.PollInterval
	if poll <= 0 {
		poll = _defaultPollInterval
	}

	return &KafkaStream{
		client:         client,
		consumer:       consumer,
		topic:          opts.Topic,
		deviceIDHeader: header,
		pollInterval:   poll,
	}
}

func (s *KafkaStream) Partitions(_ context.Context) ([]Partition, error) {
	ids, err := s.consumer.Partitions(s.topic)
	if err != nil {
		return nil, fmt.Errorf("listing partitions of %s: %w", s.topic, err)
	}

	partitions := make([]Partition, len(ids))
	for i, id := range ids {
		partitions[i] = Partition(id)
	}
	return partitions, nil
}

func (s *KafkaStream) OpenPartition(_ context.Context, partition Partition, position StartPosition) (PartitionReceiver, error) {
	offset := sarama.OffsetNewest
	if position == StartFromBeginning {
		offset = sarama.OffsetOldest
	}

	pc, err := s.consumer.ConsumePartition(s.topic, int32(partition), offset)
	if err != nil {
		return nil, fmt.Errorf("consuming partition %d of %s: %w", partition, s.topic, err)
	}

	slog.Info("partition receiver opened",
		slog.String("topic", s.topic),
		slog.Int("partition", int(partition)))

	return newKafkaPartitionReceiver(pc, s.deviceIDHeader, s.pollInterval), nil
}

func (s *KafkaStream) Close() error {
	if err := s.consumer.Close(); err != nil {
		return fmt.Errorf("closing kafka consumer: %w", err)
	}
	if s.client != nil && !s.client.Closed() {
		return s.client.Close()
	}
	return nil
}

type kafkaPartitionReceiver struct {
	consumer       sarama.PartitionConsumer
	deviceIDHeader string
	pollInterval   time.Duration
}

func newKafkaPartitionReceiver(consumer sarama.PartitionConsumer, deviceIDHeader string, pollInterval time.Duration) *kafkaPartitionReceiver {
	return &kafkaPartitionReceiver{
		consumer:       consumer,
		deviceIDHeader: deviceIDHeader,
		pollInterval:   pollInterval,
	}
}

func (r *kafkaPartitionReceiver) Receive(ctx context.Context) (*Message, error) {
	timer := time.NewTimer(r.pollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case msg, ok := <-r.consumer.Messages():
		if !ok {
			return nil, ErrStreamClosed
		}
		return r.toMessage(msg), nil
	case consumerErr, ok := <-r.consumer.Errors():
		if !ok {
			return nil, ErrStreamClosed
		}
		return nil, fmt.Errorf("receiving from partition %d: %w", consumerErr.Partition, consumerErr.Err)
	case <-timer.C:
		return nil, nil
	}
}

func (r *kafkaPartitionReceiver) toMessage(msg *sarama.ConsumerMessage) *Message {
	deviceID := string(msg.Key)
	for _, header := range msg.Headers {
		if header != nil && string(header.Key) == r.deviceIDHeader {
			deviceID = string(header.Value)
			break
		}
	}

	return &Message{
		Partition:  Partition(msg.Partition),
		Offset:     msg.Offset,
		DeviceID:   deviceID,
		Payload:    msg.Value,
		EnqueuedAt: msg.Timestamp,
	}
}

func (r *kafkaPartitionReceiver) Close() error {
	return r.consumer.Close()
}

var _ Producer = (*KafkaProducer)(nil)

// KafkaProducer writes telemetry keyed by device id and tags every record with
// the device id header the receivers filter on.
type KafkaProducer struct {
	client         sarama.Client
	producer       sarama.SyncProducer
	topic          string
	deviceIDHeader string
}

func NewKafkaProducer(opts KafkaStreamOptions) (*KafkaProducer, error) {
	client, err := newSaramaClient(opts.Brokers, newSaramaConfig(opts.ClientID))
	if err != nil {
		return nil, err
	}

	producer, err := sarama.NewSyncProducerFromClient(client)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("creating kafka producer: %w", err)
	}

	kafkaProducer := newKafkaProducer(producer, opts)
	kafkaProducer.client = client
	return kafkaProducer, nil
}

func newKafkaProducer(producer sarama.SyncProducer, opts KafkaStreamOptions) *KafkaProducer {
	header := opts.DeviceIDHeader
	if header == "" {
		header = DefaultDeviceIDHeader
	}

	return &KafkaProducer{
		producer:       producer,
		topic:          opts.Topic,
		deviceIDHeader: header,
	}
}

func (p *KafkaProducer) Send(_ context.Context, deviceID string, payload []byte) error {
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(deviceID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(p.deviceIDHeader), Value: []byte(deviceID)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("sending telemetry: %w", err)
	}

	slog.Debug("telemetry sent",
		slog.String("device_id", deviceID),
		slog.Int("partition", int(partition)),
		slog.Int64("offset", offset))
	return nil
}

func (p *KafkaProducer) Close() error {
	err := p.producer.Close()
	if p.client != nil {
		if clientErr := p.client.Close(); err == nil {
			err = clientErr
		}
	}
	return err
}

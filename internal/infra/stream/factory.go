package stream

import "time"

type FactoryOptions struct {
	Environment     string
	Kafka           KafkaStreamOptions
	LocalPartitions int
}

// NewStream picks the in-memory stream for the local environment and Kafka otherwise.
func NewStream(opts FactoryOptions) (Stream, error) {
	if opts.Environment == "local" {
		return NewMemoryStream(MemoryStreamOptions{
			Partitions:   opts.LocalPartitions,
			PollInterval: pollIntervalOrDefault(opts.Kafka.PollInterval),
		}), nil
	}

	return NewKafkaStream(opts.Kafka)
}

func pollIntervalOrDefault(poll time.Duration) time.Duration {
	if poll <= 0 {
		return _defaultPollInterval
	}
	return poll
}

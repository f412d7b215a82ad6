package stream

import (
	"context"
	"errors"
	"time"
)

//go:generate mockgen -source=stream.go -destination=../../../test/unit/doubles/infra/stream/stream_mock.go -package=stream -mock_names=Stream=MockStream,PartitionReceiver=MockPartitionReceiver,Producer=MockProducer

var (
	ErrStreamClosed       = errors.New("stream closed")
	ErrUnknownPartition   = errors.New("unknown partition")
	ErrReceiverBufferFull = errors.New("receiver buffer full")
)

type Partition int32

type StartPosition int

const (
	// StartFromNow only delivers messages appended after the receiver was opened.
	StartFromNow StartPosition = iota
	StartFromBeginning
)

// Message is one raw telemetry event together with the metadata the transport
// attached to it.
type Message struct {
	Partition  Partition
	Offset     int64
	DeviceID   string
	Payload    []byte
	EnqueuedAt time.Time
}

// Stream is a partitioned, append-only telemetry source.
type Stream interface {
	Partitions(ctx context.Context) ([]Partition, error)
	OpenPartition(ctx context.Context, partition Partition, position StartPosition) (PartitionReceiver, error)
	Close() error
}

// PartitionReceiver pulls messages from a single partition in order.
// Receive returns a nil message and a nil error when the poll came back empty.
type PartitionReceiver interface {
	Receive(ctx context.Context) (*Message, error)
	Close() error
}

// Producer appends telemetry to the stream. Only the simulator uses it.
type Producer interface {
	Send(ctx context.Context, deviceID string, payload []byte) error
	Close() error
}

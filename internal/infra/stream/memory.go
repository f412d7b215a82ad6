package stream

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"
)

const _memoryReceiverBuffer = 256

var (
	_ Stream   = (*MemoryStream)(nil)
	_ Producer = (*MemoryStream)(nil)
)

// MemoryStream keeps partitions in process. It backs the local environment and tests.
type MemoryStream struct {
	mu           sync.RWMutex
	partitions   []*memoryPartition
	pollInterval time.Duration
	retention    int
	closed       bool
}

type memoryPartition struct {
	id        Partition
	offset    int64
	retained  []Message
	receivers map[*memoryReceiver]struct{}
}

type MemoryStreamOptions struct {
	Partitions int
	// PollInterval makes Receive return an empty poll after the given wait.
	// Zero blocks until a message arrives or the context is done.
	PollInterval time.Duration
	// Retention is how many of the latest messages per partition are kept for
	// StartFromBeginning. Zero keeps none.
	Retention int
}

func NewMemoryStream(opts MemoryStreamOptions) *MemoryStream {
	if opts.Partitions <= 0 {
		opts.Partitions = 1
	}

	partitions := make([]*memoryPartition, opts.Partitions)
	for i := range partitions {
		partitions[i] = &memoryPartition{
			id:        Partition(i),
			receivers: make(map[*memoryReceiver]struct{}),
		}
	}

	return &MemoryStream{
		partitions:   partitions,
		pollInterval: opts.PollInterval,
		retention:    max(opts.Retention, 0),
	}
}

func (s *MemoryStream) Partitions(_ context.Context) ([]Partition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStreamClosed
	}

	ids := make([]Partition, len(s.partitions))
	for i, p := range s.partitions {
		ids[i] = p.id
	}
	return ids, nil
}

func (s *MemoryStream) OpenPartition(_ context.Context, partition Partition, position StartPosition) (PartitionReceiver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStreamClosed
	}
	p, err := s.partition(partition)
	if err != nil {
		return nil, err
	}

	receiver := &memoryReceiver{
		stream:   s,
		messages: make(chan Message, _memoryReceiverBuffer),
	}
	if position == StartFromBeginning {
		for _, msg := range p.retained {
			select {
			case receiver.messages <- msg:
			default:
			}
		}
	}
	p.receivers[receiver] = struct{}{}
	receiver.partition = p

	return receiver, nil
}

// Publish appends a message to the given partition. Every open receiver gets
// the message; the ones with a full buffer miss it and an error reports how many.
func (s *MemoryStream) Publish(_ context.Context, partition Partition, deviceID string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStreamClosed
	}
	p, err := s.partition(partition)
	if err != nil {
		return err
	}

	msg := Message{
		Partition:  p.id,
		Offset:     p.offset,
		DeviceID:   deviceID,
		Payload:    payload,
		EnqueuedAt: time.Now(),
	}
	p.offset++
	s.retain(p, msg)

	dropped := 0
	for receiver := range p.receivers {
		select {
		case receiver.messages <- msg:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		return fmt.Errorf("%w: partition %d offset %d missed by %d receivers",
			ErrReceiverBufferFull, p.id, msg.Offset, dropped)
	}

	return nil
}

func (s *MemoryStream) retain(p *memoryPartition, msg Message) {
	if s.retention == 0 {
		return
	}
	if len(p.retained) == s.retention {
		copy(p.retained, p.retained[1:])
		p.retained = p.retained[:len(p.retained)-1]
	}
	p.retained = append(p.retained, msg)
}

// Send publishes to the partition the device id hashes to.
func (s *MemoryStream) Send(ctx context.Context, deviceID string, payload []byte) error {
	s.mu.RLock()
	count := len(s.partitions)
	s.mu.RUnlock()

	return s.Publish(ctx, PartitionFor(deviceID, count), deviceID, payload)
}

func (s *MemoryStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	for _, p := range s.partitions {
		for receiver := range p.receivers {
			receiver.closeLocked()
		}
	}

	return nil
}

func (s *MemoryStream) partition(partition Partition) (*memoryPartition, error) {
	if partition < 0 || int(partition) >= len(s.partitions) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPartition, partition)
	}
	return s.partitions[partition], nil
}

type memoryReceiver struct {
	stream    *MemoryStream
	partition *memoryPartition
	messages  chan Message
	closeOnce sync.Once
}

func (r *memoryReceiver) Receive(ctx context.Context) (*Message, error) {
	var timeout <-chan time.Time
	if r.stream.pollInterval > 0 {
		timer := time.NewTimer(r.stream.pollInterval)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case msg, ok := <-r.messages:
		if !ok {
			return nil, ErrStreamClosed
		}
		return &msg, nil
	case <-timeout:
		return nil, nil
	}
}

func (r *memoryReceiver) Close() error {
	r.stream.mu.Lock()
	defer r.stream.mu.Unlock()

	r.closeLocked()
	return nil
}

func (r *memoryReceiver) closeLocked() {
	r.closeOnce.Do(func() {
		delete(r.partition.receivers, r)
		close(r.messages)
	})
}

// PartitionFor maps a device id to a partition the same way for every producer.
func PartitionFor(deviceID string, partitions int) Partition {
	if partitions <= 1 {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(deviceID))
	return Partition(h.Sum32() % uint32(partitions))
}

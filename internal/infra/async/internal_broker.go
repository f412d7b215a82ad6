package async

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

const _defaultReceiverBuffer = 64

//go:generate mockgen -source=internal_broker.go -destination=../../../test/unit/doubles/infra/async/internal_broker_mock.go -package=async

type BrokerTopicName string

type BrokerMessage struct {
	Event string
	Value any
	Span  trace.Span
	Error error
}

type InternalBroker interface {
	Subscribe(topic BrokerTopicName) (Subscription, error)
	Unsubscribe(topic BrokerTopicName, subscription Subscription) error
	Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error
	Stop()
}

var _ InternalBroker = (*LocalBroker)(nil)

var ErrTopicNotFound = errors.New("topic not found")
var ErrSubscriptorNotFound = errors.New("subscriptor not found")

// NewLocalBroker returns an in-process broker. Messages are delivered in publish
// order to every subscriber; a subscriber whose buffer is full misses the message
// instead of blocking the publisher.
func NewLocalBroker() *LocalBroker {
	return &LocalBroker{
		topics: make(map[BrokerTopicName][]*subscriptor),
	}
}

type LocalBroker struct {
	mu     sync.RWMutex
	topics map[BrokerTopicName][]*subscriptor
}

type subscriptor struct {
	once         sync.Once
	active       bool
	subscription Subscription
	receiver     chan BrokerMessage
}

type Subscription struct {
	ID       string
	Receiver <-chan BrokerMessage
}

func (b *LocalBroker) Subscribe(topic BrokerTopicName) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	receiver := make(chan BrokerMessage, _defaultReceiverBuffer)
	subscription := Subscription{ID: uuid.NewString(), Receiver: receiver}
	b.topics[topic] = append(b.topics[topic], &subscriptor{
		subscription: subscription,
		receiver:     receiver,
		active:       true,
	})

	return subscription, nil
}

func (b *LocalBroker) Unsubscribe(topic BrokerTopicName, subscription Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscriptors, ok := b.topics[topic]
	if !ok {
		return ErrTopicNotFound
	}

	index := slices.IndexFunc(subscriptors, func(s *subscriptor) bool { return s.subscription.ID == subscription.ID })
	if index < 0 {
		return ErrSubscriptorNotFound
	}

	subscriptors[index].safeClose()

	return nil
}

func (b *LocalBroker) Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error {
	msg.Span = trace.SpanFromContext(ctx)

	b.mu.RLock()
	defer b.mu.RUnlock()

	subscriptors, ok := b.topics[topic]
	if !ok {
		return ErrTopicNotFound
	}

	for _, s := range subscriptors {
		if !s.active {
			continue
		}
		select {
		case s.receiver <- msg:
		default:
			slog.Warn("subscriber buffer full, message dropped",
				slog.String("topic", string(topic)),
				slog.String("subscription_id", s.subscription.ID),
				slog.String("event", msg.Event))
		}
	}

	return nil
}

func (b *LocalBroker) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, subscriptors := range b.topics {
		for _, s := range subscriptors {
			s.safeClose()
		}
	}
}

func (s *subscriptor) safeClose() {
	s.once.Do(func() {
		s.active = false
		close(s.receiver)
	})
}

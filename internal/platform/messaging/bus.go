package messaging

import (
	"context"
	"log/slog"
	"sync"

	contractsv1 "estatehub/contracts/gen/events/v1"
)

// Bus is the in-process event bus used when no broker is configured.
// Slow subscribers drop events instead of blocking publishers.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan contractsv1.Envelope
	buffer      int
	logger      *slog.Logger
}

func NewBus(buffer int, logger *slog.Logger) *Bus {
	if buffer <= 0 {
		buffer = 128
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subscribers: make(map[string][]chan contractsv1.Envelope),
		buffer:      buffer,
		logger:      logger,
	}
}

func (b *Bus) Publish(ctx context.Context, topic string, event contractsv1.Envelope) error {
	b.mu.RLock()
	subs := append([]chan contractsv1.Envelope(nil), b.subscribers[topic]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub <- event:
		default:
			b.logger.Warn("dropping event for slow subscriber",
				"event", "bus_publish_drop",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"event_id", event.EventID,
			)
		}
	}

	b.logger.Debug("event published",
		"event", "bus_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"topic", topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
	)
	return nil
}

// Subscribe registers handler until ctx is cancelled. consumerGroup only labels logs.
func (b *Bus) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, contractsv1.Envelope) error,
) error {
	ch := make(chan contractsv1.Envelope, b.buffer)

	b.mu.Lock()
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				b.removeSubscriber(topic, ch)
				return
			case event := <-ch:
				if err := handler(ctx, event); err != nil {
					b.logger.Error("consumer handler failed",
						"event", "bus_consume_failed",
						"module", "internal/platform/messaging",
						"layer", "platform",
						"topic", topic,
						"consumer_group", consumerGroup,
						"event_id", event.EventID,
						"event_type", event.EventType,
						"error", err.Error(),
					)
				}
			}
		}
	}()
	return nil
}

func (b *Bus) Close() error {
	return nil
}

func (b *Bus) removeSubscriber(topic string, target chan contractsv1.Envelope) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := b.subscribers[topic]
	if len(items) == 0 {
		return
	}
	filtered := make([]chan contractsv1.Envelope, 0, len(items))
	for _, item := range items {
		if item != target {
			filtered = append(filtered, item)
		}
	}
	b.subscribers[topic] = filtered
}

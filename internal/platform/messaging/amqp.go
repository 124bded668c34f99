package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	contractsv1 "estatehub/contracts/gen/events/v1"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQP publishes envelopes to a durable topic exchange, using the topic as
// routing key. Each consumer group owns one durable queue per topic.
type AMQP struct {
	conn     *amqp.Connection
	exchange string
	logger   *slog.Logger

	mu      sync.Mutex
	publish *amqp.Channel
}

func NewAMQP(url string, exchange string, logger *slog.Logger) (*AMQP, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQP{conn: conn, exchange: exchange, logger: logger, publish: ch}, nil
}

func (a *AMQP) Publish(ctx context.Context, topic string, event contractsv1.Envelope) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	err = a.publish.PublishWithContext(ctx, a.exchange, topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Type:         event.EventType,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (a *AMQP) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, contractsv1.Envelope) error,
) error {
	ch, err := a.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	queue := consumerGroup + "." + topic
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(queue, topic, a.exchange, false, nil); err != nil {
		_ = ch.Close()
		return fmt.Errorf("bind %s: %w", topic, err)
	}
	deliveries, err := ch.ConsumeWithContext(ctx, queue, "", false, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return fmt.Errorf("consume %s: %w", queue, err)
	}

	go func() {
		defer ch.Close()
		for delivery := range deliveries {
			a.handle(ctx, topic, consumerGroup, delivery, handler)
		}
	}()
	return nil
}

func (a *AMQP) handle(
	ctx context.Context,
	topic string,
	consumerGroup string,
	delivery amqp.Delivery,
	handler func(context.Context, contractsv1.Envelope) error,
) {
	var event contractsv1.Envelope
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		a.logger.Error("dropping malformed envelope",
			"event", "amqp_decode_failed",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", topic,
			"consumer_group", consumerGroup,
			"error", err.Error(),
		)
		_ = delivery.Nack(false, false)
		return
	}
	if err := handler(ctx, event); err != nil {
		a.logger.Error("consumer handler failed",
			"event", "amqp_consume_failed",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", topic,
			"consumer_group", consumerGroup,
			"event_id", event.EventID,
			"error", err.Error(),
		)
		_ = delivery.Nack(false, !delivery.Redelivered)
		return
	}
	_ = delivery.Ack(false)
}

func (a *AMQP) Close() error {
	a.mu.Lock()
	if a.publish != nil {
		_ = a.publish.Close()
	}
	a.mu.Unlock()
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}

package notification

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const eventsExchange = "wallet.events"

// AMQPNotifier publishes wallet events to a fanout exchange so downstream
// consumers (statements, alerts) can react without coupling to this service.
type AMQPNotifier struct {
	ch *amqp.Channel
}

// NewAMQPNotifier opens a channel and declares the events exchange.
func NewAMQPNotifier(conn *amqp.Connection) (*AMQPNotifier, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}

	if err := ch.ExchangeDeclare(eventsExchange, "fanout", true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPNotifier{ch: ch}, nil
}

// Send publishes the event as a persistent JSON message. The event kind rides
// along as the routing key for consumers that bind selectively.
func (n *AMQPNotifier) Send(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	return n.ch.PublishWithContext(ctx, eventsExchange, event.Kind, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// Close releases the underlying channel.
func (n *AMQPNotifier) Close() error {
	return n.ch.Close()
}

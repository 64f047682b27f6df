// Package queue_publisher publishes domain events to RabbitMQ.  Publishing
// is best effort: errors are returned with their stage attached and the
// caller decides whether to log them.
package queue_publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/court-metrics/internal/queue"
)

// Publisher emits match events.
type Publisher interface {
	PublishMatchRecorded(ctx context.Context, event q.MatchRecordedEvent) error
}

// Noop drops every event.  It is used when MATCH_EVENTS_ENABLED is off.
type Noop struct{}

func (Noop) PublishMatchRecorded(context.Context, q.MatchRecordedEvent) error { return nil }

// AMQP dials the broker per publish, which keeps the server free of
// long-lived broker state; match writes are rare enough for that.
type AMQP struct {
	URL string
}

func NewAMQP(url string) *AMQP {
	return &AMQP{URL: url}
}

// PublishMatchRecorded sends event to the match queue as a persistent message.
func (p *AMQP) PublishMatchRecorded(ctx context.Context, event q.MatchRecordedEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(q.MatchQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq declare queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode match event: %w", err)
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.MatchQueueName, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

// Package service provides outbound integrations used by handlers, such as
// publishing domain events to RabbitMQ.  Publish errors are logged and
// returned so callers can choose to ignore them without failing the main
// request flow.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/aiverse/aiverse-api/internal/queue"
)

// EventPublisher publishes domain events to RabbitMQ.  Each publish dials a
// fresh connection; generation volume is low enough that keeping a
// long-lived channel around is not worth the reconnect bookkeeping.
type EventPublisher struct {
	URL string
}

func NewEventPublisher(url string) *EventPublisher { return &EventPublisher{URL: url} }

// PublishGenerationCompleted publishes an event to the generation.completed
// queue.  The queue is declared durable and messages are persistent so
// usage accounting survives a broker restart.
func (p *EventPublisher) PublishGenerationCompleted(ctx context.Context, ev queue.GenerationCompletedEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.GenerationQueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.GenerationQueueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}

package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// UsageRecorder is the slice of the account store the consumer needs.
type UsageRecorder interface {
	IncrementGenerations(ctx context.Context, id string, delta uint64) error
}

// StartGenerationConsumer connects to RabbitMQ, declares the durable
// generation.completed queue and consumes it, incrementing each account's
// usage counter per event.  It runs a reconnect loop with exponential
// backoff and never returns under normal operation; processing errors are
// logged and the offending message rejected without requeue so one bad
// payload cannot wedge the queue.
func StartGenerationConsumer(url string, usage UsageRecorder) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("generation-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn, usage); err != nil {
			log.Printf("generation-consumer: consume loop ended: %v; reconnecting", err)
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, usage UsageRecorder) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("generation-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(GenerationQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(GenerationQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body, usage); err != nil {
			log.Printf("generation-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte, usage UsageRecorder) error {
	var ev GenerationCompletedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.AccountID == "" {
		return errors.New("event missing account id")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return usage.IncrementGenerations(ctx, ev.AccountID, 1)
}

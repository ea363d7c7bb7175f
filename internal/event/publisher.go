package event

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/streadway/amqp"
)

const (
	TypeUserRegistered     = "user.registered"
	TypeEntitlementUpdated = "entitlement.updated"
	TypeCodeCreated        = "code.created"
	TypeQuizSampled        = "quiz.sampled"
)

// EventPublisher pushes domain events onto a topic exchange. When no broker
// is configured it degrades to a no-op so callers never have to nil-check.
type EventPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	enabled  bool
}

func NewEventPublisher(amqpURL, exchange string) (*EventPublisher, error) {
	if amqpURL == "" || exchange == "" {
		log.Println("RabbitMQ not configured, events will not be published")
		return &EventPublisher{enabled: false}, nil
	}

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return &EventPublisher{conn: conn, channel: ch, exchange: exchange, enabled: true}, nil
}

// Publish sends the event with its type as the routing key. Publish failures
// are logged, not propagated: event delivery is best-effort and must never
// fail a request.
func (p *EventPublisher) Publish(eventType string, payload any) {
	if !p.enabled {
		return
	}

	body, err := json.Marshal(map[string]any{
		"type":      eventType,
		"payload":   payload,
		"timestamp": time.Now().Unix(),
	})
	if err != nil {
		log.Printf("Failed to marshal event %s: %v", eventType, err)
		return
	}

	err = p.channel.Publish(
		p.exchange,
		eventType, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		log.Printf("Failed to publish event %s: %v", eventType, err)
	}
}

func (p *EventPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

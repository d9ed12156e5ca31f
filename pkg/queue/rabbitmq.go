package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"some-planner/pkg/config"
	"some-planner/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange = "planner_events"
	publishTimeout = 3 * time.Second
)

// Event is the JSON body of every message on EventsExchange. The routing
// key equals Type.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
	// amqp channels are not safe for concurrent publishing
	mu sync.Mutex
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.RabbitMQURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		EventsExchange, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Publish sends one event and returns once the broker has it or the
// timeout passes.
func (c *Client) Publish(ctx context.Context, eventType string, payload interface{}) error {
	msg, err := newMessage(eventType, payload, time.Now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	c.mu.Lock()
	err = c.channel.PublishWithContext(ctx,
		EventsExchange, // exchange
		eventType,      // routing key
		false,          // mandatory
		false,          // immediate
		msg,
	)
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish %s to exchange=%s: %v", eventType, EventsExchange, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Debug("[RABBITMQ] Published %s to exchange=%s: %s", eventType, EventsExchange, string(msg.Body))
	return nil
}

func newMessage(eventType string, payload interface{}, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(Event{
		Type:       eventType,
		OccurredAt: now.UTC(),
		Payload:    payload,
	})
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
		Type:         eventType,
	}, nil
}

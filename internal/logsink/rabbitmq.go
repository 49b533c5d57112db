// Package logsink ships adapter log entries to external consumers.
package logsink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ibeckermayer/syndicate/internal/adapter"
)

const publishTimeout = 5 * time.Second

// Config selects the exchange, routing key and optional bound queue
type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

// RabbitMQ implements adapter.Sink by publishing each entry to a direct exchange
type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger

	mu sync.Mutex
}

// Message is the JSON body of a published entry
type Message struct {
	RequestID string        `json:"requestId"`
	Adapter   string        `json:"adapter,omitempty"`
	Message   string        `json:"message"`
	Level     adapter.Level `json:"level"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewMessage builds the message published for entry
func NewMessage(requestID string, entry adapter.Entry, at time.Time) Message {
	return Message{
		RequestID: requestID,
		Adapter:   entry.Adapter,
		Message:   entry.Message,
		Level:     entry.Level,
		Timestamp: at.UTC(),
	}
}

// NewRabbitMQ connects and declares the exchange (and queue, when named)
func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if cfg.QueueName != "" {
		q, err := ch.QueueDeclare(
			cfg.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("declare queue: %w", err)
		}

		if err := ch.QueueBind(q.Name, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("bind queue: %w", err)
		}
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"routing_key", cfg.RoutingKey,
	)

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger,
	}, nil
}

// Log publishes entry. Failures are logged and otherwise ignored so a broker
// outage never fails a publish.
func (r *RabbitMQ) Log(requestID string, entry adapter.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := r.Publish(ctx, requestID, entry); err != nil {
		r.logger.Warn("failed to forward log entry", "request_id", requestID, "error", err)
	}
}

// Publish sends one entry as a persistent JSON message
func (r *RabbitMQ) Publish(ctx context.Context, requestID string, entry adapter.Entry) error {
	body, err := json.Marshal(NewMessage(requestID, entry, time.Now()))
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		r.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

// Close closes the channel and connection
func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

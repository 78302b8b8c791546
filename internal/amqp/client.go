package amqp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"Finboard/config"
	"Finboard/internal/domain/report"
	"Finboard/internal/logger"

	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// Client publishes domain events to a topic exchange. It implements report.Publisher.
type Client struct {
	conn         *amqp091.Connection
	channel      channel
	closeChannel func() error
	exchangeName string
	routingKey   string
	mu           sync.Mutex
}

func NewClient(cfg config.AMQPConfig) (*Client, error) {
	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	logger.Info().
		Str("exchange", cfg.Exchange).
		Str("routing_key", cfg.RoutingKey).
		Msg("amqp_connected")

	return &Client{
		conn:         conn,
		channel:      ch,
		closeChannel: ch.Close,
		exchangeName: cfg.Exchange,
		routingKey:   cfg.RoutingKey,
	}, nil
}

func (c *Client) PublishReportShared(ctx context.Context, event report.SharedEvent) error {
	body, err := NewReportSharedMessage(event).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		c.routingKey,   // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			MessageId:    event.ReportId.String(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	logger.Debug().
		Str("report_id", event.ReportId.String()).
		Str("exchange", c.exchangeName).
		Str("routing_key", c.routingKey).
		Msg("report_shared_published")
	return nil
}

func (c *Client) Close() error {
	if c.closeChannel != nil {
		c.closeChannel()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

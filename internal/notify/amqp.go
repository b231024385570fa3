package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/vietanh2810/eloquence-api/internal/domain"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes registration events as JSON on a durable topic
// exchange. The routing key is <prefix>.<pool>.<event type>.
type AMQPPublisher struct {
	conn     *amqp.Connection
	mu       sync.Mutex
	ch       channel
	exchange string
	prefix   string
}

func NewAMQPPublisher(url, exchange, routingKeyPrefix string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp.Dial -> %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("conn.Channel -> %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("ch.ExchangeDeclare -> %w", err)
	}

	zap.L().Info("amqp publisher ready", zap.String("exchange", exchange))

	return &AMQPPublisher{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		prefix:   routingKeyPrefix,
	}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event domain.RegistrationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(
		ctx,
		p.exchange,
		p.routingKey(event),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Type:         string(event.Type),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("p.ch.PublishWithContext -> %w", err)
	}

	return nil
}

func (p *AMQPPublisher) routingKey(event domain.RegistrationEvent) string {
	return fmt.Sprintf("%s.%s.%s", p.prefix, event.Pool, event.Type)
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}

	return nil
}

package messaging

import (
	"github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"

	"github.com/lifelink/bloodlink/donor-community-service/internal/config"
)

// RabbitMQBroker delivers push-notification events to the queue the
// mobile gateway consumes. Implements ports.NotificationPublisher.
type RabbitMQBroker struct {
	conn      *amqp091.Connection
	ch        *amqp091.Channel
	queueName string
	cb        *gobreaker.CircuitBreaker
}

func NewRabbitMQBroker(amqpURL, queueName string) (*RabbitMQBroker, error) {
	conn, err := amqp091.Dial(amqpURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	// Durable queue; declaration is idempotent so every process can do it.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitMQBroker{
		conn:      conn,
		ch:        ch,
		queueName: queueName,
		cb:        config.NewCircuitBreaker("RabbitMQ-Publisher"),
	}, nil
}

func (rmq *RabbitMQBroker) Close() error {
	if rmq.ch != nil {
		if err := rmq.ch.Close(); err != nil {
			return err
		}
	}
	if rmq.conn != nil {
		return rmq.conn.Close()
	}
	return nil
}

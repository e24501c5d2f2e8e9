package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
)

func (rmq *RabbitMQBroker) PublishPushNotification(ctx context.Context, evt ports.PushNotificationEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	// Respect context deadline
	if deadline, ok := ctx.Deadline(); ok {
		if time.Until(deadline) <= 0 {
			return ctx.Err()
		}
	}

	// Circuit breaker protects the publish path when RabbitMQ degrades
	_, err = rmq.cb.Execute(func() (interface{}, error) {
		err := rmq.ch.PublishWithContext(
			ctx,
			"",            // exchange (default)
			rmq.queueName, // routing key == queue name
			false,         // mandatory
			false,         // immediate
			amqp091.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp091.Persistent,
				Body:         body,
			},
		)
		return nil, err
	})
	return err
}

package commander

import (
	"context"
	"errors"
)

//go:generate mockery --name RabbitMQPublisher --filename rabbitmqpublisher.go

// ErrNoRoutingKey is returned when sender has no routing key to publish pull commands to.
var ErrNoRoutingKey = errors.New("no routing key for pull commands")

// RabbitMQPublisher is RabbitMQ messages publisher.
type RabbitMQPublisher interface {
	Publish(ctx context.Context, routingKey string, message []byte) error
}

// RabbitMQSender publishes pull commands to the routing key the puller queue is bound to.
type RabbitMQSender struct {
	publisher  RabbitMQPublisher
	routingKey string
}

// NewRabbitMQSender returns new RabbitMQSender publishing to routingKey.
func NewRabbitMQSender(publisher RabbitMQPublisher, routingKey string) RabbitMQSender {
	return RabbitMQSender{
		publisher:  publisher,
		routingKey: routingKey,
	}
}

// Send publishes msg.
func (s RabbitMQSender) Send(ctx context.Context, msg []byte) error {
	if s.routingKey == "" {
		return ErrNoRoutingKey
	}
	return s.publisher.Publish(ctx, s.routingKey, msg)
}

package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	domainRepo "github.com/nguyenduy/opticart-api/internal/domain/repository"
)

type eventPublisher struct {
	mq *RabbitMQ
}

// NewEventPublisher creates a broker-backed event publisher
func NewEventPublisher(mq *RabbitMQ) domainRepo.EventPublisher {
	return &eventPublisher{mq: mq}
}

func (p *eventPublisher) PublishOrderPlaced(ctx context.Context, event domainRepo.OrderPlacedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		ContentType:  "application/json",
		Body:         body,
	}

	if err := p.mq.Channel.PublishWithContext(ctx, orderExchange, orderWaitQueue, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}
	return nil
}

func (p *eventPublisher) Close() error {
	return p.mq.Close()
}

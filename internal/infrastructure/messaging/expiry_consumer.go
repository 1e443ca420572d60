package messaging

import (
	"context"
	"encoding/json"
	"log"

	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	domainRepo "github.com/nguyenduy/opticart-api/internal/domain/repository"
)

// ExpiryConsumer cancels orders whose payment window lapsed without a
// completed payment.
type ExpiryConsumer struct {
	mq           *RabbitMQ
	orderRepo    domainRepo.OrderRepository
	detailRepo   domainRepo.OrderDetailRepository
	eyeGlassRepo domainRepo.EyeGlassRepository
}

// NewExpiryConsumer creates a new expiry consumer
func NewExpiryConsumer(mq *RabbitMQ, orderRepo domainRepo.OrderRepository, detailRepo domainRepo.OrderDetailRepository, eyeGlassRepo domainRepo.EyeGlassRepository) *ExpiryConsumer {
	return &ExpiryConsumer{
		mq:           mq,
		orderRepo:    orderRepo,
		detailRepo:   detailRepo,
		eyeGlassRepo: eyeGlassRepo,
	}
}

// Start consumes the expired queue until ctx is cancelled
func (c *ExpiryConsumer) Start(ctx context.Context) error {
	deliveries, err := c.mq.Channel.Consume(
		orderExpiredQueue,
		"order-expiry-worker",
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := c.handle(ctx, d.Body); err != nil {
					log.Printf("order expiry: failed to handle event: %v", err)
					d.Nack(false, false)
					continue
				}
				d.Ack(false)
			}
		}
	}()

	return nil
}

func (c *ExpiryConsumer) handle(ctx context.Context, body []byte) error {
	var event domainRepo.OrderPlacedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		// Malformed message, drop it rather than requeue forever
		log.Printf("order expiry: dropping malformed event: %v", err)
		return nil
	}

	order, err := c.orderRepo.GetByID(ctx, event.OrderID)
	if err != nil {
		return err
	}
	if order == nil || order.Status != enum.OrderStatusPending {
		// Paid, cancelled or gone; nothing to do
		return nil
	}

	if err := c.orderRepo.UpdateStatus(ctx, order.ID, enum.OrderStatusCancelled); err != nil {
		return err
	}
	log.Printf("order expiry: cancelled unpaid order %s", order.Code)

	// Return reserved frames to stock
	details, err := c.detailRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}
	for _, d := range details {
		if d.ProductGlass == nil {
			continue
		}
		if err := c.eyeGlassRepo.IncrementStock(ctx, d.ProductGlass.EyeGlassID, d.Quantity); err != nil {
			log.Printf("order expiry: failed to restock frame %s: %v", d.ProductGlass.EyeGlassID, err)
		}
	}
	return nil
}

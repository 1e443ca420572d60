package repository

import (
	"context"

	"github.com/google/uuid"
)

// ChargeRequest is the payload sent to the payment provider.
type ChargeRequest struct {
	OrderCode   string
	PaymentCode string
	Amount      int64
	Method      string
	ReturnURL   string
}

// ChargeResult is the provider's answer to a charge attempt.
type ChargeResult struct {
	TransactionID string
	PaymentURL    string
	Succeeded     bool
}

// PaymentGateway abstracts the external payment provider. Implementations
// must be safe for concurrent use.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	// Refund reverses a captured transaction, used when order creation
	// succeeds but a later step fails.
	Refund(ctx context.Context, transactionID string, amount int64) error
}

// OrderPlacedEvent is published when an order is created and awaiting payment.
type OrderPlacedEvent struct {
	OrderID   uuid.UUID `json:"order_id"`
	Code      string    `json:"code"`
	AccountID uuid.UUID `json:"account_id"`
	Total     int64     `json:"total"`
}

// EventPublisher pushes domain events to the message broker.
type EventPublisher interface {
	// PublishOrderPlaced emits the event on the delayed queue so unpaid
	// orders get cancelled after the payment window closes.
	PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error
	Close() error
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/selection"
)

// SelectionStore persists in-progress selection sessions. Sessions are
// keyed per account so an account resumes the same session across requests.
type SelectionStore interface {
	Save(ctx context.Context, state *selection.State, ttl time.Duration) error
	Get(ctx context.Context, accountID uuid.UUID) (*selection.State, error)
	Delete(ctx context.Context, accountID uuid.UUID) error
}

// CartItem is one configured product buffered for checkout.
type CartItem struct {
	ProductGlassID uuid.UUID `json:"product_glass_id"`
	Quantity       int       `json:"quantity"`
	AddedAt        time.Time `json:"added_at"`
}

// CartStore buffers cart items between wizard completion and checkout.
type CartStore interface {
	Add(ctx context.Context, accountID uuid.UUID, item CartItem) error
	Get(ctx context.Context, accountID uuid.UUID) ([]CartItem, error)
	Remove(ctx context.Context, accountID uuid.UUID, productGlassID uuid.UUID) error
	Clear(ctx context.Context, accountID uuid.UUID) error
}

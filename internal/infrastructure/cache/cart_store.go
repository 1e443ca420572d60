package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domainRepo "github.com/nguyenduy/opticart-api/internal/domain/repository"
)

type cartStore struct {
	client *redis.Client
}

// NewCartStore creates a Redis-backed cart store. Items live in a hash
// keyed by account so adds and removes stay atomic per item.
func NewCartStore(client *redis.Client) domainRepo.CartStore {
	return &cartStore{client: client}
}

func cartKey(accountID uuid.UUID) string {
	return fmt.Sprintf("cart:%s:items", accountID)
}

func (s *cartStore) Add(ctx context.Context, accountID uuid.UUID, item domainRepo.CartItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode cart item: %w", err)
	}

	if err := s.client.HSet(ctx, cartKey(accountID), item.ProductGlassID.String(), data).Err(); err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}
	return nil
}

func (s *cartStore) Get(ctx context.Context, accountID uuid.UUID) ([]domainRepo.CartItem, error) {
	fields, err := s.client.HGetAll(ctx, cartKey(accountID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}

	items := make([]domainRepo.CartItem, 0, len(fields))
	for _, raw := range fields {
		var item domainRepo.CartItem
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("failed to decode cart item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *cartStore) Remove(ctx context.Context, accountID uuid.UUID, productGlassID uuid.UUID) error {
	if err := s.client.HDel(ctx, cartKey(accountID), productGlassID.String()).Err(); err != nil {
		return fmt.Errorf("failed to remove item from cart: %w", err)
	}
	return nil
}

func (s *cartStore) Clear(ctx context.Context, accountID uuid.UUID) error {
	if err := s.client.Del(ctx, cartKey(accountID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

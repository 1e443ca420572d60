package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domainRepo "github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/internal/domain/selection"
)

type selectionStore struct {
	client *redis.Client
}

// NewSelectionStore creates a Redis-backed selection session store
func NewSelectionStore(client *redis.Client) domainRepo.SelectionStore {
	return &selectionStore{client: client}
}

func selectionKey(accountID uuid.UUID) string {
	return fmt.Sprintf("selection:%s", accountID)
}

func (s *selectionStore) Save(ctx context.Context, state *selection.State, ttl time.Duration) error {
	if err := s.client.Set(ctx, selectionKey(state.AccountID), state, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save selection session: %w", err)
	}
	return nil
}

func (s *selectionStore) Get(ctx context.Context, accountID uuid.UUID) (*selection.State, error) {
	data, err := s.client.Get(ctx, selectionKey(accountID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get selection session: %w", err)
	}

	var state selection.State
	if err := state.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("failed to decode selection session: %w", err)
	}
	return &state, nil
}

func (s *selectionStore) Delete(ctx context.Context, accountID uuid.UUID) error {
	return s.client.Del(ctx, selectionKey(accountID)).Err()
}

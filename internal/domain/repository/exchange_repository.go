package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	"github.com/nguyenduy/opticart-api/pkg/pagination"
)

// ExchangeRepository defines the interface for exchange request operations
type ExchangeRepository interface {
	Create(ctx context.Context, request *entity.ExchangeRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ExchangeRequest, error)
	Update(ctx context.Context, request *entity.ExchangeRequest) error
	ListByAccount(ctx context.Context, accountID uuid.UUID, params *pagination.PaginationParams) ([]entity.ExchangeRequest, int64, error)
	// ListByStatus is the staff queue view.
	ListByStatus(ctx context.Context, status enum.ExchangeStatus, params *pagination.PaginationParams) ([]entity.ExchangeRequest, int64, error)
}

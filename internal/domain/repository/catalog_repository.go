package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/pkg/pagination"
)

// LensTypeRepository defines the interface for lens type data operations
type LensTypeRepository interface {
	Create(ctx context.Context, lensType *entity.LensType) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.LensType, error)
	Update(ctx context.Context, lensType *entity.LensType) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListActive returns lens types with Status true only.
	ListActive(ctx context.Context) ([]entity.LensType, error)
	List(ctx context.Context) ([]entity.LensType, error)
}

// LensRepository defines the interface for lens data operations
type LensRepository interface {
	Create(ctx context.Context, lens *entity.Lens) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Lens, error)
	Update(ctx context.Context, lens *entity.Lens) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByType returns active lenses for a lens type.
	ListByType(ctx context.Context, lensTypeID uuid.UUID) ([]entity.Lens, error)
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Lens, int64, error)
}

// EyeGlassRepository defines the interface for frame data operations
type EyeGlassRepository interface {
	Create(ctx context.Context, eyeGlass *entity.EyeGlass) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.EyeGlass, error)
	GetByCode(ctx context.Context, code string) (*entity.EyeGlass, error)
	Update(ctx context.Context, eyeGlass *entity.EyeGlass) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.EyeGlass, int64, error)
	ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string) ([]entity.EyeGlass, error)
	// DecrementStock atomically reduces stock, failing when quantity is insufficient.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error
	GetLowStock(ctx context.Context, params *pagination.PaginationParams) ([]entity.EyeGlass, int64, error)
}

// ProductGlassRepository defines the interface for configured product operations
type ProductGlassRepository interface {
	Create(ctx context.Context, productGlass *entity.ProductGlass) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductGlass, error)
	// GetWithRelations preloads the frame and both lenses.
	GetWithRelations(ctx context.Context, id uuid.UUID) (*entity.ProductGlass, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, params *pagination.PaginationParams) ([]entity.ProductGlass, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

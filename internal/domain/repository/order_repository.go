package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	"github.com/nguyenduy/opticart-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByCode(ctx context.Context, code string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	ListWithCursor(ctx context.Context, params *OrderCursorFilterParams) ([]entity.Order, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	AccountID  *uuid.UUID
	KioskID    *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// OrderCursorFilterParams contains cursor-based filtering for order queries
type OrderCursorFilterParams struct {
	Cursor    *pagination.CursorParams
	Search    string
	Status    *enum.OrderStatus
	AccountID *uuid.UUID
	KioskID   *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// OrderDetailRepository defines the interface for order detail data operations
type OrderDetailRepository interface {
	Create(ctx context.Context, detail *entity.OrderDetail) error
	CreateBatch(ctx context.Context, details []entity.OrderDetail) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderDetail, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderDetail, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	GetByCode(ctx context.Context, code string) (*entity.Payment, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
}

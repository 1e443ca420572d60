package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
)

// KioskRepository defines the interface for kiosk data operations
type KioskRepository interface {
	Create(ctx context.Context, kiosk *entity.Kiosk) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Kiosk, error)
	Update(ctx context.Context, kiosk *entity.Kiosk) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListActive returns kiosks available for pickup.
	ListActive(ctx context.Context) ([]entity.Kiosk, error)
	List(ctx context.Context) ([]entity.Kiosk, error)
}

// VoucherRepository defines the interface for voucher data operations
type VoucherRepository interface {
	Create(ctx context.Context, voucher *entity.Voucher) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Voucher, error)
	GetByCode(ctx context.Context, code string) (*entity.Voucher, error)
	Update(ctx context.Context, voucher *entity.Voucher) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Voucher, error)
	// DecrementQuantity atomically consumes one use, failing when exhausted.
	DecrementQuantity(ctx context.Context, id uuid.UUID) error
}

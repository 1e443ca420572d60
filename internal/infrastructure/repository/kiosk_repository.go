package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	domainRepo "github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
	"gorm.io/gorm"
)

type kioskRepository struct {
	db *gorm.DB
}

// NewKioskRepository creates a new kiosk repository
func NewKioskRepository(db *gorm.DB) domainRepo.KioskRepository {
	return &kioskRepository{db: db}
}

func (r *kioskRepository) Create(ctx context.Context, kiosk *entity.Kiosk) error {
	return r.db.WithContext(ctx).Create(kiosk).Error
}

func (r *kioskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Kiosk, error) {
	var kiosk entity.Kiosk
	err := r.db.WithContext(ctx).First(&kiosk, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &kiosk, err
}

func (r *kioskRepository) Update(ctx context.Context, kiosk *entity.Kiosk) error {
	return r.db.WithContext(ctx).Save(kiosk).Error
}

func (r *kioskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Kiosk{}, "id = ?", id).Error
}

func (r *kioskRepository) ListActive(ctx context.Context) ([]entity.Kiosk, error) {
	var kiosks []entity.Kiosk
	err := r.db.WithContext(ctx).
		Where("status = ?", true).
		Order("name ASC").
		Find(&kiosks).Error
	return kiosks, err
}

func (r *kioskRepository) List(ctx context.Context) ([]entity.Kiosk, error) {
	var kiosks []entity.Kiosk
	err := r.db.WithContext(ctx).Order("name ASC").Find(&kiosks).Error
	return kiosks, err
}

type voucherRepository struct {
	db *gorm.DB
}

// NewVoucherRepository creates a new voucher repository
func NewVoucherRepository(db *gorm.DB) domainRepo.VoucherRepository {
	return &voucherRepository{db: db}
}

func (r *voucherRepository) Create(ctx context.Context, voucher *entity.Voucher) error {
	return r.db.WithContext(ctx).Create(voucher).Error
}

func (r *voucherRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Voucher, error) {
	var voucher entity.Voucher
	err := r.db.WithContext(ctx).First(&voucher, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &voucher, err
}

func (r *voucherRepository) GetByCode(ctx context.Context, code string) (*entity.Voucher, error) {
	var voucher entity.Voucher
	err := r.db.WithContext(ctx).First(&voucher, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &voucher, err
}

func (r *voucherRepository) Update(ctx context.Context, voucher *entity.Voucher) error {
	return r.db.WithContext(ctx).Save(voucher).Error
}

func (r *voucherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Voucher{}, "id = ?", id).Error
}

func (r *voucherRepository) List(ctx context.Context) ([]entity.Voucher, error) {
	var vouchers []entity.Voucher
	err := r.db.WithContext(ctx).Order("end_date DESC").Find(&vouchers).Error
	return vouchers, err
}

// DecrementQuantity atomically consumes one voucher use
func (r *voucherRepository) DecrementQuantity(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&entity.Voucher{}).
		Where("id = ? AND quantity > 0", id).
		Update("quantity", gorm.Expr("quantity - 1"))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.ErrVoucherUnusable
	}
	return nil
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	"github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
)

// VoucherService handles voucher administration and lookups
type VoucherService struct {
	voucherRepo repository.VoucherRepository
}

// NewVoucherService creates a new voucher service
func NewVoucherService(voucherRepo repository.VoucherRepository) *VoucherService {
	return &VoucherService{voucherRepo: voucherRepo}
}

// CreateVoucherInput represents the input for creating a voucher
type CreateVoucherInput struct {
	Name          string
	Code          string
	DiscountValue int64
	Quantity      int
	StartDate     time.Time
	EndDate       time.Time
}

// CreateVoucher creates a percentage discount voucher
func (s *VoucherService) CreateVoucher(ctx context.Context, input *CreateVoucherInput) (*entity.Voucher, error) {
	if input.DiscountValue <= 0 || input.DiscountValue > 100 {
		return nil, apperror.NewBadRequestError("Discount must be between 1 and 100 percent")
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, apperror.NewBadRequestError("End date must be after start date")
	}

	existing, err := s.voucherRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Voucher code already exists")
	}

	voucher := &entity.Voucher{
		Name:          input.Name,
		Code:          input.Code,
		DiscountType:  enum.DiscountTypePercentage,
		DiscountValue: input.DiscountValue,
		Quantity:      input.Quantity,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Status:        true,
	}
	if err := s.voucherRepo.Create(ctx, voucher); err != nil {
		return nil, err
	}
	return voucher, nil
}

// GetVoucherByCode looks up a voucher and reports whether it is currently
// usable, so the storefront can validate a code before checkout
func (s *VoucherService) GetVoucherByCode(ctx context.Context, code string) (*entity.Voucher, error) {
	voucher, err := s.voucherRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, apperror.NewNotFoundError("Voucher")
	}
	if !voucher.IsUsable(time.Now()) {
		return nil, apperror.ErrVoucherUnusable
	}
	return voucher, nil
}

// ListVouchers returns all vouchers
func (s *VoucherService) ListVouchers(ctx context.Context) ([]entity.Voucher, error) {
	return s.voucherRepo.List(ctx)
}

// UpdateVoucherInput represents the input for updating a voucher
type UpdateVoucherInput struct {
	Name          *string
	DiscountValue *int64
	Quantity      *int
	StartDate     *time.Time
	EndDate       *time.Time
	Status        *bool
}

// UpdateVoucher applies a partial update to a voucher
func (s *VoucherService) UpdateVoucher(ctx context.Context, id uuid.UUID, input *UpdateVoucherInput) (*entity.Voucher, error) {
	voucher, err := s.voucherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, apperror.NewNotFoundError("Voucher")
	}

	if input.Name != nil {
		voucher.Name = *input.Name
	}
	if input.DiscountValue != nil {
		if *input.DiscountValue <= 0 || *input.DiscountValue > 100 {
			return nil, apperror.NewBadRequestError("Discount must be between 1 and 100 percent")
		}
		voucher.DiscountValue = *input.DiscountValue
	}
	if input.Quantity != nil {
		voucher.Quantity = *input.Quantity
	}
	if input.StartDate != nil {
		voucher.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		voucher.EndDate = *input.EndDate
	}
	if input.Status != nil {
		voucher.Status = *input.Status
	}

	if err := s.voucherRepo.Update(ctx, voucher); err != nil {
		return nil, err
	}
	return voucher, nil
}

// DeleteVoucher soft deletes a voucher
func (s *VoucherService) DeleteVoucher(ctx context.Context, id uuid.UUID) error {
	voucher, err := s.voucherRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if voucher == nil {
		return apperror.NewNotFoundError("Voucher")
	}
	return s.voucherRepo.Delete(ctx, id)
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	domainRepo "github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/pkg/pagination"
	"gorm.io/gorm"
)

type exchangeRepository struct {
	db *gorm.DB
}

// NewExchangeRepository creates a new exchange repository
func NewExchangeRepository(db *gorm.DB) domainRepo.ExchangeRepository {
	return &exchangeRepository{db: db}
}

func (r *exchangeRepository) Create(ctx context.Context, request *entity.ExchangeRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *exchangeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ExchangeRequest, error) {
	var request entity.ExchangeRequest
	err := r.db.WithContext(ctx).
		Preload("OrderDetail").
		Preload("OrderDetail.ProductGlass").
		First(&request, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &request, err
}

func (r *exchangeRepository) Update(ctx context.Context, request *entity.ExchangeRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *exchangeRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, params *pagination.PaginationParams) ([]entity.ExchangeRequest, int64, error) {
	var requests []entity.ExchangeRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ExchangeRequest{}).
		Where("account_id = ?", accountID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("OrderDetail").
		Order("created_at DESC").
		Find(&requests).Error

	return requests, total, err
}

func (r *exchangeRepository) ListByStatus(ctx context.Context, status enum.ExchangeStatus, params *pagination.PaginationParams) ([]entity.ExchangeRequest, int64, error) {
	var requests []entity.ExchangeRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ExchangeRequest{}).
		Where("status = ?", status)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Account").
		Preload("OrderDetail").
		Order("created_at ASC").
		Find(&requests).Error

	return requests, total, err
}

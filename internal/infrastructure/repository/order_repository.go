package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	domainRepo "github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/pkg/pagination"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Account").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetByCode(ctx context.Context, code string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).First(&order, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Order{}, "id = ?", id).Error
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{})
	query = applyOrderFilters(query, params.Search, params.Status, params.AccountID, params.KioskID, params.StartDate, params.EndDate)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder != "" && (params.SortOrder == "ASC" || params.SortOrder == "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Account").
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}

// ListWithCursor returns orders using cursor-based pagination
func (r *orderRepository) ListWithCursor(ctx context.Context, params *domainRepo.OrderCursorFilterParams) ([]entity.Order, error) {
	var orders []entity.Order

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Order{})
	query = applyOrderFilters(query, params.Search, params.Status, params.AccountID, params.KioskID, params.StartDate, params.EndDate)

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Account").
		Order("created_at ASC, id ASC").
		Find(&orders).Error

	return orders, err
}

func (r *orderRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Account").
		Preload("Kiosk").
		Preload("Voucher").
		Preload("Details.ProductGlass").
		Preload("Details.ProductGlass.EyeGlass").
		Preload("Details.ProductGlass.LeftLens").
		Preload("Details.ProductGlass.RightLens").
		Preload("Payments").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func applyOrderFilters(query *gorm.DB, search string, status *enum.OrderStatus, accountID, kioskID *uuid.UUID, startDate, endDate *time.Time) *gorm.DB {
	if search != "" {
		query = query.Where("code ILIKE ?", "%"+search+"%")
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if accountID != nil {
		query = query.Where("account_id = ?", *accountID)
	}
	if kioskID != nil {
		query = query.Where("kiosk_id = ?", *kioskID)
	}
	if startDate != nil {
		query = query.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("created_at <= ?", *endDate)
	}
	return query
}

type orderDetailRepository struct {
	db *gorm.DB
}

// NewOrderDetailRepository creates a new order detail repository
func NewOrderDetailRepository(db *gorm.DB) domainRepo.OrderDetailRepository {
	return &orderDetailRepository{db: db}
}

func (r *orderDetailRepository) Create(ctx context.Context, detail *entity.OrderDetail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

func (r *orderDetailRepository) CreateBatch(ctx context.Context, details []entity.OrderDetail) error {
	return r.db.WithContext(ctx).Create(&details).Error
}

func (r *orderDetailRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderDetail, error) {
	var detail entity.OrderDetail
	err := r.db.WithContext(ctx).
		Preload("ProductGlass").
		First(&detail, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &detail, err
}

func (r *orderDetailRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderDetail, error) {
	var details []entity.OrderDetail
	err := r.db.WithContext(ctx).
		Preload("ProductGlass").
		Where("order_id = ?", orderID).
		Find(&details).Error
	return details, err
}

func (r *orderDetailRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.OrderDetail{}, "id = ?", id).Error
}

func (r *orderDetailRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.OrderDetail{}, "order_id = ?", orderID).Error
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) GetByCode(ctx context.Context, code string) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).First(&payment, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	"github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
	"github.com/nguyenduy/opticart-api/pkg/pagination"
)

// OrderService handles order browsing and lifecycle management
type OrderService struct {
	orderRepo        repository.OrderRepository
	productGlassRepo repository.ProductGlassRepository
	eyeGlassRepo     repository.EyeGlassRepository
	voucherRepo      repository.VoucherRepository
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	productGlassRepo repository.ProductGlassRepository,
	eyeGlassRepo repository.EyeGlassRepository,
	voucherRepo repository.VoucherRepository,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		productGlassRepo: productGlassRepo,
		eyeGlassRepo:     eyeGlassRepo,
		voucherRepo:      voucherRepo,
	}
}

// GetOrder retrieves an order with its details, frame and lenses
func (s *OrderService) GetOrder(ctx context.Context, accountID, orderID uuid.UUID, isStaff bool) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if !isStaff && order.AccountID != accountID {
		return nil, apperror.ErrForbidden
	}
	return order, nil
}

// ListOrders lists orders with filtering. Non-staff callers only ever see
// their own orders regardless of the filter they pass.
func (s *OrderService) ListOrders(ctx context.Context, accountID uuid.UUID, isStaff bool, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if !isStaff {
		params.AccountID = &accountID
	}

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// ListOrdersWithCursor lists orders with cursor-based pagination
func (s *OrderService) ListOrdersWithCursor(ctx context.Context, accountID uuid.UUID, isStaff bool, params *repository.OrderCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Order], error) {
	if !isStaff {
		params.AccountID = &accountID
	}

	orders, err := s.orderRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(orders, params.Cursor.Limit,
		func(o entity.Order) string { return o.ID.String() },
		func(o entity.Order) time.Time { return o.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// UpdateOrderStatus moves an order forward through fulfilment. Terminal
// orders stay put and the status may only advance, never regress.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enum.OrderStatus) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}

	if order.Status.IsTerminal() {
		return apperror.NewConflictError("Order is already " + order.Status.String())
	}
	if status != enum.OrderStatusCancelled && status <= order.Status {
		return apperror.NewConflictError("Order status can only move forward")
	}

	return s.orderRepo.UpdateStatus(ctx, orderID, status)
}

// CancelOrder cancels an order, restocks its frames and restores the
// voucher use. Only orders not yet in fulfilment can be cancelled.
func (s *OrderService) CancelOrder(ctx context.Context, accountID, orderID uuid.UUID, isStaff bool) error {
	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if !isStaff && order.AccountID != accountID {
		return apperror.ErrForbidden
	}

	switch order.Status {
	case enum.OrderStatusPending, enum.OrderStatusPaid:
	default:
		return apperror.NewConflictError("Order can no longer be cancelled")
	}

	for _, detail := range order.Details {
		pg := detail.ProductGlass
		if pg == nil {
			pg, err = s.productGlassRepo.GetByID(ctx, detail.ProductGlassID)
			if err != nil {
				return err
			}
			if pg == nil {
				continue
			}
		}
		if err := s.eyeGlassRepo.IncrementStock(ctx, pg.EyeGlassID, detail.Quantity); err != nil {
			return err
		}
	}

	if order.VoucherID != nil {
		if voucher, err := s.voucherRepo.GetByID(ctx, *order.VoucherID); err == nil && voucher != nil {
			voucher.Quantity++
			if err := s.voucherRepo.Update(ctx, voucher); err != nil {
				log.Printf("order: restore voucher %s on cancel: %v", voucher.ID, err)
			}
		}
	}

	return s.orderRepo.UpdateStatus(ctx, orderID, enum.OrderStatusCancelled)
}

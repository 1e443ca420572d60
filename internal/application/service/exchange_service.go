package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	"github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
	"github.com/nguyenduy/opticart-api/pkg/pagination"
)

// ExchangeService handles product exchange requests
type ExchangeService struct {
	exchangeRepo    repository.ExchangeRepository
	orderDetailRepo repository.OrderDetailRepository
	orderRepo       repository.OrderRepository
}

// NewExchangeService creates a new exchange service
func NewExchangeService(
	exchangeRepo repository.ExchangeRepository,
	orderDetailRepo repository.OrderDetailRepository,
	orderRepo repository.OrderRepository,
) *ExchangeService {
	return &ExchangeService{
		exchangeRepo:    exchangeRepo,
		orderDetailRepo: orderDetailRepo,
		orderRepo:       orderRepo,
	}
}

// RequestExchangeInput represents the input for opening an exchange request
type RequestExchangeInput struct {
	AccountID     uuid.UUID
	OrderDetailID uuid.UUID
	Reason        string
}

// RequestExchange opens an exchange request for a delivered product line.
// Only lines on the caller's own completed orders qualify.
func (s *ExchangeService) RequestExchange(ctx context.Context, input *RequestExchangeInput) (*entity.ExchangeRequest, error) {
	if input.Reason == "" {
		return nil, apperror.NewBadRequestError("A reason for the exchange is required")
	}

	detail, err := s.orderDetailRepo.GetByID(ctx, input.OrderDetailID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, apperror.NewNotFoundError("Order detail")
	}

	order, err := s.orderRepo.GetByID(ctx, detail.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.AccountID != input.AccountID {
		return nil, apperror.ErrForbidden
	}
	if order.Status != enum.OrderStatusCompleted {
		return nil, apperror.NewConflictError("Only completed orders can be exchanged")
	}

	request := &entity.ExchangeRequest{
		AccountID:     input.AccountID,
		OrderDetailID: input.OrderDetailID,
		Reason:        input.Reason,
		Status:        enum.ExchangeStatusRequested,
	}
	if err := s.exchangeRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// GetRequest returns an exchange request, restricted to its owner for
// non-staff callers
func (s *ExchangeService) GetRequest(ctx context.Context, accountID, requestID uuid.UUID, isStaff bool) (*entity.ExchangeRequest, error) {
	request, err := s.exchangeRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NewNotFoundError("Exchange request")
	}
	if !isStaff && request.AccountID != accountID {
		return nil, apperror.ErrForbidden
	}
	return request, nil
}

// ListMyRequests returns the caller's exchange requests
func (s *ExchangeService) ListMyRequests(ctx context.Context, accountID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.ExchangeRequest], error) {
	params.Validate()
	requests, total, err := s.exchangeRepo.ListByAccount(ctx, accountID, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(requests, pag), nil
}

// ListQueue returns requests in a given status for the staff queue
func (s *ExchangeService) ListQueue(ctx context.Context, status enum.ExchangeStatus, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.ExchangeRequest], error) {
	params.Validate()
	requests, total, err := s.exchangeRepo.ListByStatus(ctx, status, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(requests, pag), nil
}

// ResolveInput represents a staff decision on an exchange request
type ResolveInput struct {
	RequestID  uuid.UUID
	ResolvedBy uuid.UUID
	Approve    bool
	StaffNotes *string
}

// Resolve approves or rejects a pending exchange request
func (s *ExchangeService) Resolve(ctx context.Context, input *ResolveInput) (*entity.ExchangeRequest, error) {
	request, err := s.exchangeRepo.GetByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NewNotFoundError("Exchange request")
	}
	if request.Status != enum.ExchangeStatusRequested {
		return nil, apperror.NewConflictError("Exchange request was already resolved")
	}

	now := time.Now().UTC()
	if input.Approve {
		request.Status = enum.ExchangeStatusApproved
	} else {
		request.Status = enum.ExchangeStatusRejected
	}
	request.StaffNotes = input.StaffNotes
	request.ResolvedByID = &input.ResolvedBy
	request.ResolvedAt = &now

	if err := s.exchangeRepo.Update(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// Complete marks an approved exchange as carried out
func (s *ExchangeService) Complete(ctx context.Context, requestID uuid.UUID) (*entity.ExchangeRequest, error) {
	request, err := s.exchangeRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperror.NewNotFoundError("Exchange request")
	}
	if request.Status != enum.ExchangeStatusApproved {
		return nil, apperror.NewConflictError("Only approved requests can be completed")
	}

	request.Status = enum.ExchangeStatusCompleted
	if err := s.exchangeRepo.Update(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

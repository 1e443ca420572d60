package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/application/service"
	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	"github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/request"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/response"
	"github.com/nguyenduy/opticart-api/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List handles listing orders (supports both page-based and cursor-based pagination)
func (h *OrderHandler) List(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	isStaff := IsStaff(c)

	// Check if cursor-based pagination is requested
	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		h.listWithCursor(c, *accountID, isStaff)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	h.applyFilters(c, isStaff, &params.Status, &params.AccountID, &params.KioskID, &params.StartDate, &params.EndDate)

	result, err := h.orderService.ListOrders(c.Request.Context(), *accountID, isStaff, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// listWithCursor handles listing orders with cursor-based pagination
func (h *OrderHandler) listWithCursor(c *gin.Context, accountID uuid.UUID, isStaff bool) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))
	cursor := c.Query("cursor")
	direction := c.DefaultQuery("direction", "next")

	params := &repository.OrderCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    cursor,
			Direction: pagination.CursorDirection(direction),
			Limit:     limit,
		},
		Search: c.Query("search"),
	}
	h.applyFilters(c, isStaff, &params.Status, &params.AccountID, &params.KioskID, &params.StartDate, &params.EndDate)

	result, err := h.orderService.ListOrdersWithCursor(c.Request.Context(), accountID, isStaff, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Orders retrieved successfully", result)
}

// applyFilters reads the shared order filter query parameters. Account and
// kiosk filters are staff-only; customers always see their own orders.
func (h *OrderHandler) applyFilters(c *gin.Context, isStaff bool, status **enum.OrderStatus, accountID, kioskID **uuid.UUID, startDate, endDate **time.Time) {
	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			s := enum.OrderStatus(statusInt)
			*status = &s
		}
	}

	if isStaff {
		if accountIDStr := c.Query("account_id"); accountIDStr != "" {
			if id, err := uuid.Parse(accountIDStr); err == nil {
				*accountID = &id
			}
		}
		if kioskIDStr := c.Query("kiosk_id"); kioskIDStr != "" {
			if id, err := uuid.Parse(kioskIDStr); err == nil {
				*kioskID = &id
			}
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if t, err := time.Parse("2006-01-02", startDateStr); err == nil {
			*startDate = &t
		}
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if t, err := time.Parse("2006-01-02", endDateStr); err == nil {
			*endDate = &t
		}
	}
}

// Get handles getting a single order
func (h *OrderHandler) Get(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), *accountID, id, IsStaff(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// UpdateStatus handles updating order status (staff only)
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.orderService.UpdateOrderStatus(c.Request.Context(), id, req.Status); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated successfully", nil)
}

// Cancel handles cancelling an order
func (h *OrderHandler) Cancel(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.CancelOrder(c.Request.Context(), *accountID, id, IsStaff(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled successfully", nil)
}

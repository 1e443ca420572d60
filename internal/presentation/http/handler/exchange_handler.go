package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/application/service"
	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/request"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/response"
	"github.com/nguyenduy/opticart-api/pkg/pagination"
)

// ExchangeHandler handles product exchange HTTP requests
type ExchangeHandler struct {
	exchangeService *service.ExchangeService
}

// NewExchangeHandler creates a new exchange handler
func NewExchangeHandler(exchangeService *service.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchangeService: exchangeService}
}

// Create handles opening an exchange request
func (h *ExchangeHandler) Create(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.CreateExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	orderDetailID, err := uuid.Parse(req.OrderDetailID)
	if err != nil {
		response.BadRequest(c, "Invalid order detail ID")
		return
	}

	exchange, err := h.exchangeService.RequestExchange(c.Request.Context(), &service.RequestExchangeInput{
		AccountID:     *accountID,
		OrderDetailID: orderDetailID,
		Reason:        req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Exchange request submitted", exchange)
}

// Get handles getting a single exchange request
func (h *ExchangeHandler) Get(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid exchange request ID")
		return
	}

	exchange, err := h.exchangeService.GetRequest(c.Request.Context(), *accountID, id, IsStaff(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Exchange request retrieved successfully", exchange)
}

// ListMine handles listing the caller's exchange requests
func (h *ExchangeHandler) ListMine(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	result, err := h.exchangeService.ListMyRequests(c.Request.Context(), *accountID, pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Exchange requests retrieved successfully", result)
}

// ListQueue handles listing exchange requests by status (staff only)
func (h *ExchangeHandler) ListQueue(c *gin.Context) {
	statusInt, _ := strconv.Atoi(c.DefaultQuery("status", "0"))

	result, err := h.exchangeService.ListQueue(c.Request.Context(), enum.ExchangeStatus(statusInt), pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Exchange queue retrieved successfully", result)
}

// Resolve handles approving or rejecting an exchange request (staff only)
func (h *ExchangeHandler) Resolve(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid exchange request ID")
		return
	}

	var req request.ResolveExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	exchange, err := h.exchangeService.Resolve(c.Request.Context(), &service.ResolveInput{
		RequestID:  id,
		ResolvedBy: *accountID,
		Approve:    req.Approve,
		StaffNotes: req.StaffNotes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Exchange request resolved", exchange)
}

// Complete handles closing an approved exchange request (staff only)
func (h *ExchangeHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid exchange request ID")
		return
	}

	exchange, err := h.exchangeService.Complete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Exchange completed", exchange)
}

func pageParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
}

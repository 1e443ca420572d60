package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/application/service"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/request"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/response"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/middleware"
)

// CheckoutHandler handles cart and checkout HTTP requests
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// GetCart returns the caller's cart
// @Summary Get Cart
// @Description Get the cart with product details
// @Tags checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /cart [get]
func (h *CheckoutHandler) GetCart(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	lines, err := h.checkoutService.GetCart(c.Request.Context(), *accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart retrieved successfully", gin.H{
		"items": lines,
		"count": len(lines),
	})
}

// RemoveFromCart deletes one cart entry
// @Summary Remove Cart Item
// @Description Remove a product from the cart
// @Tags checkout
// @Security BearerAuth
// @Param id path string true "Product glass ID"
// @Success 204
// @Router /cart/{id} [delete]
func (h *CheckoutHandler) RemoveFromCart(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	productGlassID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.checkoutService.RemoveFromCart(c.Request.Context(), *accountID, productGlassID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ClearCart empties the cart
// @Summary Clear Cart
// @Description Remove every product from the cart
// @Tags checkout
// @Security BearerAuth
// @Success 204
// @Router /cart [delete]
func (h *CheckoutHandler) ClearCart(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.checkoutService.ClearCart(c.Request.Context(), *accountID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Quote previews order totals without side effects
// @Summary Quote
// @Description Preview order totals for the current cart
// @Tags checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.QuoteRequest true "Quote parameters"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /checkout/quote [post]
func (h *CheckoutHandler) Quote(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	summary, err := h.checkoutService.Quote(c.Request.Context(), *accountID, service.QuoteInput{
		ShippingCost: req.ShippingCost,
		VoucherCode:  req.VoucherCode,
		IsDeposit:    req.IsDeposit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote computed", gin.H{
		"summary": summary,
	})
}

// PlaceOrder creates an order from the cart
// @Summary Place Order
// @Description Create an order from the cart and start payment
// @Tags checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.PlaceOrderRequest true "Order parameters"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /checkout/orders [post]
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := service.PlaceOrderInput{
		ReceiverAddress: req.ReceiverAddress,
		ShippingCost:    req.ShippingCost,
		VoucherCode:     req.VoucherCode,
		IsDeposit:       req.IsDeposit,
		PaymentMethod:   req.PaymentMethod,
		ReturnURL:       req.ReturnURL,
		PlacedByKiosk:   IsStaff(c),
	}
	if req.KioskID != nil {
		kioskID, err := uuid.Parse(*req.KioskID)
		if err != nil {
			response.BadRequest(c, "Invalid kiosk ID")
			return
		}
		input.KioskID = &kioskID
	}

	result, err := h.checkoutService.PlaceOrder(c.Request.Context(), *accountID, input)
	if err != nil {
		middleware.RecordCheckoutOperation("place_order", false)
		response.Error(c, err)
		return
	}
	middleware.RecordCheckoutOperation("place_order", true)

	response.Created(c, "Order placed successfully", gin.H{
		"order":       result.Order,
		"payment":     result.Payment,
		"summary":     result.Summary,
		"payment_url": result.PaymentURL,
	})
}

// ConfirmPayment is the payment provider webhook
// @Summary Confirm Payment
// @Description Payment provider webhook, marks the payment as settled
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body request.ConfirmPaymentRequest true "Provider payload"
// @Success 200 {object} response.APIResponse
// @Router /payments/webhook [post]
func (h *CheckoutHandler) ConfirmPayment(c *gin.Context) {
	var req request.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if req.Status != "success" {
		// Failed charges are handled through order expiry, nothing to record
		response.OK(c, "Acknowledged", nil)
		return
	}

	if err := h.checkoutService.ConfirmPayment(c.Request.Context(), req.PaymentCode, req.TransactionID); err != nil {
		middleware.RecordCheckoutOperation("confirm_payment", false)
		response.Error(c, err)
		return
	}
	middleware.RecordCheckoutOperation("confirm_payment", true)

	response.OK(c, "Payment confirmed", nil)
}

// PayRemainder collects the outstanding balance on a deposit order
// @Summary Pay Remainder
// @Description Pay the outstanding balance on a deposit order
// @Tags checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body request.PayRemainderRequest true "Payment parameters"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /orders/{id}/remainder [post]
func (h *CheckoutHandler) PayRemainder(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.PayRemainderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.checkoutService.PayRemainder(c.Request.Context(), *accountID, orderID, req.PaymentMethod, req.ReturnURL)
	if err != nil {
		middleware.RecordCheckoutOperation("pay_remainder", false)
		response.Error(c, err)
		return
	}
	middleware.RecordCheckoutOperation("pay_remainder", true)

	response.OK(c, "Remainder payment started", gin.H{
		"payment":     result.Payment,
		"summary":     result.Summary,
		"payment_url": result.PaymentURL,
	})
}

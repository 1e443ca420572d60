package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/application/service"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/request"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/response"
)

// VoucherHandler handles voucher HTTP requests
type VoucherHandler struct {
	voucherService *service.VoucherService
}

// NewVoucherHandler creates a new voucher handler
func NewVoucherHandler(voucherService *service.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

// Check handles checking a voucher code
// @Summary Check Voucher
// @Description Check whether a voucher code is usable right now
// @Tags vouchers
// @Produce json
// @Param code path string true "Voucher code"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /vouchers/{code} [get]
func (h *VoucherHandler) Check(c *gin.Context) {
	voucher, err := h.voucherService.GetVoucherByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Voucher is usable", gin.H{
		"code":           voucher.Code,
		"name":           voucher.Name,
		"discount_value": voucher.DiscountValue,
		"end_date":       voucher.EndDate,
	})
}

// List handles listing all vouchers (staff only)
func (h *VoucherHandler) List(c *gin.Context) {
	vouchers, err := h.voucherService.ListVouchers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Vouchers retrieved successfully", gin.H{
		"vouchers": vouchers,
	})
}

// Create handles creating a voucher (staff only)
func (h *VoucherHandler) Create(c *gin.Context) {
	var req request.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), &service.CreateVoucherInput{
		Name:          req.Name,
		Code:          req.Code,
		DiscountValue: req.DiscountValue,
		Quantity:      req.Quantity,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Voucher created successfully", voucher)
}

// Update handles updating a voucher (staff only)
func (h *VoucherHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid voucher ID")
		return
	}

	var req request.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	voucher, err := h.voucherService.UpdateVoucher(c.Request.Context(), id, &service.UpdateVoucherInput{
		Name:          req.Name,
		DiscountValue: req.DiscountValue,
		Quantity:      req.Quantity,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Voucher updated successfully", voucher)
}

// Delete handles deleting a voucher (staff only)
func (h *VoucherHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid voucher ID")
		return
	}

	if err := h.voucherService.DeleteVoucher(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

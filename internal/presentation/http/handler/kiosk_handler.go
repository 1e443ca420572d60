package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/application/service"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/request"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/response"
)

// KioskHandler handles store branch HTTP requests
type KioskHandler struct {
	kioskService *service.KioskService
}

// NewKioskHandler creates a new kiosk handler
func NewKioskHandler(kioskService *service.KioskService) *KioskHandler {
	return &KioskHandler{kioskService: kioskService}
}

// ListPickup handles listing kiosks available for order pickup
// @Summary List Pickup Kiosks
// @Description List active kiosks available for order pickup
// @Tags kiosks
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /kiosks [get]
func (h *KioskHandler) ListPickup(c *gin.Context) {
	kiosks, err := h.kioskService.ListPickupKiosks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kiosks retrieved successfully", gin.H{
		"kiosks": kiosks,
	})
}

// List handles listing all kiosks including inactive ones (staff only)
func (h *KioskHandler) List(c *gin.Context) {
	kiosks, err := h.kioskService.ListKiosks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kiosks retrieved successfully", gin.H{
		"kiosks": kiosks,
	})
}

// Get handles getting a single kiosk
func (h *KioskHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid kiosk ID")
		return
	}

	kiosk, err := h.kioskService.GetKiosk(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kiosk retrieved successfully", kiosk)
}

// Create handles creating a kiosk (admin only)
func (h *KioskHandler) Create(c *gin.Context) {
	var req request.CreateKioskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	kiosk, err := h.kioskService.CreateKiosk(c.Request.Context(), &service.CreateKioskInput{
		Name:        req.Name,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		OpenHours:   req.OpenHours,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Kiosk created successfully", kiosk)
}

// Update handles updating a kiosk (admin only)
func (h *KioskHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid kiosk ID")
		return
	}

	var req request.UpdateKioskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	kiosk, err := h.kioskService.UpdateKiosk(c.Request.Context(), id, &service.UpdateKioskInput{
		Name:        req.Name,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		OpenHours:   req.OpenHours,
		Status:      req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kiosk updated successfully", kiosk)
}

// Delete handles deleting a kiosk (admin only)
func (h *KioskHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid kiosk ID")
		return
	}

	if err := h.kioskService.DeleteKiosk(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

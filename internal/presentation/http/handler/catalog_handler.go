package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/application/service"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/request"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/response"
	"github.com/nguyenduy/opticart-api/pkg/pagination"
)

// CatalogHandler handles frame and lens catalog HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListFrames handles listing frames
// @Summary List Frames
// @Description List frames with pagination and search
// @Tags catalog
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search by name or code"
// @Success 200 {object} response.APIResponse
// @Router /frames [get]
func (h *CatalogHandler) ListFrames(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.catalogService.ListFrames(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Frames retrieved successfully", result)
}

// GetFrame handles getting a single frame
func (h *CatalogHandler) GetFrame(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid frame ID")
		return
	}

	frame, err := h.catalogService.GetFrame(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Frame retrieved successfully", frame)
}

// CreateFrame handles creating a frame (staff only)
func (h *CatalogHandler) CreateFrame(c *gin.Context) {
	var req request.CreateFrameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	frame, err := h.catalogService.CreateFrame(c.Request.Context(), &service.CreateFrameInput{
		Name:          req.Name,
		Price:         req.Price,
		Images:        req.Images,
		Quantity:      req.Quantity,
		QuantityAlert: req.QuantityAlert,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Frame created successfully", frame)
}

// UpdateFrame handles updating a frame (staff only)
func (h *CatalogHandler) UpdateFrame(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid frame ID")
		return
	}

	var req request.UpdateFrameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	frame, err := h.catalogService.UpdateFrame(c.Request.Context(), &service.UpdateFrameInput{
		ID:            id,
		Name:          req.Name,
		Price:         req.Price,
		Images:        req.Images,
		Quantity:      req.Quantity,
		QuantityAlert: req.QuantityAlert,
		Notes:         req.Notes,
		Status:        req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Frame updated successfully", frame)
}

// DeleteFrame handles deleting a frame (staff only)
func (h *CatalogHandler) DeleteFrame(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid frame ID")
		return
	}

	if err := h.catalogService.DeleteFrame(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// GetLowStockFrames handles listing frames at or below their alert level
func (h *CatalogHandler) GetLowStockFrames(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.catalogService.GetLowStockFrames(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Low stock frames retrieved successfully", result)
}

// ListLensOptions handles listing lenses grouped by lens type
// @Summary List Lens Options
// @Description List active lenses grouped by lens type
// @Tags catalog
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /lenses [get]
func (h *CatalogHandler) ListLensOptions(c *gin.Context) {
	groups, err := h.catalogService.ListLensOptions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lens options retrieved successfully", gin.H{
		"lens_types": groups,
	})
}

// GetLens handles getting a single lens
func (h *CatalogHandler) GetLens(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid lens ID")
		return
	}

	lens, err := h.catalogService.GetLens(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lens retrieved successfully", lens)
}

// CreateLens handles creating a lens (staff only)
func (h *CatalogHandler) CreateLens(c *gin.Context) {
	var req request.CreateLensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lensTypeID, err := uuid.Parse(req.LensTypeID)
	if err != nil {
		response.BadRequest(c, "Invalid lens type ID")
		return
	}

	lens, err := h.catalogService.CreateLens(c.Request.Context(), &service.CreateLensInput{
		LensTypeID:  lensTypeID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Features:    req.Features,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Lens created successfully", lens)
}

// CreateLensType handles creating a lens type (staff only)
func (h *CatalogHandler) CreateLensType(c *gin.Context) {
	var req request.CreateLensTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lensType, err := h.catalogService.CreateLensType(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Lens type created successfully", lensType)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/application/service"
	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	"github.com/nguyenduy/opticart-api/internal/domain/prescription"
	"github.com/nguyenduy/opticart-api/internal/domain/selection"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/request"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/response"
)

// SelectionHandler handles the lens selection wizard HTTP requests
type SelectionHandler struct {
	selectionService *service.SelectionService
}

// NewSelectionHandler creates a new selection handler
func NewSelectionHandler(selectionService *service.SelectionService) *SelectionHandler {
	return &SelectionHandler{selectionService: selectionService}
}

// Start opens a selection session for a frame
// @Summary Start Selection
// @Description Open a lens selection session for a frame
// @Tags selection
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.StartSelectionRequest true "Frame and lens mode"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /selection [post]
func (h *SelectionHandler) Start(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.StartSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	eyeGlassID, err := uuid.Parse(req.EyeGlassID)
	if err != nil {
		response.BadRequest(c, "Invalid frame ID")
		return
	}

	state, err := h.selectionService.Start(c.Request.Context(), *accountID, eyeGlassID, enum.LensMode(req.Mode))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Selection session started", gin.H{
		"session": state,
	})
}

// Get returns the caller's current selection session
// @Summary Get Selection
// @Description Get the current selection session
// @Tags selection
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /selection [get]
func (h *SelectionHandler) Get(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	state, err := h.selectionService.Get(c.Request.Context(), *accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Selection session retrieved", gin.H{
		"session": state,
	})
}

// ChooseLens records a lens choice for the session
// @Summary Choose Lens
// @Description Record a lens choice for one eye or both
// @Tags selection
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.ChooseLensRequest true "Lens choice"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /selection/lens [post]
func (h *SelectionHandler) ChooseLens(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.ChooseLensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lensID, err := uuid.Parse(req.LensID)
	if err != nil {
		response.BadRequest(c, "Invalid lens ID")
		return
	}

	eye := enum.EyeSideLeft
	if req.Eye == "right" {
		eye = enum.EyeSideRight
	}

	state, err := h.selectionService.ChooseLens(c.Request.Context(), *accountID, lensID, eye)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lens recorded", gin.H{
		"session": state,
	})
}

// ChooseProfile picks the wearer profile for the session
// @Summary Choose Profile
// @Description Pick the wearer profile for the session
// @Tags selection
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.ChooseProfileRequest true "Profile choice"
// @Success 200 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /selection/profile [post]
func (h *SelectionHandler) ChooseProfile(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.ChooseProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		response.BadRequest(c, "Invalid profile ID")
		return
	}

	state, err := h.selectionService.ChooseProfile(c.Request.Context(), *accountID, profileID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile selected", gin.H{
		"session": state,
	})
}

// ListRecords lists the refraction records for the chosen profile
// @Summary List Refraction Records
// @Description List refraction records for the chosen profile
// @Tags selection
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /selection/records [get]
func (h *SelectionHandler) ListRecords(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	records, err := h.selectionService.ListRecords(c.Request.Context(), *accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Refraction records retrieved", gin.H{
		"records": records,
	})
}

// ChooseRecord seeds the prescription from a refraction record
// @Summary Choose Record
// @Description Seed the prescription from a refraction record
// @Tags selection
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.ChooseRecordRequest true "Record choice"
// @Success 200 {object} response.APIResponse
// @Router /selection/record [post]
func (h *SelectionHandler) ChooseRecord(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.ChooseRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	recordID, err := uuid.Parse(req.RecordID)
	if err != nil {
		response.BadRequest(c, "Invalid record ID")
		return
	}

	state, err := h.selectionService.ChooseRecord(c.Request.Context(), *accountID, recordID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Prescription seeded from record", gin.H{
		"session": state,
	})
}

// FreshStart clears seeded values and moves to manual entry
// @Summary Fresh Start
// @Description Skip measurement history and enter the prescription manually
// @Tags selection
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /selection/fresh [post]
func (h *SelectionHandler) FreshStart(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	state, err := h.selectionService.FreshStart(c.Request.Context(), *accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Starting with a blank prescription", gin.H{
		"session": state,
	})
}

// SubmitPrescription validates the prescription and completes the session
// @Summary Submit Prescription
// @Description Validate the prescription, build the product, and add it to the cart
// @Tags selection
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.PrescriptionRequest true "Prescription values"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /selection/prescription [post]
func (h *SelectionHandler) SubmitPrescription(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.PrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	p := prescription.Prescription{
		SphereOD:   req.SphereOD,
		CylinderOD: req.CylinderOD,
		AxisOD:     req.AxisOD,
		SphereOS:   req.SphereOS,
		CylinderOS: req.CylinderOS,
		AxisOS:     req.AxisOS,
		AddOD:      req.AddOD,
		AddOS:      req.AddOS,
		PD:         req.PD,
	}

	product, err := h.selectionService.SubmitPrescription(c.Request.Context(), *accountID, p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product added to cart", gin.H{
		"product": product,
	})
}

// Back steps the session backwards
// @Summary Step Back
// @Description Step the session back one step, or exit from the first step
// @Tags selection
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /selection/back [post]
func (h *SelectionHandler) Back(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	state, err := h.selectionService.Back(c.Request.Context(), *accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if state.Step == selection.StepExited {
		response.OK(c, "Selection session closed", nil)
		return
	}
	response.OK(c, "Stepped back", gin.H{
		"session": state,
	})
}

// Abandon drops the current session
// @Summary Abandon Selection
// @Description Drop the current selection session
// @Tags selection
// @Security BearerAuth
// @Success 204
// @Router /selection [delete]
func (h *SelectionHandler) Abandon(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.selectionService.Abandon(c.Request.Context(), *accountID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

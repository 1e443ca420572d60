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

// ProfileHandler handles wearer profile and refraction record HTTP requests
type ProfileHandler struct {
	profileService    *service.ProfileService
	refractionService *service.RefractionService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService, refractionService *service.RefractionService) *ProfileHandler {
	return &ProfileHandler{
		profileService:    profileService,
		refractionService: refractionService,
	}
}

// List handles listing the caller's wearer profiles
func (h *ProfileHandler) List(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.profileService.ListProfiles(c.Request.Context(), *accountID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Profiles retrieved successfully", result)
}

// Get handles getting a single profile
func (h *ProfileHandler) Get(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid profile ID")
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), *accountID, id, IsStaff(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", profile)
}

// Create handles creating a wearer profile
func (h *ProfileHandler) Create(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.profileService.CreateProfile(c.Request.Context(), &service.CreateProfileInput{
		AccountID:   *accountID,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Image:       req.Image,
		Birthday:    req.Birthday,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Profile created successfully", profile)
}

// Update handles updating a wearer profile
func (h *ProfileHandler) Update(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid profile ID")
		return
	}

	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), &service.UpdateProfileInput{
		AccountID:   *accountID,
		ID:          id,
		IsStaff:     IsStaff(c),
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Image:       req.Image,
		Birthday:    req.Birthday,
		Status:      req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile updated successfully", profile)
}

// Delete handles deleting a wearer profile
func (h *ProfileHandler) Delete(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid profile ID")
		return
	}

	if err := h.profileService.DeleteProfile(c.Request.Context(), *accountID, id, IsStaff(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListRecords handles listing refraction records for a profile
func (h *ProfileHandler) ListRecords(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid profile ID")
		return
	}

	records, err := h.refractionService.ListRecords(c.Request.Context(), *accountID, profileID, IsStaff(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Refraction records retrieved successfully", gin.H{
		"records": records,
	})
}

// CreateRecord handles storing a refraction exam (staff only)
func (h *ProfileHandler) CreateRecord(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		response.BadRequest(c, "Invalid profile ID")
		return
	}

	measurements := make([]service.MeasurementInput, len(req.Measurements))
	for i, m := range req.Measurements {
		eye := enum.EyeSideLeft
		if m.EyeSide == "right" {
			eye = enum.EyeSideRight
		}
		measurements[i] = service.MeasurementInput{
			EyeSide:         eye,
			TestType:        m.TestType,
			Spherical:       m.Spherical,
			Cylindrical:     m.Cylindrical,
			Axis:            m.Axis,
			PupilDistance:   m.PupilDistance,
			LastCheckupDate: m.LastCheckupDate,
			NextCheckupDate: m.NextCheckupDate,
			Notes:           m.Notes,
		}
	}

	record, err := h.refractionService.CreateRecord(c.Request.Context(), &service.CreateRecordInput{
		ProfileID:    profileID,
		EmployeeID:   *accountID,
		ExamDate:     req.ExamDate,
		Measurements: measurements,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Refraction record created successfully", record)
}

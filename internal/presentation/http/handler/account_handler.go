package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/application/service"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/request"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/response"
)

// AccountHandler handles account management HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// List handles listing accounts with pagination
// @Summary List Accounts
// @Description Get a paginated list of accounts with their roles
// @Tags accounts
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(15)
// @Param search query string false "Search query"
// @Success 200 {object} response.APIResponse
// @Router /accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	search := c.Query("search")

	output, err := h.accountService.ListAccounts(c.Request.Context(), &service.ListAccountsInput{
		Page:    page,
		PerPage: perPage,
		Search:  search,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// Transform accounts to response format (exclude sensitive data)
	accounts := make([]gin.H, len(output.Accounts))
	for i, account := range output.Accounts {
		accounts[i] = gin.H{
			"id":         account.ID,
			"full_name":  account.FullName,
			"email":      account.Email,
			"username":   account.Username,
			"photo":      account.Photo,
			"roles":      account.Roles,
			"created_at": account.CreatedAt,
			"updated_at": account.UpdatedAt,
		}
	}

	response.OK(c, "Accounts retrieved successfully", gin.H{
		"items": accounts,
		"pagination": gin.H{
			"current_page": output.Page,
			"per_page":     output.PerPage,
			"total":        output.Total,
			"total_pages":  output.TotalPages,
			"has_next":     output.Page < output.TotalPages,
			"has_prev":     output.Page > 1,
		},
	})
}

// Get handles getting a single account by ID
// @Summary Get Account
// @Description Get an account by ID with roles and permissions
// @Tags accounts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.APIResponse
// @Router /accounts/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account retrieved successfully", gin.H{
		"account": gin.H{
			"id":          account.ID,
			"full_name":   account.FullName,
			"email":       account.Email,
			"username":    account.Username,
			"photo":       account.Photo,
			"roles":       account.Roles,
			"permissions": account.GetPermissions(),
			"created_at":  account.CreatedAt,
			"updated_at":  account.UpdatedAt,
		},
	})
}

// CreateStaff handles creating a staff account
// @Summary Create Staff
// @Description Create a staff account, optionally bound to a kiosk
// @Tags accounts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateStaffRequest true "Staff data"
// @Success 201 {object} response.APIResponse
// @Router /accounts/staff [post]
func (h *AccountHandler) CreateStaff(c *gin.Context) {
	var req request.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateStaffInput{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.KioskID != nil {
		kioskID, err := uuid.Parse(*req.KioskID)
		if err != nil {
			response.BadRequest(c, "Invalid kiosk ID")
			return
		}
		input.KioskID = &kioskID
	}

	account, err := h.accountService.CreateStaff(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Staff account created successfully", gin.H{
		"account": gin.H{
			"id":        account.ID,
			"full_name": account.FullName,
			"email":     account.Email,
			"username":  account.Username,
		},
	})
}

// UpdateRoles handles updating account roles
// @Summary Update Account Roles
// @Description Update the roles assigned to an account
// @Tags accounts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body request.UpdateAccountRolesRequest true "Role IDs"
// @Success 200 {object} response.APIResponse
// @Router /accounts/{id}/roles [put]
func (h *AccountHandler) UpdateRoles(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid account ID")
		return
	}

	var req request.UpdateAccountRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.accountService.UpdateAccountRoles(c.Request.Context(), &service.UpdateAccountRolesInput{
		AccountID: accountID,
		RoleIDs:   req.RoleIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account roles updated successfully", gin.H{
		"account": gin.H{
			"id":          account.ID,
			"full_name":   account.FullName,
			"email":       account.Email,
			"username":    account.Username,
			"roles":       account.Roles,
			"permissions": account.GetPermissions(),
		},
	})
}

// Delete handles deleting an account
// @Summary Delete Account
// @Description Soft delete an account
// @Tags accounts
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} response.APIResponse
// @Router /accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid account ID")
		return
	}

	// Prevent self-deletion
	currentAccountID := GetAccountID(c)
	if currentAccountID != nil && *currentAccountID == accountID {
		response.BadRequest(c, "Cannot delete your own account")
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), accountID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account deleted successfully", nil)
}

// ListRoles handles listing all available roles
// @Summary List Roles
// @Description Get all available roles with their permissions
// @Tags accounts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /roles [get]
func (h *AccountHandler) ListRoles(c *gin.Context) {
	roles, err := h.accountService.ListRoles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Roles retrieved successfully", gin.H{
		"roles": roles,
	})
}

// ListPermissions handles listing all available permissions
// @Summary List Permissions
// @Description Get all available permissions
// @Tags accounts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /permissions [get]
func (h *AccountHandler) ListPermissions(c *gin.Context) {
	permissions, err := h.accountService.ListPermissions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response.OK(c, "Permissions retrieved successfully", gin.H{
		"permissions": permissions,
	})
}

package handler

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/nguyenduy/opticart-api/internal/application/service"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/request"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/response"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles account login
// @Summary Login
// @Description Authenticate an account and return tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"account": gin.H{
			"id":          output.Account.ID,
			"full_name":   output.Account.FullName,
			"email":       output.Account.Email,
			"username":    output.Account.Username,
			"photo":       output.Account.Photo,
			"roles":       output.Account.Roles,
			"permissions": output.Account.GetPermissions(),
		},
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	})
}

// Register handles account registration
// @Summary Register
// @Description Create a new customer account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RegisterRequest true "Registration data"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.authService.Register(c.Request.Context(), &service.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Registration successful", gin.H{
		"account": gin.H{
			"id":        account.ID,
			"full_name": account.FullName,
			"email":     account.Email,
			"username":  account.Username,
		},
	})
}

// RefreshToken handles token refresh
// @Summary Refresh Token
// @Description Refresh access token using refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed successfully", gin.H{
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	})
}

// GoogleAuth redirects to the Google consent screen
// @Summary Google Login
// @Description Redirect to the Google OAuth consent screen
// @Tags auth
// @Success 307
// @Router /auth/google [get]
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		response.Error(c, err)
		return
	}
	state := hex.EncodeToString(buf)

	authURL, err := h.authService.GoogleAuthURL(state)
	if err != nil {
		response.BadRequest(c, "Google login is not available")
		return
	}

	c.SetCookie("oauth_state", state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleCallback completes the Google OAuth flow
// @Summary Google Callback
// @Description Handle the Google OAuth callback and redirect to the frontend
// @Tags auth
// @Success 307
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	successURL, errorURL := h.authService.GoogleRedirectURLs()

	state := c.Query("state")
	cookieState, err := c.Cookie("oauth_state")
	if err != nil || state == "" || state != cookieState {
		c.Redirect(http.StatusTemporaryRedirect, errorURL+"?error=invalid_state")
		return
	}
	c.SetCookie("oauth_state", "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusTemporaryRedirect, errorURL+"?error=missing_code")
		return
	}

	output, err := h.authService.LoginWithGoogle(c.Request.Context(), code)
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, errorURL+"?error=login_failed")
		return
	}

	params := url.Values{}
	params.Set("access_token", output.AccessToken)
	params.Set("refresh_token", output.RefreshToken)
	c.Redirect(http.StatusTemporaryRedirect, successURL+"?"+params.Encode())
}

// Logout handles account logout
// @Summary Logout
// @Description Logout (client should discard tokens)
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// JWT is stateless, so we just return success
	// Client should discard the tokens
	response.OK(c, "Logged out successfully", nil)
}

// GetMe handles fetching the current account
// @Summary Current Account
// @Description Get the authenticated account's details
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	account, err := h.authService.GetCurrentAccount(c.Request.Context(), *accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account retrieved successfully", gin.H{
		"account": gin.H{
			"id":           account.ID,
			"full_name":    account.FullName,
			"email":        account.Email,
			"username":     account.Username,
			"phone_number": account.PhoneNumber,
			"photo":        account.Photo,
			"roles":        account.Roles,
			"permissions":  account.GetPermissions(),
			"created_at":   account.CreatedAt,
			"updated_at":   account.UpdatedAt,
		},
	})
}

// UpdateMe handles updating the current account
// @Summary Update Account
// @Description Update the authenticated account's details
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /me [put]
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req struct {
		FullName    string  `json:"full_name"`
		Username    string  `json:"username"`
		PhoneNumber *string `json:"phone_number"`
		Photo       *string `json:"photo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.authService.UpdateAccount(c.Request.Context(), &service.UpdateAccountInput{
		AccountID:   *accountID,
		FullName:    req.FullName,
		Username:    req.Username,
		PhoneNumber: req.PhoneNumber,
		Photo:       req.Photo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account updated successfully", gin.H{
		"account": account,
	})
}

// ChangePassword handles password change
// @Summary Change Password
// @Description Change the authenticated account's password
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.ChangePasswordRequest true "Password change data"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /me/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	var req request.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), &service.ChangePasswordInput{
		AccountID:       *accountID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		if apperror.IsAppError(err) {
			response.Error(c, err)
		} else {
			response.BadRequest(c, err.Error())
		}
		return
	}

	response.OK(c, "Password changed successfully", nil)
}

// ForgotPassword handles forgot password request
// @Summary Forgot Password
// @Description Send password reset email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.ForgotPasswordRequest true "Forgot password request"
// @Success 200 {object} response.APIResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req request.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Call the service (it handles email enumeration protection internally)
	_ = h.authService.ForgotPassword(c.Request.Context(), &service.ForgotPasswordInput{
		Email: req.Email,
	})

	// Always return success to prevent email enumeration
	response.OK(c, "If the email exists, a reset link has been sent", nil)
}

// ResetPassword handles password reset
// @Summary Reset Password
// @Description Reset password using token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.ResetPasswordRequest true "Reset password request"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req request.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), &service.ResetPasswordInput{
		Email:       req.Email,
		Token:       req.Token,
		NewPassword: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Password reset successfully", nil)
}

package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
	"github.com/nguyenduy/opticart-api/pkg/email"
	"github.com/nguyenduy/opticart-api/pkg/oauth"
	"github.com/nguyenduy/opticart-api/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	accountRepo       repository.AccountRepository
	roleRepo          repository.RoleRepository
	passwordResetRepo repository.PasswordResetTokenRepository
	jwtManager        *utils.JWTManager
	emailService      *email.EmailService
	googleOAuth       *oauth.GoogleOAuthService
}

// NewAuthService creates a new auth service
func NewAuthService(
	accountRepo repository.AccountRepository,
	roleRepo repository.RoleRepository,
	passwordResetRepo repository.PasswordResetTokenRepository,
	jwtManager *utils.JWTManager,
	emailService *email.EmailService,
	googleOAuth *oauth.GoogleOAuthService,
) *AuthService {
	return &AuthService{
		accountRepo:       accountRepo,
		roleRepo:          roleRepo,
		passwordResetRepo: passwordResetRepo,
		jwtManager:        jwtManager,
		emailService:      emailService,
		googleOAuth:       googleOAuth,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Account      *entity.Account
	AccessToken  string
	RefreshToken string
}

// Login authenticates an account and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	account, err := s.accountRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, account.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	account, err = s.accountRepo.GetWithRoles(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(account)
}

// RegisterInput represents the registration input
type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

// Register creates a new customer account
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*entity.Account, error) {
	existing, err := s.accountRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	username := input.Email
	if idx := strings.IndexByte(input.Email, '@'); idx > 0 {
		username = input.Email[:idx]
	}

	account := &entity.Account{
		FullName: input.FullName,
		Username: username,
		Email:    input.Email,
		Password: hashedPassword,
		Provider: "local",
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	// Assign default "customer" role
	defaultRole, err := s.roleRepo.GetByName(ctx, "customer")
	if err != nil {
		return account, nil
	}
	if defaultRole != nil {
		_ = s.accountRepo.AssignRole(ctx, account.ID, defaultRole.ID)
	}

	return account, nil
}

// GoogleAuthURL returns the Google consent URL for the given state
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if !s.googleOAuth.IsConfigured() {
		return "", oauth.ErrOAuthNotConfigured
	}
	return s.googleOAuth.GetAuthURL(state), nil
}

// GoogleRedirectURLs returns the frontend URLs the callback redirects to
func (s *AuthService) GoogleRedirectURLs() (success, failure string) {
	return s.googleOAuth.GetFrontendSuccessURL(), s.googleOAuth.GetFrontendErrorURL()
}

// LoginWithGoogle exchanges the OAuth callback code for tokens, creating
// the account on first login
func (s *AuthService) LoginWithGoogle(ctx context.Context, code string) (*LoginOutput, error) {
	token, err := s.googleOAuth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid authorization code")
	}

	info, err := s.googleOAuth.GetUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	if !info.VerifiedEmail {
		return nil, apperror.NewBadRequestError("Google account email is not verified")
	}

	account, err := s.accountRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}

	if account == nil {
		username := info.Email
		if idx := strings.IndexByte(info.Email, '@'); idx > 0 {
			username = info.Email[:idx]
		}

		now := time.Now().UTC()
		account = &entity.Account{
			FullName:        info.Name,
			Username:        username,
			Email:           info.Email,
			Provider:        "google",
			ProviderID:      &info.ID,
			Photo:           &info.Picture,
			EmailVerifiedAt: &now,
		}
		if err := s.accountRepo.Create(ctx, account); err != nil {
			return nil, err
		}
		if defaultRole, err := s.roleRepo.GetByName(ctx, "customer"); err == nil && defaultRole != nil {
			_ = s.accountRepo.AssignRole(ctx, account.ID, defaultRole.ID)
		}
	}

	withRoles, err := s.accountRepo.GetWithRoles(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	if withRoles != nil {
		account = withRoles
	}

	return s.issueTokens(account)
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	accountID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	account, err := s.accountRepo.GetWithRoles(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.ErrNotFound
	}

	return s.issueTokens(account)
}

func (s *AuthService) issueTokens(account *entity.Account) (*LoginOutput, error) {
	roles := make([]string, 0)
	for _, role := range account.Roles {
		roles = append(roles, role.Name)
	}
	permissions := account.GetPermissions()

	accessToken, err := s.jwtManager.GenerateAccessToken(account.ID, account.Email, roles, permissions)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(account.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Account:      account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetCurrentAccount returns the current account by ID
func (s *AuthService) GetCurrentAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	account, err := s.accountRepo.GetWithRoles(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.ErrNotFound
	}
	return account, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	AccountID       uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword changes the account's password
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	account, err := s.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return err
	}
	if account == nil {
		return apperror.ErrNotFound
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, account.Password) {
		return errors.New("current password is incorrect")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	account.Password = hashedPassword
	return s.accountRepo.Update(ctx, account)
}

// UpdateAccountInput represents the update account input
type UpdateAccountInput struct {
	AccountID   uuid.UUID
	FullName    string
	Username    string
	PhoneNumber *string
	Photo       *string
}

// UpdateAccount updates the account's own details
func (s *AuthService) UpdateAccount(ctx context.Context, input *UpdateAccountInput) (*entity.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.ErrNotFound
	}

	if input.Username != "" && input.Username != account.Username {
		existing, err := s.accountRepo.GetByUsername(ctx, input.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != account.ID {
			return nil, apperror.NewConflictError("Username already taken")
		}
		account.Username = input.Username
	}

	if input.FullName != "" {
		account.FullName = input.FullName
	}
	if input.PhoneNumber != nil {
		account.PhoneNumber = input.PhoneNumber
	}
	if input.Photo != nil {
		account.Photo = input.Photo
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// ForgotPasswordInput represents the forgot password input
type ForgotPasswordInput struct {
	Email string
}

// ForgotPassword initiates the password reset process
func (s *AuthService) ForgotPassword(ctx context.Context, input *ForgotPasswordInput) error {
	// Check if account exists (but don't reveal this to the caller)
	account, err := s.accountRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		// Log error but don't return it to prevent email enumeration
		return nil
	}
	if account == nil {
		// Account doesn't exist, but return nil to prevent email enumeration
		return nil
	}

	// Delete any existing tokens for this email
	_ = s.passwordResetRepo.DeleteByEmail(ctx, input.Email)

	// Generate a secure random token
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return err
	}
	token := hex.EncodeToString(tokenBytes)

	resetToken := &entity.PasswordResetToken{
		Email:     input.Email,
		Token:     token,
		ExpiresAt: time.Now().Add(1 * time.Hour),
		Used:      false,
	}

	if err := s.passwordResetRepo.Create(ctx, resetToken); err != nil {
		return err
	}

	if err := s.emailService.SendPasswordResetEmail(input.Email, token); err != nil {
		return err
	}

	return nil
}

// ResetPasswordInput represents the reset password input
type ResetPasswordInput struct {
	Email       string
	Token       string
	NewPassword string
}

// ResetPassword resets the account's password using a valid token
func (s *AuthService) ResetPassword(ctx context.Context, input *ResetPasswordInput) error {
	resetToken, err := s.passwordResetRepo.GetByToken(ctx, input.Token)
	if err != nil {
		return err
	}
	if resetToken == nil {
		return apperror.NewBadRequestError("Invalid or expired reset token")
	}

	if resetToken.Email != input.Email {
		return apperror.NewBadRequestError("Invalid or expired reset token")
	}

	if !resetToken.IsValid() {
		return apperror.NewBadRequestError("Invalid or expired reset token")
	}

	account, err := s.accountRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if account == nil {
		return apperror.NewBadRequestError("Invalid or expired reset token")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	account.Password = hashedPassword
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return err
	}

	if err := s.passwordResetRepo.MarkAsUsed(ctx, input.Token); err != nil {
		// Password was already changed, token cleanup is best effort
		return nil
	}

	_ = s.passwordResetRepo.DeleteByEmail(ctx, input.Email)

	return nil
}

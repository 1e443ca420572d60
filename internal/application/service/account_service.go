package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
	"github.com/nguyenduy/opticart-api/pkg/pagination"
	"github.com/nguyenduy/opticart-api/pkg/utils"
)

// AccountService handles account administration
type AccountService struct {
	accountRepo    repository.AccountRepository
	roleRepo       repository.RoleRepository
	permissionRepo repository.PermissionRepository
	kioskRepo      repository.KioskRepository
}

// NewAccountService creates a new account service
func NewAccountService(
	accountRepo repository.AccountRepository,
	roleRepo repository.RoleRepository,
	permissionRepo repository.PermissionRepository,
	kioskRepo repository.KioskRepository,
) *AccountService {
	return &AccountService{
		accountRepo:    accountRepo,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		kioskRepo:      kioskRepo,
	}
}

// ListAccountsInput represents the input for listing accounts
type ListAccountsInput struct {
	Page    int
	PerPage int
	Search  string
}

// ListAccountsOutput represents the output for listing accounts
type ListAccountsOutput struct {
	Accounts   []entity.Account
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

// ListAccounts returns a paginated list of accounts with their roles
func (s *AccountService) ListAccounts(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	params := &pagination.PaginationParams{
		Page:    input.Page,
		PerPage: input.PerPage,
	}
	params.Validate()

	accounts, total, err := s.accountRepo.List(ctx, params, input.Search)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / params.PerPage
	if int(total)%params.PerPage > 0 {
		totalPages++
	}

	return &ListAccountsOutput{
		Accounts:   accounts,
		Total:      total,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
	}, nil
}

// GetAccount returns an account by ID with roles and permissions
func (s *AccountService) GetAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	account, err := s.accountRepo.GetWithRoles(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.ErrNotFound
	}
	return account, nil
}

// CreateStaffInput represents the input for creating a staff account
type CreateStaffInput struct {
	FullName string
	Username string
	Email    string
	Password string
	KioskID  *uuid.UUID
}

// CreateStaff creates a staff account, optionally bound to a kiosk
func (s *AccountService) CreateStaff(ctx context.Context, input *CreateStaffInput) (*entity.Account, error) {
	existing, err := s.accountRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	if input.KioskID != nil {
		kiosk, err := s.kioskRepo.GetByID(ctx, *input.KioskID)
		if err != nil {
			return nil, err
		}
		if kiosk == nil {
			return nil, apperror.NewNotFoundError("Kiosk")
		}
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	account := &entity.Account{
		FullName: input.FullName,
		Username: input.Username,
		Email:    input.Email,
		Password: hashedPassword,
		Provider: "local",
		KioskID:  input.KioskID,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	staffRole, err := s.roleRepo.GetByName(ctx, "staff")
	if err == nil && staffRole != nil {
		_ = s.accountRepo.AssignRole(ctx, account.ID, staffRole.ID)
	}

	return s.accountRepo.GetWithRoles(ctx, account.ID)
}

// UpdateAccountRolesInput represents the input for updating account roles
type UpdateAccountRolesInput struct {
	AccountID uuid.UUID
	RoleIDs   []uint
}

// UpdateAccountRoles updates the roles assigned to an account
func (s *AccountService) UpdateAccountRoles(ctx context.Context, input *UpdateAccountRolesInput) (*entity.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.ErrNotFound
	}

	withRoles, err := s.accountRepo.GetWithRoles(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	desiredRoles := make(map[uint]bool)
	for _, roleID := range input.RoleIDs {
		desiredRoles[roleID] = true
	}

	currentRoles := make(map[uint]bool)
	for _, role := range withRoles.Roles {
		currentRoles[role.ID] = true
	}

	for _, role := range withRoles.Roles {
		if !desiredRoles[role.ID] {
			if err := s.accountRepo.RemoveRole(ctx, input.AccountID, role.ID); err != nil {
				return nil, err
			}
		}
	}

	for roleID := range desiredRoles {
		if !currentRoles[roleID] {
			role, err := s.roleRepo.GetByID(ctx, roleID)
			if err != nil {
				return nil, err
			}
			if role == nil {
				continue
			}
			if err := s.accountRepo.AssignRole(ctx, input.AccountID, roleID); err != nil {
				return nil, err
			}
		}
	}

	return s.accountRepo.GetWithRoles(ctx, input.AccountID)
}

// DeleteAccount soft deletes an account
func (s *AccountService) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return apperror.ErrNotFound
	}

	return s.accountRepo.Delete(ctx, accountID)
}

// ListRoles returns all available roles
func (s *AccountService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return s.roleRepo.List(ctx)
}

// ListPermissions returns all available permissions
func (s *AccountService) ListPermissions(ctx context.Context) ([]entity.Permission, error) {
	return s.permissionRepo.List(ctx)
}

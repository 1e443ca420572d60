package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account represents a sign-in account: a customer, a kiosk staff member or
// an administrator
type Account struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FullName        string         `gorm:"size:255;not null" json:"full_name"`
	Username        string         `gorm:"size:255;unique" json:"username"`
	Email           string         `gorm:"size:255;unique;not null" json:"email"`
	Password        string         `gorm:"size:255" json:"-"`
	Provider        string         `gorm:"size:50;default:'local'" json:"provider"`
	ProviderID      *string        `gorm:"size:255" json:"-"`
	PhoneNumber     *string        `gorm:"size:50" json:"phone_number,omitempty"`
	Photo           *string        `gorm:"size:255" json:"photo,omitempty"`
	KioskID         *uuid.UUID     `gorm:"type:uuid;index" json:"kiosk_id,omitempty"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Roles    []Role    `gorm:"many2many:model_has_roles;foreignKey:ID;joinForeignKey:model_id;References:ID;joinReferences:role_id" json:"roles,omitempty"`
	Kiosk    *Kiosk    `gorm:"foreignKey:KioskID" json:"kiosk,omitempty"`
	Profiles []Profile `gorm:"foreignKey:AccountID" json:"-"`
	Orders   []Order   `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}

// Role represents a role in the RBAC system
type Role struct {
	ID          uint         `gorm:"primary_key" json:"id"`
	Name        string       `gorm:"size:255;not null" json:"name"`
	GuardName   string       `gorm:"size:255;default:'web'" json:"guard_name"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Permissions []Permission `gorm:"many2many:role_has_permissions;foreignKey:ID;joinForeignKey:role_id;References:ID;joinReferences:permission_id" json:"permissions,omitempty"`
}

// TableName returns the table name for the Role model
func (Role) TableName() string {
	return "roles"
}

// Permission represents a permission in the RBAC system
type Permission struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	GuardName string    `gorm:"size:255;default:'web'" json:"guard_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Permission model
func (Permission) TableName() string {
	return "permissions"
}

// HasPermission checks if the account has a specific permission
func (a *Account) HasPermission(permissionName string) bool {
	for _, role := range a.Roles {
		for _, permission := range role.Permissions {
			if permission.Name == permissionName {
				return true
			}
		}
	}
	return false
}

// HasRole checks if the account has a specific role
func (a *Account) HasRole(roleName string) bool {
	for _, role := range a.Roles {
		if role.Name == roleName {
			return true
		}
	}
	return false
}

// GetPermissions returns all permission names granted through the account's
// roles
func (a *Account) GetPermissions() []string {
	seen := make(map[string]bool)
	permissions := make([]string, 0)
	for _, role := range a.Roles {
		for _, permission := range role.Permissions {
			if !seen[permission.Name] {
				seen[permission.Name] = true
				permissions = append(permissions, permission.Name)
			}
		}
	}
	return permissions
}

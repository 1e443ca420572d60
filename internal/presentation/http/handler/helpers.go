package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetAccountID extracts the account ID from the Gin context
func GetAccountID(c *gin.Context) *uuid.UUID {
	accountIDVal, exists := c.Get("account_id")
	if !exists {
		return nil
	}
	accountID, ok := accountIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &accountID
}

// GetAccountEmail extracts the account email from the Gin context
func GetAccountEmail(c *gin.Context) string {
	email, exists := c.Get("account_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// GetAccountRoles extracts the account roles from the Gin context
func GetAccountRoles(c *gin.Context) []string {
	roles, exists := c.Get("account_roles")
	if !exists {
		return nil
	}
	return roles.([]string)
}

// GetAccountPermissions extracts the account permissions from the Gin context
func GetAccountPermissions(c *gin.Context) []string {
	permissions, exists := c.Get("account_permissions")
	if !exists {
		return nil
	}
	return permissions.([]string)
}

// IsStaff checks if the caller has the staff or admin role
func IsStaff(c *gin.Context) bool {
	for _, role := range GetAccountRoles(c) {
		if role == "staff" || role == "admin" {
			return true
		}
	}
	return false
}

// IsAdmin checks if the caller has the admin role
func IsAdmin(c *gin.Context) bool {
	for _, role := range GetAccountRoles(c) {
		if role == "admin" {
			return true
		}
	}
	return false
}

package request

// CreateStaffRequest creates a staff account, optionally bound to a kiosk
type CreateStaffRequest struct {
	FullName string  `json:"full_name" binding:"required,min=2,max=255"`
	Username string  `json:"username" binding:"required,min=3,max=50"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	KioskID  *string `json:"kiosk_id" binding:"omitempty,uuid"`
}

// UpdateAccountRolesRequest replaces the roles assigned to an account
type UpdateAccountRolesRequest struct {
	RoleIDs []uint `json:"role_ids" binding:"required"`
}

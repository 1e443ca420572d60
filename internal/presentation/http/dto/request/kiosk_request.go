package request

// CreateKioskRequest creates a store branch
type CreateKioskRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=255"`
	Address     string `json:"address" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required,min=7,max=20"`
	OpenHours   string `json:"open_hours"`
}

// UpdateKioskRequest applies a partial update to a kiosk
type UpdateKioskRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=255"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,min=7,max=20"`
	OpenHours   *string `json:"open_hours"`
	Status      *bool   `json:"status"`
}

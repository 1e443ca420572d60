package request

import "time"

// CreateVoucherRequest creates a percentage discount voucher
type CreateVoucherRequest struct {
	Name          string    `json:"name" binding:"required,min=2,max=255"`
	Code          string    `json:"code" binding:"required,min=3,max=50"`
	DiscountValue int64     `json:"discount_value" binding:"required,min=1,max=100"`
	Quantity      int       `json:"quantity" binding:"required,min=1"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required"`
}

// UpdateVoucherRequest applies a partial update to a voucher
type UpdateVoucherRequest struct {
	Name          *string    `json:"name" binding:"omitempty,min=2,max=255"`
	DiscountValue *int64     `json:"discount_value" binding:"omitempty,min=1,max=100"`
	Quantity      *int       `json:"quantity" binding:"omitempty,min=0"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	Status        *bool      `json:"status"`
}

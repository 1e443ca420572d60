package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nguyenduy/opticart-api/internal/domain/enum"
)

// Voucher is a discount code applied at checkout. DiscountValue is a
// percentage when DiscountType is PERCENTAGE.
type Voucher struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name          string            `gorm:"size:255;not null" json:"name"`
	Code          string            `gorm:"size:50;unique;not null" json:"code"`
	DiscountType  enum.DiscountType `gorm:"size:20;not null;default:'PERCENTAGE'" json:"discount_type"`
	DiscountValue int64             `gorm:"not null" json:"discount_value"`
	Quantity      int               `gorm:"default:0" json:"quantity"`
	StartDate     time.Time         `json:"start_date"`
	EndDate       time.Time         `json:"end_date"`
	Status        bool              `gorm:"default:true" json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new voucher
func (v *Voucher) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Voucher model
func (Voucher) TableName() string {
	return "vouchers"
}

// IsUsable reports whether the voucher can still be applied at the given time.
func (v *Voucher) IsUsable(now time.Time) bool {
	if !v.Status || v.Quantity <= 0 {
		return false
	}
	if now.Before(v.StartDate) || now.After(v.EndDate) {
		return false
	}
	return true
}

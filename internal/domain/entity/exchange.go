package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nguyenduy/opticart-api/internal/domain/enum"
)

// ExchangeRequest tracks a customer's request to exchange a delivered
// product, usually because the ground prescription turned out wrong.
type ExchangeRequest struct {
	ID             uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	AccountID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"account_id"`
	OrderDetailID  uuid.UUID           `gorm:"type:uuid;not null;index" json:"order_detail_id"`
	Reason         string              `gorm:"type:text;not null" json:"reason"`
	StaffNotes     *string             `gorm:"type:text" json:"staff_notes,omitempty"`
	Status         enum.ExchangeStatus `gorm:"default:0" json:"status"`
	ResolvedByID   *uuid.UUID          `gorm:"type:uuid" json:"resolved_by_id,omitempty"`
	ResolvedAt     *time.Time          `json:"resolved_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	DeletedAt      gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	Account     *Account     `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	OrderDetail *OrderDetail `gorm:"foreignKey:OrderDetailID" json:"order_detail,omitempty"`
}

// BeforeCreate generates a UUID before creating a new exchange request
func (e *ExchangeRequest) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ExchangeRequest model
func (ExchangeRequest) TableName() string {
	return "exchange_requests"
}

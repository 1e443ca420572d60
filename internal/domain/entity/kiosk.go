package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kiosk is a physical store branch. Orders can be picked up at a kiosk
// instead of shipped to an address.
type Kiosk struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Address     string         `gorm:"size:500;not null" json:"address"`
	PhoneNumber string         `gorm:"size:20" json:"phone_number"`
	OpenHours   string         `gorm:"size:100" json:"open_hours"`
	Status      bool           `gorm:"default:true" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new kiosk
func (k *Kiosk) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Kiosk model
func (Kiosk) TableName() string {
	return "kiosks"
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile represents a patient profile attached to an account. One account
// may hold several profiles (family members); each profile accumulates
// refraction records over time.
type Profile struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	AccountID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"account_id"`
	FullName    string         `gorm:"size:255;not null" json:"full_name"`
	PhoneNumber *string        `gorm:"size:50" json:"phone_number,omitempty"`
	Address     *string        `gorm:"type:text" json:"address,omitempty"`
	Image       *string        `gorm:"size:255" json:"image,omitempty"`
	Birthday    *time.Time     `gorm:"type:date" json:"birthday,omitempty"`
	Status      bool           `gorm:"default:true" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Account           Account            `gorm:"foreignKey:AccountID" json:"-"`
	RefractionRecords []RefractionRecord `gorm:"foreignKey:ProfileID" json:"refraction_records,omitempty"`
}

// BeforeCreate generates a UUID before creating a new profile
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nguyenduy/opticart-api/internal/domain/prescription"
)

// EyeGlass represents a frame product in the catalog. Price is in VND.
type EyeGlass struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Code          string         `gorm:"size:100;unique;not null" json:"code"`
	Price         int64          `gorm:"default:0" json:"price"`
	Images        string         `gorm:"type:text" json:"images"`
	Quantity      int            `gorm:"default:0" json:"quantity"`
	QuantityAlert int            `gorm:"default:0" json:"quantity_alert"`
	Rating        float64        `gorm:"type:numeric(3,2);default:0" json:"rating"`
	RatingCount   int            `gorm:"default:0" json:"rating_count"`
	Notes         *string        `gorm:"type:text" json:"notes,omitempty"`
	Status        bool           `gorm:"default:true" json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new eyeglass
func (e *EyeGlass) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the EyeGlass model
func (EyeGlass) TableName() string {
	return "eye_glasses"
}

// ProductGlass is a configured product: a frame paired with a lens per eye
// and the prescription snapshot the lenses will be ground to. It is created
// when a selection session completes and is what order details reference.
type ProductGlass struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	AccountID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"account_id"`
	EyeGlassID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"eye_glass_id"`
	LeftLensID  uuid.UUID  `gorm:"type:uuid;not null" json:"left_lens_id"`
	RightLensID uuid.UUID  `gorm:"type:uuid;not null" json:"right_lens_id"`
	ProfileID   *uuid.UUID `gorm:"type:uuid;index" json:"profile_id,omitempty"`

	// Prescription snapshot, flattened into columns. The snapshot is frozen
	// at configuration time: later edits to the profile's records must not
	// change an ordered product.
	Prescription prescription.Prescription `gorm:"embedded" json:"prescription"`

	EyeGlassPrice int64          `gorm:"default:0" json:"eye_glass_price"`
	LensPrice     int64          `gorm:"default:0" json:"lens_price"`
	Total         int64          `gorm:"default:0" json:"total"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	EyeGlass  *EyeGlass `gorm:"foreignKey:EyeGlassID" json:"eye_glass,omitempty"`
	LeftLens  *Lens     `gorm:"foreignKey:LeftLensID" json:"left_lens,omitempty"`
	RightLens *Lens     `gorm:"foreignKey:RightLensID" json:"right_lens,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product glass
func (p *ProductGlass) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProductGlass model
func (ProductGlass) TableName() string {
	return "product_glasses"
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LensType groups lenses by optical function (single vision, progressive,
// blue-light filtering, ...)
type LensType struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	Status      bool           `gorm:"default:true" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Lenses []Lens `gorm:"foreignKey:LensTypeID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new lens type
func (t *LensType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LensType model
func (LensType) TableName() string {
	return "lens_types"
}

// Lens represents a catalog lens. Catalog data is read-only from the
// selection flow's perspective; sessions reference lenses, they never own
// them. Price is in VND.
type Lens struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	LensTypeID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"lens_type_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	Price       int64          `gorm:"default:0" json:"price"`
	Images      string         `gorm:"type:text" json:"images"`
	Rating      float64        `gorm:"type:numeric(3,2);default:0" json:"rating"`
	RatingCount int            `gorm:"default:0" json:"rating_count"`
	Features    *string        `gorm:"type:text" json:"features,omitempty"`
	Status      bool           `gorm:"default:true" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	LensType *LensType `gorm:"foreignKey:LensTypeID" json:"lens_type,omitempty"`
}

// BeforeCreate generates a UUID before creating a new lens
func (l *Lens) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Lens model
func (Lens) TableName() string {
	return "lenses"
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nguyenduy/opticart-api/internal/domain/enum"
)

// RefractionRecord represents one eye-exam session for a profile. A session
// normally produces two measurements (one per eye), but sessions with zero
// or one measurement occur and are tolerated.
type RefractionRecord struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ProfileID uuid.UUID      `gorm:"type:uuid;not null;index" json:"profile_id"`
	ExamDate  time.Time      `gorm:"type:date;not null" json:"exam_date"`
	Status    bool           `gorm:"default:true" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Profile      Profile             `gorm:"foreignKey:ProfileID" json:"-"`
	Measurements []MeasurementRecord `gorm:"foreignKey:RecordID" json:"measurements,omitempty"`
}

// BeforeCreate generates a UUID before creating a new refraction record
func (r *RefractionRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RefractionRecord model
func (RefractionRecord) TableName() string {
	return "refraction_records"
}

// MeasurementRecord represents the measured optical values for one eye in a
// refraction session. Records are historical data: the selection flow reads
// them to seed a prescription but never mutates them.
type MeasurementRecord struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	RecordID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"record_id"`
	EmployeeID      *uuid.UUID     `gorm:"type:uuid" json:"employee_id,omitempty"`
	TestType        string         `gorm:"size:100" json:"test_type"`
	Spherical       float64        `gorm:"type:numeric(5,2);default:0" json:"spherical"`
	Cylindrical     float64        `gorm:"type:numeric(5,2);default:0" json:"cylindrical"`
	Axis            float64        `gorm:"type:numeric(5,2);default:0" json:"axis"`
	PupilDistance   float64        `gorm:"type:numeric(5,2);default:0" json:"pupil_distance"`
	EyeSide         enum.EyeSide   `gorm:"default:0" json:"eye_side"`
	LastCheckupDate *time.Time     `gorm:"type:date" json:"last_checkup_date,omitempty"`
	NextCheckupDate *time.Time     `gorm:"type:date" json:"next_checkup_date,omitempty"`
	Notes           *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Record RefractionRecord `gorm:"foreignKey:RecordID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new measurement
func (m *MeasurementRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MeasurementRecord model
func (MeasurementRecord) TableName() string {
	return "measurement_records"
}

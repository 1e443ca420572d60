package request

import "time"

// CreateProfileRequest creates a wearer profile under the caller's account
type CreateProfileRequest struct {
	FullName    string     `json:"full_name" binding:"required,min=2,max=255"`
	PhoneNumber *string    `json:"phone_number" binding:"omitempty,min=7,max=20"`
	Address     *string    `json:"address"`
	Image       *string    `json:"image"`
	Birthday    *time.Time `json:"birthday"`
}

// UpdateProfileRequest applies a partial update to a wearer profile
type UpdateProfileRequest struct {
	FullName    *string    `json:"full_name" binding:"omitempty,min=2,max=255"`
	PhoneNumber *string    `json:"phone_number" binding:"omitempty,min=7,max=20"`
	Address     *string    `json:"address"`
	Image       *string    `json:"image"`
	Birthday    *time.Time `json:"birthday"`
	Status      *bool      `json:"status"`
}

// MeasurementRequest is a single per-eye reading within a refraction exam
type MeasurementRequest struct {
	EyeSide         string     `json:"eye_side" binding:"required,oneof=left right"`
	TestType        string     `json:"test_type" binding:"required"`
	Spherical       float64    `json:"spherical"`
	Cylindrical     float64    `json:"cylindrical"`
	Axis            float64    `json:"axis"`
	PupilDistance   float64    `json:"pupil_distance"`
	LastCheckupDate *time.Time `json:"last_checkup_date"`
	NextCheckupDate *time.Time `json:"next_checkup_date"`
	Notes           *string    `json:"notes"`
}

// CreateRecordRequest stores a refraction exam for a profile
type CreateRecordRequest struct {
	ProfileID    string               `json:"profile_id" binding:"required,uuid"`
	ExamDate     time.Time            `json:"exam_date" binding:"required"`
	Measurements []MeasurementRequest `json:"measurements" binding:"required,min=1,dive"`
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	"github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
	"github.com/nguyenduy/opticart-api/pkg/pagination"
)

// ProfileService handles wearer profile operations
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// CreateProfileInput represents the create profile input
type CreateProfileInput struct {
	AccountID   uuid.UUID
	FullName    string
	PhoneNumber *string
	Address     *string
	Image       *string
	Birthday    *time.Time
}

// CreateProfile creates a new wearer profile for an account
func (s *ProfileService) CreateProfile(ctx context.Context, input *CreateProfileInput) (*entity.Profile, error) {
	profile := &entity.Profile{
		AccountID:   input.AccountID,
		FullName:    input.FullName,
		PhoneNumber: input.PhoneNumber,
		Address:     input.Address,
		Image:       input.Image,
		Birthday:    input.Birthday,
		Status:      true,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// GetProfile retrieves a profile, enforcing ownership unless staff
func (s *ProfileService) GetProfile(ctx context.Context, accountID, id uuid.UUID, isStaff bool) (*entity.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Profile")
	}
	if !isStaff && profile.AccountID != accountID {
		return nil, apperror.ErrForbidden
	}
	return profile, nil
}

// ListProfiles lists an account's profiles
func (s *ProfileService) ListProfiles(ctx context.Context, accountID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Profile], error) {
	profiles, total, err := s.profileRepo.ListByAccount(ctx, accountID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(profiles, pag), nil
}

// UpdateProfileInput represents the update profile input
type UpdateProfileInput struct {
	AccountID   uuid.UUID
	ID          uuid.UUID
	IsStaff     bool
	FullName    *string
	PhoneNumber *string
	Address     *string
	Image       *string
	Birthday    *time.Time
	Status      *bool
}

// UpdateProfile updates a wearer profile
func (s *ProfileService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Profile")
	}
	if !input.IsStaff && profile.AccountID != input.AccountID {
		return nil, apperror.ErrForbidden
	}

	if input.FullName != nil {
		profile.FullName = *input.FullName
	}
	if input.PhoneNumber != nil {
		profile.PhoneNumber = input.PhoneNumber
	}
	if input.Address != nil {
		profile.Address = input.Address
	}
	if input.Image != nil {
		profile.Image = input.Image
	}
	if input.Birthday != nil {
		profile.Birthday = input.Birthday
	}
	if input.Status != nil {
		profile.Status = *input.Status
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// DeleteProfile deletes a wearer profile
func (s *ProfileService) DeleteProfile(ctx context.Context, accountID, id uuid.UUID, isStaff bool) error {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if profile == nil {
		return apperror.NewNotFoundError("Profile")
	}
	if !isStaff && profile.AccountID != accountID {
		return apperror.ErrForbidden
	}

	return s.profileRepo.Delete(ctx, id)
}

// RefractionService handles refraction record operations
type RefractionService struct {
	refractionRepo repository.RefractionRepository
	profileRepo    repository.ProfileRepository
}

// NewRefractionService creates a new refraction service
func NewRefractionService(refractionRepo repository.RefractionRepository, profileRepo repository.ProfileRepository) *RefractionService {
	return &RefractionService{refractionRepo: refractionRepo, profileRepo: profileRepo}
}

// MeasurementInput is one eye's measurement on a new record
type MeasurementInput struct {
	EyeSide         enum.EyeSide
	TestType        string
	Spherical       float64
	Cylindrical     float64
	Axis            float64
	PupilDistance   float64
	LastCheckupDate *time.Time
	NextCheckupDate *time.Time
	Notes           *string
}

// CreateRecordInput represents a staff-entered refraction record
type CreateRecordInput struct {
	ProfileID    uuid.UUID
	EmployeeID   uuid.UUID
	ExamDate     time.Time
	Measurements []MeasurementInput
}

// CreateRecord stores a refraction exam with its per-eye measurements
func (s *RefractionService) CreateRecord(ctx context.Context, input *CreateRecordInput) (*entity.RefractionRecord, error) {
	profile, err := s.profileRepo.GetByID(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Profile")
	}

	record := &entity.RefractionRecord{
		ProfileID: input.ProfileID,
		ExamDate:  input.ExamDate,
		Status:    true,
	}
	if err := s.refractionRepo.CreateRecord(ctx, record); err != nil {
		return nil, err
	}

	employeeID := input.EmployeeID
	measurements := make([]entity.MeasurementRecord, 0, len(input.Measurements))
	for _, m := range input.Measurements {
		measurements = append(measurements, entity.MeasurementRecord{
			RecordID:        record.ID,
			EmployeeID:      &employeeID,
			TestType:        m.TestType,
			Spherical:       m.Spherical,
			Cylindrical:     m.Cylindrical,
			Axis:            m.Axis,
			PupilDistance:   m.PupilDistance,
			EyeSide:         m.EyeSide,
			LastCheckupDate: m.LastCheckupDate,
			NextCheckupDate: m.NextCheckupDate,
			Notes:           m.Notes,
		})
	}
	if err := s.refractionRepo.CreateMeasurements(ctx, measurements); err != nil {
		return nil, err
	}

	record.Measurements = measurements
	return record, nil
}

// ListRecords returns a profile's refraction history, newest exam first
func (s *RefractionService) ListRecords(ctx context.Context, accountID, profileID uuid.UUID, isStaff bool) ([]entity.RefractionRecord, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Profile")
	}
	if !isStaff && profile.AccountID != accountID {
		return nil, apperror.ErrForbidden
	}

	return s.refractionRepo.ListRecordsByProfile(ctx, profileID)
}

// GetRecord returns one record with measurements
func (s *RefractionService) GetRecord(ctx context.Context, id uuid.UUID) (*entity.RefractionRecord, error) {
	record, err := s.refractionRepo.GetRecordByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Refraction record")
	}
	return record, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	domainRepo "github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/pkg/pagination"
	"gorm.io/gorm"
)

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) domainRepo.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var profile entity.Profile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (r *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Profile{}, "id = ?", id).Error
}

func (r *profileRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, params *pagination.PaginationParams) ([]entity.Profile, int64, error) {
	var profiles []entity.Profile
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Profile{}).
		Where("account_id = ?", accountID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("status DESC, created_at DESC").
		Find(&profiles).Error

	return profiles, total, err
}

type refractionRepository struct {
	db *gorm.DB
}

// NewRefractionRepository creates a new refraction repository
func NewRefractionRepository(db *gorm.DB) domainRepo.RefractionRepository {
	return &refractionRepository{db: db}
}

func (r *refractionRepository) CreateRecord(ctx context.Context, record *entity.RefractionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *refractionRepository) GetRecordByID(ctx context.Context, id uuid.UUID) (*entity.RefractionRecord, error) {
	var record entity.RefractionRecord
	err := r.db.WithContext(ctx).
		Preload("Measurements").
		First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *refractionRepository) ListRecordsByProfile(ctx context.Context, profileID uuid.UUID) ([]entity.RefractionRecord, error) {
	var records []entity.RefractionRecord
	err := r.db.WithContext(ctx).
		Preload("Measurements").
		Where("profile_id = ?", profileID).
		Order("exam_date DESC").
		Find(&records).Error
	return records, err
}

func (r *refractionRepository) CreateMeasurements(ctx context.Context, measurements []entity.MeasurementRecord) error {
	if len(measurements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&measurements).Error
}

func (r *refractionRepository) GetMeasurementsByRecord(ctx context.Context, recordID uuid.UUID) ([]entity.MeasurementRecord, error) {
	var measurements []entity.MeasurementRecord
	err := r.db.WithContext(ctx).
		Where("record_id = ?", recordID).
		Order("eye_side ASC").
		Find(&measurements).Error
	return measurements, err
}

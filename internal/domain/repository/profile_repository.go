package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/pkg/pagination"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByAccount returns the account's profiles, active ones first.
	ListByAccount(ctx context.Context, accountID uuid.UUID, params *pagination.PaginationParams) ([]entity.Profile, int64, error)
}

// RefractionRepository defines the interface for refraction record operations
type RefractionRepository interface {
	CreateRecord(ctx context.Context, record *entity.RefractionRecord) error
	GetRecordByID(ctx context.Context, id uuid.UUID) (*entity.RefractionRecord, error)
	// ListRecordsByProfile returns the profile's records newest exam first,
	// with measurements preloaded.
	ListRecordsByProfile(ctx context.Context, profileID uuid.UUID) ([]entity.RefractionRecord, error)
	CreateMeasurements(ctx context.Context, measurements []entity.MeasurementRecord) error
	GetMeasurementsByRecord(ctx context.Context, recordID uuid.UUID) ([]entity.MeasurementRecord, error)
}

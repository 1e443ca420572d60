package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
	"github.com/nguyenduy/opticart-api/pkg/pagination"
	"github.com/nguyenduy/opticart-api/pkg/utils"
)

// CatalogService handles lens and frame catalog operations
type CatalogService struct {
	lensTypeRepo repository.LensTypeRepository
	lensRepo     repository.LensRepository
	eyeGlassRepo repository.EyeGlassRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(lensTypeRepo repository.LensTypeRepository, lensRepo repository.LensRepository, eyeGlassRepo repository.EyeGlassRepository) *CatalogService {
	return &CatalogService{
		lensTypeRepo: lensTypeRepo,
		lensRepo:     lensRepo,
		eyeGlassRepo: eyeGlassRepo,
	}
}

// LensTypeGroup is a lens type with its active lenses
type LensTypeGroup struct {
	LensType entity.LensType `json:"lens_type"`
	Lenses   []entity.Lens   `json:"lenses"`
}

// ListLensOptions returns active lens types each with their active lenses,
// the selection wizard's step-one listing
func (s *CatalogService) ListLensOptions(ctx context.Context) ([]LensTypeGroup, error) {
	lensTypes, err := s.lensTypeRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	groups := make([]LensTypeGroup, 0, len(lensTypes))
	for _, lt := range lensTypes {
		lenses, err := s.lensRepo.ListByType(ctx, lt.ID)
		if err != nil {
			return nil, err
		}
		groups = append(groups, LensTypeGroup{LensType: lt, Lenses: lenses})
	}
	return groups, nil
}

// GetLens retrieves an active lens by ID
func (s *CatalogService) GetLens(ctx context.Context, id uuid.UUID) (*entity.Lens, error) {
	lens, err := s.lensRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lens == nil || !lens.Status {
		return nil, apperror.NewNotFoundError("Lens")
	}
	return lens, nil
}

// ListFrames lists frames with page-based pagination
func (s *CatalogService) ListFrames(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.EyeGlass], error) {
	frames, total, err := s.eyeGlassRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(frames, pag), nil
}

// GetFrame retrieves a frame by ID
func (s *CatalogService) GetFrame(ctx context.Context, id uuid.UUID) (*entity.EyeGlass, error) {
	frame, err := s.eyeGlassRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if frame == nil {
		return nil, apperror.NewNotFoundError("Frame")
	}
	return frame, nil
}

// CreateFrameInput represents the create frame input
type CreateFrameInput struct {
	Name          string
	Price         int64
	Images        string
	Quantity      int
	QuantityAlert int
	Notes         *string
}

// CreateFrame creates a new frame in the catalog
func (s *CatalogService) CreateFrame(ctx context.Context, input *CreateFrameInput) (*entity.EyeGlass, error) {
	frame := &entity.EyeGlass{
		Name:          input.Name,
		Code:          utils.GenerateFrameCode(),
		Price:         input.Price,
		Images:        input.Images,
		Quantity:      input.Quantity,
		QuantityAlert: input.QuantityAlert,
		Notes:         input.Notes,
		Status:        true,
	}

	if err := s.eyeGlassRepo.Create(ctx, frame); err != nil {
		return nil, err
	}
	return frame, nil
}

// UpdateFrameInput represents the update frame input
type UpdateFrameInput struct {
	ID            uuid.UUID
	Name          *string
	Price         *int64
	Images        *string
	Quantity      *int
	QuantityAlert *int
	Notes         *string
	Status        *bool
}

// UpdateFrame updates a frame
func (s *CatalogService) UpdateFrame(ctx context.Context, input *UpdateFrameInput) (*entity.EyeGlass, error) {
	frame, err := s.eyeGlassRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if frame == nil {
		return nil, apperror.NewNotFoundError("Frame")
	}

	if input.Name != nil {
		frame.Name = *input.Name
	}
	if input.Price != nil {
		frame.Price = *input.Price
	}
	if input.Images != nil {
		frame.Images = *input.Images
	}
	if input.Quantity != nil {
		frame.Quantity = *input.Quantity
	}
	if input.QuantityAlert != nil {
		frame.QuantityAlert = *input.QuantityAlert
	}
	if input.Notes != nil {
		frame.Notes = input.Notes
	}
	if input.Status != nil {
		frame.Status = *input.Status
	}

	if err := s.eyeGlassRepo.Update(ctx, frame); err != nil {
		return nil, err
	}
	return frame, nil
}

// DeleteFrame deletes a frame
func (s *CatalogService) DeleteFrame(ctx context.Context, id uuid.UUID) error {
	frame, err := s.eyeGlassRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if frame == nil {
		return apperror.NewNotFoundError("Frame")
	}
	return s.eyeGlassRepo.Delete(ctx, id)
}

// GetLowStockFrames returns frames at or below their alert threshold
func (s *CatalogService) GetLowStockFrames(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.EyeGlass], error) {
	frames, total, err := s.eyeGlassRepo.GetLowStock(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(frames, pag), nil
}

// CreateLensInput represents the create lens input
type CreateLensInput struct {
	LensTypeID  uuid.UUID
	Name        string
	Description string
	Price       int64
	Images      string
	Features    string
}

// CreateLens creates a new lens under a lens type
func (s *CatalogService) CreateLens(ctx context.Context, input *CreateLensInput) (*entity.Lens, error) {
	lensType, err := s.lensTypeRepo.GetByID(ctx, input.LensTypeID)
	if err != nil {
		return nil, err
	}
	if lensType == nil {
		return nil, apperror.NewNotFoundError("Lens type")
	}

	lens := &entity.Lens{
		LensTypeID:  input.LensTypeID,
		Name:        input.Name,
		Description: optionalText(input.Description),
		Price:       input.Price,
		Images:      input.Images,
		Features:    optionalText(input.Features),
		Status:      true,
	}

	if err := s.lensRepo.Create(ctx, lens); err != nil {
		return nil, err
	}
	return lens, nil
}

// CreateLensType creates a new lens type
func (s *CatalogService) CreateLensType(ctx context.Context, name, description string) (*entity.LensType, error) {
	lensType := &entity.LensType{
		Name:        name,
		Description: optionalText(description),
		Status:      true,
	}
	if err := s.lensTypeRepo.Create(ctx, lensType); err != nil {
		return nil, err
	}
	return lensType, nil
}

// optionalText maps an empty input string to a NULL text column
func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

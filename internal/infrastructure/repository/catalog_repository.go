package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	domainRepo "github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
	"github.com/nguyenduy/opticart-api/pkg/pagination"
	"gorm.io/gorm"
)

type lensTypeRepository struct {
	db *gorm.DB
}

// NewLensTypeRepository creates a new lens type repository
func NewLensTypeRepository(db *gorm.DB) domainRepo.LensTypeRepository {
	return &lensTypeRepository{db: db}
}

func (r *lensTypeRepository) Create(ctx context.Context, lensType *entity.LensType) error {
	return r.db.WithContext(ctx).Create(lensType).Error
}

func (r *lensTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.LensType, error) {
	var lensType entity.LensType
	err := r.db.WithContext(ctx).First(&lensType, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &lensType, err
}

func (r *lensTypeRepository) Update(ctx context.Context, lensType *entity.LensType) error {
	return r.db.WithContext(ctx).Save(lensType).Error
}

func (r *lensTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.LensType{}, "id = ?", id).Error
}

func (r *lensTypeRepository) ListActive(ctx context.Context) ([]entity.LensType, error) {
	var lensTypes []entity.LensType
	err := r.db.WithContext(ctx).
		Where("status = ?", true).
		Order("name ASC").
		Find(&lensTypes).Error
	return lensTypes, err
}

func (r *lensTypeRepository) List(ctx context.Context) ([]entity.LensType, error) {
	var lensTypes []entity.LensType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&lensTypes).Error
	return lensTypes, err
}

type lensRepository struct {
	db *gorm.DB
}

// NewLensRepository creates a new lens repository
func NewLensRepository(db *gorm.DB) domainRepo.LensRepository {
	return &lensRepository{db: db}
}

func (r *lensRepository) Create(ctx context.Context, lens *entity.Lens) error {
	return r.db.WithContext(ctx).Create(lens).Error
}

func (r *lensRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lens, error) {
	var lens entity.Lens
	err := r.db.WithContext(ctx).
		Preload("LensType").
		First(&lens, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &lens, err
}

func (r *lensRepository) Update(ctx context.Context, lens *entity.Lens) error {
	return r.db.WithContext(ctx).Save(lens).Error
}

func (r *lensRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Lens{}, "id = ?", id).Error
}

func (r *lensRepository) ListByType(ctx context.Context, lensTypeID uuid.UUID) ([]entity.Lens, error) {
	var lenses []entity.Lens
	err := r.db.WithContext(ctx).
		Where("lens_type_id = ? AND status = ?", lensTypeID, true).
		Order("price ASC").
		Find(&lenses).Error
	return lenses, err
}

func (r *lensRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Lens, int64, error) {
	var lenses []entity.Lens
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Lens{})

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("LensType").
		Order("name ASC").
		Find(&lenses).Error

	return lenses, total, err
}

type eyeGlassRepository struct {
	db *gorm.DB
}

// NewEyeGlassRepository creates a new eyeglass repository
func NewEyeGlassRepository(db *gorm.DB) domainRepo.EyeGlassRepository {
	return &eyeGlassRepository{db: db}
}

func (r *eyeGlassRepository) Create(ctx context.Context, eyeGlass *entity.EyeGlass) error {
	return r.db.WithContext(ctx).Create(eyeGlass).Error
}

func (r *eyeGlassRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.EyeGlass, error) {
	var eyeGlass entity.EyeGlass
	err := r.db.WithContext(ctx).First(&eyeGlass, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &eyeGlass, err
}

func (r *eyeGlassRepository) GetByCode(ctx context.Context, code string) (*entity.EyeGlass, error) {
	var eyeGlass entity.EyeGlass
	err := r.db.WithContext(ctx).First(&eyeGlass, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &eyeGlass, err
}

func (r *eyeGlassRepository) Update(ctx context.Context, eyeGlass *entity.EyeGlass) error {
	return r.db.WithContext(ctx).Save(eyeGlass).Error
}

func (r *eyeGlassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.EyeGlass{}, "id = ?", id).Error
}

func (r *eyeGlassRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.EyeGlass, int64, error) {
	var eyeGlasses []entity.EyeGlass
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.EyeGlass{})

	if search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&eyeGlasses).Error

	return eyeGlasses, total, err
}

// ListWithCursor returns frames using cursor-based pagination
// Fetches limit+1 items to detect if there are more results
func (r *eyeGlassRepository) ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string) ([]entity.EyeGlass, error) {
	var eyeGlasses []entity.EyeGlass

	params.Validate()
	query := r.db.WithContext(ctx).Model(&entity.EyeGlass{})

	if search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	cursor, err := params.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	// Fetch limit+1 to detect hasMore
	err = query.Limit(params.Limit + 1).
		Order("created_at ASC, id ASC").
		Find(&eyeGlasses).Error

	return eyeGlasses, err
}

// DecrementStock atomically decrements stock only when enough quantity remains
func (r *eyeGlassRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).Model(&entity.EyeGlass{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))

	if result.Error != nil {
		return result.Error
	}

	// If no rows were affected, insufficient stock
	if result.RowsAffected == 0 {
		return apperror.ErrOutOfStock
	}
	return nil
}

func (r *eyeGlassRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).Model(&entity.EyeGlass{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", quantity)).Error
}

func (r *eyeGlassRepository) GetLowStock(ctx context.Context, params *pagination.PaginationParams) ([]entity.EyeGlass, int64, error) {
	var eyeGlasses []entity.EyeGlass
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.EyeGlass{}).
		Where("quantity <= quantity_alert")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("quantity ASC").
		Find(&eyeGlasses).Error

	return eyeGlasses, total, err
}

type productGlassRepository struct {
	db *gorm.DB
}

// NewProductGlassRepository creates a new product glass repository
func NewProductGlassRepository(db *gorm.DB) domainRepo.ProductGlassRepository {
	return &productGlassRepository{db: db}
}

func (r *productGlassRepository) Create(ctx context.Context, productGlass *entity.ProductGlass) error {
	return r.db.WithContext(ctx).Create(productGlass).Error
}

func (r *productGlassRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductGlass, error) {
	var productGlass entity.ProductGlass
	err := r.db.WithContext(ctx).First(&productGlass, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &productGlass, err
}

func (r *productGlassRepository) GetWithRelations(ctx context.Context, id uuid.UUID) (*entity.ProductGlass, error) {
	var productGlass entity.ProductGlass
	err := r.db.WithContext(ctx).
		Preload("EyeGlass").
		Preload("LeftLens").
		Preload("RightLens").
		First(&productGlass, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &productGlass, err
}

func (r *productGlassRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, params *pagination.PaginationParams) ([]entity.ProductGlass, int64, error) {
	var productGlasses []entity.ProductGlass
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ProductGlass{}).
		Where("account_id = ?", accountID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("EyeGlass").
		Preload("LeftLens").
		Preload("RightLens").
		Order("created_at DESC").
		Find(&productGlasses).Error

	return productGlasses, total, err
}

func (r *productGlassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ProductGlass{}, "id = ?", id).Error
}

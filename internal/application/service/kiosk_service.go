package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
)

// KioskService handles store branch management
type KioskService struct {
	kioskRepo repository.KioskRepository
}

// NewKioskService creates a new kiosk service
func NewKioskService(kioskRepo repository.KioskRepository) *KioskService {
	return &KioskService{kioskRepo: kioskRepo}
}

// CreateKioskInput represents the input for creating a kiosk
type CreateKioskInput struct {
	Name        string
	Address     string
	PhoneNumber string
	OpenHours   string
}

// CreateKiosk creates a new store branch
func (s *KioskService) CreateKiosk(ctx context.Context, input *CreateKioskInput) (*entity.Kiosk, error) {
	kiosk := &entity.Kiosk{
		Name:        input.Name,
		Address:     input.Address,
		PhoneNumber: input.PhoneNumber,
		OpenHours:   input.OpenHours,
		Status:      true,
	}
	if err := s.kioskRepo.Create(ctx, kiosk); err != nil {
		return nil, err
	}
	return kiosk, nil
}

// GetKiosk returns a kiosk by ID
func (s *KioskService) GetKiosk(ctx context.Context, id uuid.UUID) (*entity.Kiosk, error) {
	kiosk, err := s.kioskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if kiosk == nil {
		return nil, apperror.NewNotFoundError("Kiosk")
	}
	return kiosk, nil
}

// ListPickupKiosks returns the kiosks currently accepting pickups
func (s *KioskService) ListPickupKiosks(ctx context.Context) ([]entity.Kiosk, error) {
	return s.kioskRepo.ListActive(ctx)
}

// ListKiosks returns all kiosks including disabled ones
func (s *KioskService) ListKiosks(ctx context.Context) ([]entity.Kiosk, error) {
	return s.kioskRepo.List(ctx)
}

// UpdateKioskInput represents the input for updating a kiosk
type UpdateKioskInput struct {
	Name        *string
	Address     *string
	PhoneNumber *string
	OpenHours   *string
	Status      *bool
}

// UpdateKiosk applies a partial update to a kiosk
func (s *KioskService) UpdateKiosk(ctx context.Context, id uuid.UUID, input *UpdateKioskInput) (*entity.Kiosk, error) {
	kiosk, err := s.kioskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if kiosk == nil {
		return nil, apperror.NewNotFoundError("Kiosk")
	}

	if input.Name != nil {
		kiosk.Name = *input.Name
	}
	if input.Address != nil {
		kiosk.Address = *input.Address
	}
	if input.PhoneNumber != nil {
		kiosk.PhoneNumber = *input.PhoneNumber
	}
	if input.OpenHours != nil {
		kiosk.OpenHours = *input.OpenHours
	}
	if input.Status != nil {
		kiosk.Status = *input.Status
	}

	if err := s.kioskRepo.Update(ctx, kiosk); err != nil {
		return nil, err
	}
	return kiosk, nil
}

// DeleteKiosk soft deletes a kiosk
func (s *KioskService) DeleteKiosk(ctx context.Context, id uuid.UUID) error {
	kiosk, err := s.kioskRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if kiosk == nil {
		return apperror.NewNotFoundError("Kiosk")
	}
	return s.kioskRepo.Delete(ctx, id)
}

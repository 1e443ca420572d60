package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	"github.com/nguyenduy/opticart-api/internal/domain/prescription"
	"github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/internal/domain/selection"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
)

// SelectionService orchestrates the lens selection wizard. One session per
// account lives in the session store; every operation loads it, applies one
// event and saves it back.
type SelectionService struct {
	store            repository.SelectionStore
	eyeGlassRepo     repository.EyeGlassRepository
	lensRepo         repository.LensRepository
	profileRepo      repository.ProfileRepository
	refractionRepo   repository.RefractionRepository
	productGlassRepo repository.ProductGlassRepository
	cartStore        repository.CartStore
	sessionTTL       time.Duration
}

// NewSelectionService creates a new selection service
func NewSelectionService(
	store repository.SelectionStore,
	eyeGlassRepo repository.EyeGlassRepository,
	lensRepo repository.LensRepository,
	profileRepo repository.ProfileRepository,
	refractionRepo repository.RefractionRepository,
	productGlassRepo repository.ProductGlassRepository,
	cartStore repository.CartStore,
	sessionTTL time.Duration,
) *SelectionService {
	return &SelectionService{
		store:            store,
		eyeGlassRepo:     eyeGlassRepo,
		lensRepo:         lensRepo,
		profileRepo:      profileRepo,
		refractionRepo:   refractionRepo,
		productGlassRepo: productGlassRepo,
		cartStore:        cartStore,
		sessionTTL:       sessionTTL,
	}
}

// Start opens a new selection session for a frame. An existing session for
// the account is discarded: starting over is always allowed.
func (s *SelectionService) Start(ctx context.Context, accountID, eyeGlassID uuid.UUID, mode enum.LensMode) (*selection.State, error) {
	if !mode.IsValid() {
		return nil, apperror.NewBadRequestError("Lens mode must be 'same' or 'custom'")
	}

	frame, err := s.eyeGlassRepo.GetByID(ctx, eyeGlassID)
	if err != nil {
		return nil, err
	}
	if frame == nil || !frame.Status {
		return nil, apperror.NewNotFoundError("Frame")
	}

	state := selection.NewState(accountID, eyeGlassID, mode)
	if err := s.store.Save(ctx, state, s.sessionTTL); err != nil {
		return nil, err
	}
	return state, nil
}

// Get returns the account's in-progress session
func (s *SelectionService) Get(ctx context.Context, accountID uuid.UUID) (*selection.State, error) {
	state, err := s.store.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, apperror.ErrSessionNotFound
	}
	return state, nil
}

// ChooseLens records a lens choice for one eye (or both, in same mode) and
// advances to profile selection once both eyes are covered.
func (s *SelectionService) ChooseLens(ctx context.Context, accountID, lensID uuid.UUID, eye enum.EyeSide) (*selection.State, error) {
	state, err := s.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if state.Step != selection.StepLensSelection {
		return nil, translateSelectionErr(selection.ErrInvalidTransition)
	}

	lens, err := s.lensRepo.GetByID(ctx, lensID)
	if err != nil {
		return nil, err
	}
	if lens == nil || !lens.Status {
		return nil, apperror.NewNotFoundError("Lens")
	}

	state.ApplyLens(lens, eye)

	// In custom mode the step holds until the second eye is chosen
	if state.CanComplete() {
		if err := state.Apply(selection.EventLensChosen); err != nil {
			return nil, translateSelectionErr(err)
		}
	}

	if err := s.store.Save(ctx, state, s.sessionTTL); err != nil {
		return nil, err
	}
	return state, nil
}

// ChooseProfile picks the wearer profile and advances to measurement history
func (s *SelectionService) ChooseProfile(ctx context.Context, accountID, profileID uuid.UUID) (*selection.State, error) {
	state, err := s.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Profile")
	}
	if profile.AccountID != accountID {
		return nil, apperror.ErrForbidden
	}

	state.ProfileID = &profileID
	if err := state.Apply(selection.EventProfileChosen); err != nil {
		return nil, translateSelectionErr(err)
	}

	if err := s.store.Save(ctx, state, s.sessionTTL); err != nil {
		return nil, err
	}
	return state, nil
}

// ListRecords returns the refraction history for the session's chosen profile
func (s *SelectionService) ListRecords(ctx context.Context, accountID uuid.UUID) ([]entity.RefractionRecord, error) {
	state, err := s.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if state.ProfileID == nil {
		return nil, apperror.NewBadRequestError("No profile chosen yet")
	}
	return s.refractionRepo.ListRecordsByProfile(ctx, *state.ProfileID)
}

// ChooseRecord seeds the prescription from a historical refraction record and
// advances to prescription entry. Seeded values are snapped onto the valid
// grid rather than rejected, since old records may predate the current ranges.
func (s *SelectionService) ChooseRecord(ctx context.Context, accountID, recordID uuid.UUID) (*selection.State, error) {
	state, err := s.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	record, err := s.refractionRepo.GetRecordByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Refraction record")
	}
	if state.ProfileID == nil || record.ProfileID != *state.ProfileID {
		return nil, apperror.ErrForbidden
	}

	ms := make([]prescription.Measurement, 0, len(record.Measurements))
	for _, m := range record.Measurements {
		ms = append(ms, prescription.Measurement{
			EyeSide:       m.EyeSide,
			Spherical:     m.Spherical,
			Cylindrical:   m.Cylindrical,
			Axis:          m.Axis,
			PupilDistance: m.PupilDistance,
		})
	}

	state.RefractionRecordID = &recordID
	state.Measurements = record.Measurements
	state.Prescription = prescription.SeedFromMeasurements(ms)

	if err := state.Apply(selection.EventRecordChosen); err != nil {
		return nil, translateSelectionErr(err)
	}

	if err := s.store.Save(ctx, state, s.sessionTTL); err != nil {
		return nil, err
	}
	return state, nil
}

// FreshStart skips the history and advances to prescription entry with a
// zeroed form
func (s *SelectionService) FreshStart(ctx context.Context, accountID uuid.UUID) (*selection.State, error) {
	state, err := s.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	state.RefractionRecordID = nil
	state.Measurements = nil
	state.Prescription = prescription.Prescription{}

	if err := state.Apply(selection.EventFreshStart); err != nil {
		return nil, translateSelectionErr(err)
	}

	if err := s.store.Save(ctx, state, s.sessionTTL); err != nil {
		return nil, err
	}
	return state, nil
}

// SubmitPrescription validates the submitted values, completes the wizard and
// materializes the configured product into the account's cart. Invalid values
// are rejected field by field; nothing is silently clamped on this path.
func (s *SelectionService) SubmitPrescription(ctx context.Context, accountID uuid.UUID, p prescription.Prescription) (*entity.ProductGlass, error) {
	state, err := s.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if fieldErrs := p.Validate(); len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	state.Prescription = p
	if err := state.Apply(selection.EventPrescriptionSubmitted); err != nil {
		return nil, translateSelectionErr(err)
	}

	result, err := state.Finalize()
	if err != nil {
		return nil, translateSelectionErr(err)
	}

	frame, err := s.eyeGlassRepo.GetByID(ctx, result.EyeGlassID)
	if err != nil {
		return nil, err
	}
	if frame == nil {
		return nil, apperror.NewNotFoundError("Frame")
	}

	lensPrice := result.LeftLens.Price + result.RightLens.Price
	productGlass := &entity.ProductGlass{
		AccountID:     accountID,
		EyeGlassID:    result.EyeGlassID,
		LeftLensID:    result.LeftLens.ID,
		RightLensID:   result.RightLens.ID,
		ProfileID:     result.ProfileID,
		Prescription:  result.Prescription,
		EyeGlassPrice: frame.Price,
		LensPrice:     lensPrice,
		Total:         frame.Price + lensPrice,
	}
	if err := s.productGlassRepo.Create(ctx, productGlass); err != nil {
		return nil, err
	}

	item := repository.CartItem{
		ProductGlassID: productGlass.ID,
		Quantity:       1,
		AddedAt:        time.Now().UTC(),
	}
	if err := s.cartStore.Add(ctx, accountID, item); err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, accountID); err != nil {
		return nil, err
	}
	return productGlass, nil
}

// Back steps the wizard backwards, keeping accumulated choices. Backing out
// of the first step ends the session.
func (s *SelectionService) Back(ctx context.Context, accountID uuid.UUID) (*selection.State, error) {
	state, err := s.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := state.Apply(selection.EventBack); err != nil {
		return nil, translateSelectionErr(err)
	}

	if state.Step == selection.StepExited {
		if err := s.store.Delete(ctx, accountID); err != nil {
			return nil, err
		}
		return state, nil
	}

	if err := s.store.Save(ctx, state, s.sessionTTL); err != nil {
		return nil, err
	}
	return state, nil
}

// Abandon drops the session outright
func (s *SelectionService) Abandon(ctx context.Context, accountID uuid.UUID) error {
	return s.store.Delete(ctx, accountID)
}

func translateSelectionErr(err error) error {
	switch err {
	case selection.ErrInvalidTransition:
		return apperror.NewConflictError("That action is not allowed at this step")
	case selection.ErrStepIncomplete:
		return apperror.NewUnprocessableError("Complete the current step first")
	case selection.ErrLensPairMissing:
		return apperror.NewUnprocessableError("Both lenses must be chosen before completing the selection")
	default:
		return err
	}
}

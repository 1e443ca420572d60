package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	"github.com/nguyenduy/opticart-api/internal/domain/prescription"
	"github.com/nguyenduy/opticart-api/internal/domain/selection"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
)

type selectionFixture struct {
	svc         *SelectionService
	store       *fakeSelectionStore
	cart        *fakeCartStore
	eyeGlasses  *fakeEyeGlassRepo
	lenses      *fakeLensRepo
	profiles    *fakeProfileRepo
	refractions *fakeRefractionRepo
	products    *fakeProductGlassRepo
	accountID   uuid.UUID
	frame       *entity.EyeGlass
	lens        *entity.Lens
	profile     *entity.Profile
}

func newSelectionFixture() *selectionFixture {
	accountID := uuid.New()
	frame := &entity.EyeGlass{ID: uuid.New(), Name: "Aviator", Price: 300000, Quantity: 10, Status: true}
	lens := &entity.Lens{ID: uuid.New(), Name: "Standard 1.56", Price: 100000, Status: true}
	profile := &entity.Profile{ID: uuid.New(), AccountID: accountID, FullName: "Nguyen Van A"}

	fx := &selectionFixture{
		store:       newFakeSelectionStore(),
		cart:        newFakeCartStore(),
		eyeGlasses:  newFakeEyeGlassRepo(frame),
		lenses:      newFakeLensRepo(lens),
		profiles:    newFakeProfileRepo(profile),
		refractions: newFakeRefractionRepo(),
		products:    newFakeProductGlassRepo(),
		accountID:   accountID,
		frame:       frame,
		lens:        lens,
		profile:     profile,
	}
	fx.svc = NewSelectionService(
		fx.store, fx.eyeGlasses, fx.lenses, fx.profiles,
		fx.refractions, fx.products, fx.cart, 30*time.Minute,
	)
	return fx
}

// advance walks the fixture session up to the given step
func (fx *selectionFixture) advance(t *testing.T, step selection.Step) {
	t.Helper()
	ctx := context.Background()

	_, err := fx.svc.Start(ctx, fx.accountID, fx.frame.ID, enum.LensModeSame)
	require.NoError(t, err)
	if step == selection.StepLensSelection {
		return
	}

	_, err = fx.svc.ChooseLens(ctx, fx.accountID, fx.lens.ID, enum.EyeSideLeft)
	require.NoError(t, err)
	if step == selection.StepProfileSelection {
		return
	}

	_, err = fx.svc.ChooseProfile(ctx, fx.accountID, fx.profile.ID)
	require.NoError(t, err)
	if step == selection.StepMeasurementHistory {
		return
	}

	_, err = fx.svc.FreshStart(ctx, fx.accountID)
	require.NoError(t, err)
}

func TestSelectionStart(t *testing.T) {
	fx := newSelectionFixture()
	ctx := context.Background()

	state, err := fx.svc.Start(ctx, fx.accountID, fx.frame.ID, enum.LensModeSame)
	require.NoError(t, err)
	assert.Equal(t, selection.StepLensSelection, state.Step)
	assert.Equal(t, fx.frame.ID, state.EyeGlassID)

	saved, err := fx.store.Get(ctx, fx.accountID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, state.ID, saved.ID)
}

func TestSelectionStartInvalidMode(t *testing.T) {
	fx := newSelectionFixture()

	_, err := fx.svc.Start(context.Background(), fx.accountID, fx.frame.ID, enum.LensMode("both"))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestSelectionStartUnknownFrame(t *testing.T) {
	fx := newSelectionFixture()

	_, err := fx.svc.Start(context.Background(), fx.accountID, uuid.New(), enum.LensModeSame)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestSelectionStartInactiveFrame(t *testing.T) {
	fx := newSelectionFixture()
	fx.frame.Status = false

	_, err := fx.svc.Start(context.Background(), fx.accountID, fx.frame.ID, enum.LensModeSame)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestSelectionStartReplacesExistingSession(t *testing.T) {
	fx := newSelectionFixture()
	ctx := context.Background()

	first, err := fx.svc.Start(ctx, fx.accountID, fx.frame.ID, enum.LensModeSame)
	require.NoError(t, err)
	second, err := fx.svc.Start(ctx, fx.accountID, fx.frame.ID, enum.LensModeCustom)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	current, err := fx.svc.Get(ctx, fx.accountID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)
	assert.Equal(t, enum.LensModeCustom, current.Mode)
}

func TestSelectionGetWithoutSession(t *testing.T) {
	fx := newSelectionFixture()

	_, err := fx.svc.Get(context.Background(), fx.accountID)
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

func TestChooseLensSameModeAdvances(t *testing.T) {
	fx := newSelectionFixture()
	fx.advance(t, selection.StepLensSelection)

	state, err := fx.svc.ChooseLens(context.Background(), fx.accountID, fx.lens.ID, enum.EyeSideLeft)
	require.NoError(t, err)
	assert.Equal(t, selection.StepProfileSelection, state.Step)
	assert.Equal(t, fx.lens.ID, state.LeftLens.ID)
	assert.Equal(t, fx.lens.ID, state.RightLens.ID)
}

func TestChooseLensCustomModeHoldsForSecondEye(t *testing.T) {
	fx := newSelectionFixture()
	ctx := context.Background()
	_, err := fx.svc.Start(ctx, fx.accountID, fx.frame.ID, enum.LensModeCustom)
	require.NoError(t, err)

	premium := &entity.Lens{ID: uuid.New(), Name: "Premium 1.67", Price: 250000, Status: true}
	fx.lenses.lenses[premium.ID] = premium

	state, err := fx.svc.ChooseLens(ctx, fx.accountID, fx.lens.ID, enum.EyeSideLeft)
	require.NoError(t, err)
	assert.Equal(t, selection.StepLensSelection, state.Step)
	assert.Nil(t, state.RightLens)

	state, err = fx.svc.ChooseLens(ctx, fx.accountID, premium.ID, enum.EyeSideRight)
	require.NoError(t, err)
	assert.Equal(t, selection.StepProfileSelection, state.Step)
	assert.Equal(t, fx.lens.ID, state.LeftLens.ID)
	assert.Equal(t, premium.ID, state.RightLens.ID)
}

func TestChooseLensInactiveLens(t *testing.T) {
	fx := newSelectionFixture()
	fx.advance(t, selection.StepLensSelection)
	fx.lens.Status = false

	_, err := fx.svc.ChooseLens(context.Background(), fx.accountID, fx.lens.ID, enum.EyeSideLeft)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestChooseLensOutsideLensStep(t *testing.T) {
	fx := newSelectionFixture()
	fx.advance(t, selection.StepProfileSelection)

	_, err := fx.svc.ChooseLens(context.Background(), fx.accountID, fx.lens.ID, enum.EyeSideLeft)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}

func TestChooseProfileOwnership(t *testing.T) {
	fx := newSelectionFixture()
	fx.advance(t, selection.StepProfileSelection)

	other := &entity.Profile{ID: uuid.New(), AccountID: uuid.New(), FullName: "Someone Else"}
	fx.profiles.profiles[other.ID] = other

	_, err := fx.svc.ChooseProfile(context.Background(), fx.accountID, other.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestChooseProfileAdvances(t *testing.T) {
	fx := newSelectionFixture()
	fx.advance(t, selection.StepProfileSelection)

	state, err := fx.svc.ChooseProfile(context.Background(), fx.accountID, fx.profile.ID)
	require.NoError(t, err)
	assert.Equal(t, selection.StepMeasurementHistory, state.Step)
	require.NotNil(t, state.ProfileID)
	assert.Equal(t, fx.profile.ID, *state.ProfileID)
}

func TestListRecordsRequiresProfile(t *testing.T) {
	fx := newSelectionFixture()
	fx.advance(t, selection.StepProfileSelection)

	_, err := fx.svc.ListRecords(context.Background(), fx.accountID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestChooseRecordSeedsPrescription(t *testing.T) {
	fx := newSelectionFixture()
	fx.advance(t, selection.StepMeasurementHistory)

	record := &entity.RefractionRecord{
		ID:        uuid.New(),
		ProfileID: fx.profile.ID,
		ExamDate:  time.Now().AddDate(0, -6, 0),
		Measurements: []entity.MeasurementRecord{
			{ID: uuid.New(), EyeSide: enum.EyeSideRight, Spherical: -2.0, Cylindrical: -0.5, Axis: 90, PupilDistance: 63},
		},
	}
	fx.refractions.records[record.ID] = record

	state, err := fx.svc.ChooseRecord(context.Background(), fx.accountID, record.ID)
	require.NoError(t, err)
	assert.Equal(t, selection.StepPrescriptionEntry, state.Step)
	assert.Equal(t, -2.0, state.Prescription.SphereOD)
	assert.Equal(t, 63.0, state.Prescription.PD)
	// Only the right eye was measured, so the left stays zero.
	assert.Equal(t, 0.0, state.Prescription.SphereOS)
	assert.Equal(t, 0.0, state.Prescription.AddOD)
}

func TestChooseRecordFromAnotherProfile(t *testing.T) {
	fx := newSelectionFixture()
	fx.advance(t, selection.StepMeasurementHistory)

	record := &entity.RefractionRecord{ID: uuid.New(), ProfileID: uuid.New()}
	fx.refractions.records[record.ID] = record

	_, err := fx.svc.ChooseRecord(context.Background(), fx.accountID, record.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestFreshStartClearsSeededValues(t *testing.T) {
	fx := newSelectionFixture()
	fx.advance(t, selection.StepMeasurementHistory)

	record := &entity.RefractionRecord{
		ID:        uuid.New(),
		ProfileID: fx.profile.ID,
		Measurements: []entity.MeasurementRecord{
			{ID: uuid.New(), EyeSide: enum.EyeSideRight, Spherical: -2.0, PupilDistance: 63},
		},
	}
	fx.refractions.records[record.ID] = record
	_, err := fx.svc.ChooseRecord(context.Background(), fx.accountID, record.ID)
	require.NoError(t, err)

	_, err = fx.svc.Back(context.Background(), fx.accountID)
	require.NoError(t, err)

	state, err := fx.svc.FreshStart(context.Background(), fx.accountID)
	require.NoError(t, err)
	assert.Equal(t, selection.StepPrescriptionEntry, state.Step)
	assert.Nil(t, state.RefractionRecordID)
	assert.Equal(t, prescription.Prescription{}, state.Prescription)
}

func TestSubmitPrescriptionRejectsInvalidValues(t *testing.T) {
	fx := newSelectionFixture()
	fx.advance(t, selection.StepPrescriptionEntry)

	_, err := fx.svc.SubmitPrescription(context.Background(), fx.accountID, prescription.Prescription{
		SphereOD: -14, PD: 63.5,
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "sphere_od", appErr.Errors[0].Field)
}

func TestSubmitPrescriptionAddsToCart(t *testing.T) {
	fx := newSelectionFixture()
	fx.advance(t, selection.StepPrescriptionEntry)
	ctx := context.Background()

	p := prescription.Prescription{SphereOD: -2.0, SphereOS: -1.75, PD: 63.5}
	product, err := fx.svc.SubmitPrescription(ctx, fx.accountID, p)
	require.NoError(t, err)

	assert.Equal(t, fx.accountID, product.AccountID)
	assert.Equal(t, fx.frame.ID, product.EyeGlassID)
	assert.Equal(t, fx.lens.ID, product.LeftLensID)
	assert.Equal(t, fx.lens.ID, product.RightLensID)
	assert.Equal(t, p, product.Prescription)
	assert.Equal(t, fx.frame.Price, product.EyeGlassPrice)
	// Same mode still prices both lenses.
	assert.Equal(t, 2*fx.lens.Price, product.LensPrice)
	assert.Equal(t, fx.frame.Price+2*fx.lens.Price, product.Total)

	items, err := fx.cart.Get(ctx, fx.accountID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].ProductGlassID)
	assert.Equal(t, 1, items[0].Quantity)

	// The session is gone once the product lands in the cart.
	_, err = fx.svc.Get(ctx, fx.accountID)
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

func TestBackKeepsLensChoices(t *testing.T) {
	fx := newSelectionFixture()
	fx.advance(t, selection.StepProfileSelection)

	state, err := fx.svc.Back(context.Background(), fx.accountID)
	require.NoError(t, err)
	assert.Equal(t, selection.StepLensSelection, state.Step)
	require.NotNil(t, state.LeftLens)
	assert.Equal(t, fx.lens.ID, state.LeftLens.ID)
}

func TestBackFromFirstStepEndsSession(t *testing.T) {
	fx := newSelectionFixture()
	fx.advance(t, selection.StepLensSelection)
	ctx := context.Background()

	state, err := fx.svc.Back(ctx, fx.accountID)
	require.NoError(t, err)
	assert.Equal(t, selection.StepExited, state.Step)

	_, err = fx.svc.Get(ctx, fx.accountID)
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

func TestAbandon(t *testing.T) {
	fx := newSelectionFixture()
	fx.advance(t, selection.StepProfileSelection)
	ctx := context.Background()

	require.NoError(t, fx.svc.Abandon(ctx, fx.accountID))

	_, err := fx.svc.Get(ctx, fx.accountID)
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}

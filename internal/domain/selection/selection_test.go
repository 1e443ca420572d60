package selection

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	"github.com/nguyenduy/opticart-api/internal/domain/prescription"
)

func testLens(name string) *entity.Lens {
	return &entity.Lens{
		ID:   uuid.New(),
		Name: name,
	}
}

func TestNewState(t *testing.T) {
	accountID := uuid.New()
	eyeGlassID := uuid.New()
	st := NewState(accountID, eyeGlassID, enum.LensModeSame)

	assert.Equal(t, accountID, st.AccountID)
	assert.Equal(t, eyeGlassID, st.EyeGlassID)
	assert.Equal(t, StepLensSelection, st.Step)
	assert.Nil(t, st.LeftLens)
	assert.Nil(t, st.RightLens)
	assert.NotEqual(t, uuid.Nil, st.ID)
}

func TestApplyLensSameModeFillsBothEyes(t *testing.T) {
	st := NewState(uuid.New(), uuid.New(), enum.LensModeSame)
	lens := testLens("Essilor 1.61")

	st.ApplyLens(lens, enum.EyeSideLeft)

	assert.Same(t, lens, st.LeftLens)
	assert.Same(t, lens, st.RightLens)
	assert.True(t, st.CanComplete())
}

func TestApplyLensCustomModeNeedsBothEyes(t *testing.T) {
	st := NewState(uuid.New(), uuid.New(), enum.LensModeCustom)
	left := testLens("Left 1.56")
	right := testLens("Right 1.67")

	st.ApplyLens(right, enum.EyeSideRight)
	assert.False(t, st.CanComplete())
	assert.Nil(t, st.LeftLens)

	st.ApplyLens(left, enum.EyeSideLeft)
	assert.True(t, st.CanComplete())
	assert.Same(t, left, st.LeftLens)
	assert.Same(t, right, st.RightLens)
}

func TestApplyLensCustomModeAnyOrder(t *testing.T) {
	st := NewState(uuid.New(), uuid.New(), enum.LensModeCustom)

	st.ApplyLens(testLens("a"), enum.EyeSideLeft)
	assert.False(t, st.CanComplete())

	st.ApplyLens(testLens("b"), enum.EyeSideRight)
	assert.True(t, st.CanComplete())
}

func TestApplyLensReplacesChoice(t *testing.T) {
	st := NewState(uuid.New(), uuid.New(), enum.LensModeCustom)
	first := testLens("first")
	second := testLens("second")

	st.ApplyLens(first, enum.EyeSideRight)
	st.ApplyLens(second, enum.EyeSideRight)

	assert.Same(t, second, st.RightLens)
}

func TestApplyGuardsIncompleteLensStep(t *testing.T) {
	st := NewState(uuid.New(), uuid.New(), enum.LensModeCustom)
	st.ApplyLens(testLens("only right"), enum.EyeSideRight)

	err := st.Apply(EventLensChosen)
	assert.ErrorIs(t, err, ErrStepIncomplete)
	assert.Equal(t, StepLensSelection, st.Step)
}

func TestApplyRejectsEventOutOfOrder(t *testing.T) {
	st := NewState(uuid.New(), uuid.New(), enum.LensModeSame)

	err := st.Apply(EventProfileChosen)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = st.Apply(EventPrescriptionSubmitted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	assert.Equal(t, StepLensSelection, st.Step)
}

func TestFullWalkThrough(t *testing.T) {
	st := NewState(uuid.New(), uuid.New(), enum.LensModeSame)

	st.ApplyLens(testLens("pair"), enum.EyeSideLeft)
	require.NoError(t, st.Apply(EventLensChosen))
	assert.Equal(t, StepProfileSelection, st.Step)

	profileID := uuid.New()
	st.ProfileID = &profileID
	require.NoError(t, st.Apply(EventProfileChosen))
	assert.Equal(t, StepMeasurementHistory, st.Step)

	recordID := uuid.New()
	st.RefractionRecordID = &recordID
	require.NoError(t, st.Apply(EventRecordChosen))
	assert.Equal(t, StepPrescriptionEntry, st.Step)

	st.Prescription = prescription.Prescription{SphereOD: -1.25, SphereOS: -1.0, PD: 62}
	require.NoError(t, st.Apply(EventPrescriptionSubmitted))
	assert.Equal(t, StepCompleted, st.Step)
	assert.True(t, st.Step.IsTerminal())
}

func TestFreshStartSkipsRecordChoice(t *testing.T) {
	st := NewState(uuid.New(), uuid.New(), enum.LensModeSame)
	st.ApplyLens(testLens("pair"), enum.EyeSideLeft)
	require.NoError(t, st.Apply(EventLensChosen))
	profileID := uuid.New()
	st.ProfileID = &profileID
	require.NoError(t, st.Apply(EventProfileChosen))

	require.NoError(t, st.Apply(EventFreshStart))
	assert.Equal(t, StepPrescriptionEntry, st.Step)
	assert.Nil(t, st.RefractionRecordID)
}

func TestBackKeepsAccumulatedState(t *testing.T) {
	st := NewState(uuid.New(), uuid.New(), enum.LensModeSame)
	lens := testLens("pair")
	st.ApplyLens(lens, enum.EyeSideLeft)
	require.NoError(t, st.Apply(EventLensChosen))
	require.Equal(t, StepProfileSelection, st.Step)

	require.NoError(t, st.Apply(EventBack))
	assert.Equal(t, StepLensSelection, st.Step)
	assert.Same(t, lens, st.LeftLens)
	assert.Same(t, lens, st.RightLens)
}

func TestBackFromFirstStepExits(t *testing.T) {
	st := NewState(uuid.New(), uuid.New(), enum.LensModeSame)

	require.NoError(t, st.Apply(EventBack))
	assert.Equal(t, StepExited, st.Step)
	assert.True(t, st.Step.IsTerminal())
}

func TestTerminalStepsAcceptNothing(t *testing.T) {
	for _, step := range []Step{StepExited, StepCompleted} {
		st := NewState(uuid.New(), uuid.New(), enum.LensModeSame)
		st.Step = step
		for _, e := range []Event{
			EventLensChosen, EventProfileChosen, EventRecordChosen,
			EventFreshStart, EventPrescriptionSubmitted, EventBack,
		} {
			assert.ErrorIs(t, st.Apply(e), ErrInvalidTransition, "step %s event %s", step, e)
		}
	}
}

func TestFinalize(t *testing.T) {
	st := NewState(uuid.New(), uuid.New(), enum.LensModeSame)
	lens := testLens("pair")
	st.ApplyLens(lens, enum.EyeSideLeft)
	st.Step = StepCompleted
	st.Prescription = prescription.Prescription{SphereOD: -1.25, PD: 62}

	res, err := st.Finalize()
	require.NoError(t, err)
	assert.Equal(t, st.EyeGlassID, res.EyeGlassID)
	assert.Same(t, lens, res.LeftLens)
	assert.Same(t, lens, res.RightLens)
	assert.Equal(t, st.Prescription, res.Prescription)
}

func TestFinalizeBeforeCompletion(t *testing.T) {
	st := NewState(uuid.New(), uuid.New(), enum.LensModeSame)

	_, err := st.Finalize()
	assert.ErrorIs(t, err, ErrStepIncomplete)
}

func TestFinalizeMissingLens(t *testing.T) {
	st := NewState(uuid.New(), uuid.New(), enum.LensModeCustom)
	st.ApplyLens(testLens("right only"), enum.EyeSideRight)
	st.Step = StepCompleted

	_, err := st.Finalize()
	assert.ErrorIs(t, err, ErrLensPairMissing)
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "Exited", StepExited.String())
	assert.Equal(t, "LensSelection", StepLensSelection.String())
	assert.Equal(t, "Completed", StepCompleted.String())
	assert.Equal(t, "Unknown", Step(42).String())
}

func TestStateBinaryRoundTrip(t *testing.T) {
	st := NewState(uuid.New(), uuid.New(), enum.LensModeCustom)
	st.ApplyLens(testLens("left"), enum.EyeSideLeft)
	st.ApplyLens(testLens("right"), enum.EyeSideRight)
	profileID := uuid.New()
	st.ProfileID = &profileID
	st.Prescription = prescription.Prescription{SphereOD: -1.25, PD: 62.5}

	data, err := st.MarshalBinary()
	require.NoError(t, err)

	var got State
	require.NoError(t, got.UnmarshalBinary(data))
	assert.Equal(t, st.ID, got.ID)
	assert.Equal(t, st.AccountID, got.AccountID)
	assert.Equal(t, st.Mode, got.Mode)
	assert.Equal(t, st.Step, got.Step)
	assert.Equal(t, st.LeftLens.ID, got.LeftLens.ID)
	assert.Equal(t, st.RightLens.ID, got.RightLens.ID)
	assert.Equal(t, *st.ProfileID, *got.ProfileID)
	assert.Equal(t, st.Prescription, got.Prescription)
}

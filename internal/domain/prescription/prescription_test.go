package prescription

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nguyenduy/opticart-api/internal/domain/enum"
)

func TestNormalizeRoundsToStep(t *testing.T) {
	assert.Equal(t, -2.25, Normalize(FieldSphereOD, -2.3))
	assert.Equal(t, 1.25, Normalize(FieldCylinderOS, 1.26))
	assert.Equal(t, 90.0, Normalize(FieldAxisOD, 90.4))
	assert.Equal(t, 63.5, Normalize(FieldPD, 63.4))
}

func TestNormalizeClamps(t *testing.T) {
	assert.Equal(t, -12.0, Normalize(FieldSphereOD, -15))
	assert.Equal(t, 12.0, Normalize(FieldSphereOS, 20))
	assert.Equal(t, 180.0, Normalize(FieldAxisOS, 250))
	assert.Equal(t, 0.0, Normalize(FieldAddOD, -1))
	assert.Equal(t, 50.0, Normalize(FieldPD, 30))
	assert.Equal(t, 80.0, Normalize(FieldPD, 95))
}

func TestNormalizeNonFinite(t *testing.T) {
	assert.Equal(t, 0.0, Normalize(FieldSphereOD, math.NaN()))
	assert.Equal(t, 0.0, Normalize(FieldAxisOD, math.Inf(1)))
	assert.Equal(t, 50.0, Normalize(FieldPD, math.Inf(-1)))
}

func TestNormalizeUnknownField(t *testing.T) {
	assert.Equal(t, 1.23, Normalize(Field("bogus"), 1.23))
}

func TestParseField(t *testing.T) {
	assert.Equal(t, -1.75, ParseField(FieldSphereOD, "-1.75"))
	assert.Equal(t, 0.0, ParseField(FieldSphereOD, ""))
	assert.Equal(t, 0.0, ParseField(FieldCylinderOD, "not a number"))
	assert.Equal(t, 50.0, ParseField(FieldPD, ""))
	assert.Equal(t, 63.5, ParseField(FieldPD, "63.4"))
}

func TestValidateAccepts(t *testing.T) {
	p := Prescription{
		SphereOD:   -2.25,
		CylinderOD: -0.5,
		AxisOD:     90,
		SphereOS:   -2.0,
		CylinderOS: -0.75,
		AxisOS:     85,
		AddOD:      1.0,
		AddOS:      1.0,
		PD:         63.5,
	}
	assert.Nil(t, p.Validate())
}

func TestValidateZeroPrescriptionFailsPD(t *testing.T) {
	// All-zero is allowed for every field except pd, whose range starts
	// at 50mm.
	var p Prescription
	errs := p.Validate()
	assert.Len(t, errs, 1)
	assert.Equal(t, "pd", errs[0].Field)
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	p := Prescription{SphereOD: -14, PD: 63}
	errs := p.Validate()

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "sphere_od")
	assert.NotContains(t, fields, "pd")
}

func TestValidateRejectsOffStep(t *testing.T) {
	p := Prescription{SphereOD: -2.3, PD: 63.5}
	errs := p.Validate()
	assert.Len(t, errs, 1)
	assert.Equal(t, "sphere_od", errs[0].Field)
	assert.Contains(t, errs[0].Message, "multiple of")
}

func TestValidateStepTolerance(t *testing.T) {
	// A value a hair off the grid from float arithmetic still passes.
	p := Prescription{SphereOD: 2.25 + 1e-9, PD: 63.5}
	assert.Nil(t, p.Validate())
}

func TestValidateRejectsNaN(t *testing.T) {
	p := Prescription{SphereOD: math.NaN(), PD: 63.5}
	errs := p.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "must be a number")
}

func TestNormalized(t *testing.T) {
	p := Prescription{SphereOD: -2.3, AxisOS: 200.7, PD: 44}
	n := p.Normalized()

	assert.Equal(t, -2.25, n.SphereOD)
	assert.Equal(t, 180.0, n.AxisOS)
	assert.Equal(t, 50.0, n.PD)
	// Original is untouched.
	assert.Equal(t, -2.3, p.SphereOD)
}

func TestSeedFromMeasurementsBothEyes(t *testing.T) {
	p := SeedFromMeasurements([]Measurement{
		{EyeSide: enum.EyeSideLeft, Spherical: -1.5, Cylindrical: -0.5, Axis: 80, PupilDistance: 62},
		{EyeSide: enum.EyeSideRight, Spherical: -2.0, Cylindrical: -0.25, Axis: 95, PupilDistance: 63},
	})

	assert.Equal(t, -2.0, p.SphereOD)
	assert.Equal(t, -0.25, p.CylinderOD)
	assert.Equal(t, 95.0, p.AxisOD)
	assert.Equal(t, -1.5, p.SphereOS)
	assert.Equal(t, -0.5, p.CylinderOS)
	assert.Equal(t, 80.0, p.AxisOS)
	// PD prefers the right eye.
	assert.Equal(t, 63.0, p.PD)
}

func TestSeedFromMeasurementsRightEyeOnly(t *testing.T) {
	p := SeedFromMeasurements([]Measurement{
		{EyeSide: enum.EyeSideRight, Spherical: -2.0, Cylindrical: -0.25, Axis: 95, PupilDistance: 63},
	})

	assert.Equal(t, -2.0, p.SphereOD)
	assert.Equal(t, 63.0, p.PD)
	// The unmeasured eye stays at zero.
	assert.Equal(t, 0.0, p.SphereOS)
	assert.Equal(t, 0.0, p.CylinderOS)
	assert.Equal(t, 0.0, p.AxisOS)
}

func TestSeedFromMeasurementsLeftPDFallback(t *testing.T) {
	p := SeedFromMeasurements([]Measurement{
		{EyeSide: enum.EyeSideLeft, Spherical: -1.0, PupilDistance: 61.5},
	})
	assert.Equal(t, 61.5, p.PD)
}

func TestSeedFromMeasurementsNeverSeedsAdd(t *testing.T) {
	p := SeedFromMeasurements([]Measurement{
		{EyeSide: enum.EyeSideRight, Spherical: 3, PupilDistance: 63},
		{EyeSide: enum.EyeSideLeft, Spherical: 3, PupilDistance: 62},
	})
	assert.Equal(t, 0.0, p.AddOD)
	assert.Equal(t, 0.0, p.AddOS)
}

func TestSeedFromMeasurementsNormalizesHistoricalValues(t *testing.T) {
	p := SeedFromMeasurements([]Measurement{
		{EyeSide: enum.EyeSideRight, Spherical: -13.1, Cylindrical: 0.3, Axis: 190, PupilDistance: 90},
	})

	assert.Equal(t, -12.0, p.SphereOD)
	assert.Equal(t, 0.25, p.CylinderOD)
	assert.Equal(t, 180.0, p.AxisOD)
	assert.Equal(t, 80.0, p.PD)
}

func TestSeedFromMeasurementsEmpty(t *testing.T) {
	p := SeedFromMeasurements(nil)
	assert.Equal(t, Prescription{}, p)
}

func TestSpec(t *testing.T) {
	s, ok := Spec(FieldAxisOD)
	assert.True(t, ok)
	assert.Equal(t, FieldSpec{Min: 0, Max: 180, Step: 1}, s)

	_, ok = Spec(Field("bogus"))
	assert.False(t, ok)
}

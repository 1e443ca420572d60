package prescription

import (
	"fmt"
	"math"
	"strconv"

	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
)

// Field names a single optical value on a prescription. The names double as
// JSON keys and as the field identifiers in validation errors.
type Field string

const (
	FieldSphereOD   Field = "sphere_od"
	FieldCylinderOD Field = "cylinder_od"
	FieldAxisOD     Field = "axis_od"
	FieldSphereOS   Field = "sphere_os"
	FieldCylinderOS Field = "cylinder_os"
	FieldAxisOS     Field = "axis_os"
	FieldAddOD      Field = "add_od"
	FieldAddOS      Field = "add_os"
	FieldPD         Field = "pd"
)

// FieldSpec describes the clinical domain of a prescription field: the
// permitted range and the increment optical equipment can grind to.
type FieldSpec struct {
	Min  float64
	Max  float64
	Step float64
}

var fieldSpecs = map[Field]FieldSpec{
	FieldSphereOD:   {Min: -12, Max: 12, Step: 0.25},
	FieldSphereOS:   {Min: -12, Max: 12, Step: 0.25},
	FieldCylinderOD: {Min: -12, Max: 12, Step: 0.25},
	FieldCylinderOS: {Min: -12, Max: 12, Step: 0.25},
	FieldAxisOD:     {Min: 0, Max: 180, Step: 1},
	FieldAxisOS:     {Min: 0, Max: 180, Step: 1},
	FieldAddOD:      {Min: 0, Max: 4, Step: 0.25},
	FieldAddOS:      {Min: 0, Max: 4, Step: 0.25},
	FieldPD:         {Min: 50, Max: 80, Step: 0.5},
}

// Spec returns the domain spec for a field. The second return value is false
// for unknown field names.
func Spec(f Field) (FieldSpec, bool) {
	s, ok := fieldSpecs[f]
	return s, ok
}

// Fields returns all prescription fields in display order
func Fields() []Field {
	return []Field{
		FieldSphereOD, FieldCylinderOD, FieldAxisOD,
		FieldSphereOS, FieldCylinderOS, FieldAxisOS,
		FieldAddOD, FieldAddOS, FieldPD,
	}
}

// Prescription holds the nine optical values for a pair of lenses.
// OD is the right eye, OS the left. All values are in diopters except the
// axis (degrees) and pd (millimeters).
type Prescription struct {
	SphereOD   float64 `gorm:"type:numeric(5,2);default:0" json:"sphere_od"`
	CylinderOD float64 `gorm:"type:numeric(5,2);default:0" json:"cylinder_od"`
	AxisOD     float64 `gorm:"type:numeric(5,2);default:0" json:"axis_od"`
	SphereOS   float64 `gorm:"type:numeric(5,2);default:0" json:"sphere_os"`
	CylinderOS float64 `gorm:"type:numeric(5,2);default:0" json:"cylinder_os"`
	AxisOS     float64 `gorm:"type:numeric(5,2);default:0" json:"axis_os"`
	AddOD      float64 `gorm:"type:numeric(5,2);default:0" json:"add_od"`
	AddOS      float64 `gorm:"type:numeric(5,2);default:0" json:"add_os"`
	PD         float64 `gorm:"type:numeric(5,2);default:0" json:"pd"`
}

// Get returns the value of the named field
func (p Prescription) Get(f Field) float64 {
	switch f {
	case FieldSphereOD:
		return p.SphereOD
	case FieldCylinderOD:
		return p.CylinderOD
	case FieldAxisOD:
		return p.AxisOD
	case FieldSphereOS:
		return p.SphereOS
	case FieldCylinderOS:
		return p.CylinderOS
	case FieldAxisOS:
		return p.AxisOS
	case FieldAddOD:
		return p.AddOD
	case FieldAddOS:
		return p.AddOS
	case FieldPD:
		return p.PD
	}
	return 0
}

// Set assigns the value of the named field
func (p *Prescription) Set(f Field, v float64) {
	switch f {
	case FieldSphereOD:
		p.SphereOD = v
	case FieldCylinderOD:
		p.CylinderOD = v
	case FieldAxisOD:
		p.AxisOD = v
	case FieldSphereOS:
		p.SphereOS = v
	case FieldCylinderOS:
		p.CylinderOS = v
	case FieldAxisOS:
		p.AxisOS = v
	case FieldAddOD:
		p.AddOD = v
	case FieldAddOS:
		p.AddOS = v
	case FieldPD:
		p.PD = v
	}
}

// Normalize snaps a raw value onto the field's permitted grid: rounded to the
// nearest step, then clamped into [Min, Max]. It never rejects input; callers
// that need explicit rejection use Validate instead. Normalize is the policy
// for seeding from historical measurement records, which may predate the
// current ranges.
func Normalize(f Field, v float64) float64 {
	spec, ok := fieldSpecs[f]
	if !ok {
		return v
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	v = math.Round(v/spec.Step) * spec.Step
	if v < spec.Min {
		v = spec.Min
	}
	if v > spec.Max {
		v = spec.Max
	}
	return v
}

// ParseField parses a raw text input for a field and normalizes it.
// Empty input is treated as zero.
func ParseField(f Field, raw string) float64 {
	if raw == "" {
		return Normalize(f, 0)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Normalize(f, 0)
	}
	return Normalize(f, v)
}

// Normalized returns a copy of the prescription with every field snapped to
// its grid
func (p Prescription) Normalized() Prescription {
	out := p
	for _, f := range Fields() {
		out.Set(f, Normalize(f, p.Get(f)))
	}
	return out
}

const stepTolerance = 1e-6

// Validate checks every field against its clinical range and step increment
// and returns one FieldError per violation. A nil result means the
// prescription is acceptable as submitted. Unlike Normalize, out-of-range
// values are rejected rather than silently adjusted: a clamped sphere of -14
// would hide a clinically meaningful entry error.
func (p Prescription) Validate() []apperror.FieldError {
	var errs []apperror.FieldError
	for _, f := range Fields() {
		spec := fieldSpecs[f]
		v := p.Get(f)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, apperror.FieldError{
				Field:   string(f),
				Message: fmt.Sprintf("%s must be a number", f),
			})
			continue
		}
		if v < spec.Min || v > spec.Max {
			errs = append(errs, apperror.FieldError{
				Field:   string(f),
				Message: fmt.Sprintf("%s must be between %g and %g", f, spec.Min, spec.Max),
			})
			continue
		}
		if rem := math.Abs(math.Remainder(v, spec.Step)); rem > stepTolerance {
			errs = append(errs, apperror.FieldError{
				Field:   string(f),
				Message: fmt.Sprintf("%s must be a multiple of %g", f, spec.Step),
			})
		}
	}
	return errs
}

// Measurement is the slice of a refraction measurement the seeding rule needs
type Measurement struct {
	EyeSide       enum.EyeSide
	Spherical     float64
	Cylindrical   float64
	Axis          float64
	PupilDistance float64
}

// SeedFromMeasurements builds a prescription from a refraction record's
// per-eye measurements. Eyes without a measurement keep zero values. The
// pupil distance is taken from the right eye when present, otherwise the
// left. ADD power is never seeded: it is a separate clinical decision and
// always starts at zero. All seeded values are normalized, since historical
// records may hold values outside the current grid.
func SeedFromMeasurements(ms []Measurement) Prescription {
	var p Prescription
	var leftPD, rightPD *float64
	for _, m := range ms {
		switch m.EyeSide {
		case enum.EyeSideRight:
			p.SphereOD = Normalize(FieldSphereOD, m.Spherical)
			p.CylinderOD = Normalize(FieldCylinderOD, m.Cylindrical)
			p.AxisOD = Normalize(FieldAxisOD, m.Axis)
			pd := m.PupilDistance
			rightPD = &pd
		case enum.EyeSideLeft:
			p.SphereOS = Normalize(FieldSphereOS, m.Spherical)
			p.CylinderOS = Normalize(FieldCylinderOS, m.Cylindrical)
			p.AxisOS = Normalize(FieldAxisOS, m.Axis)
			pd := m.PupilDistance
			leftPD = &pd
		}
	}
	switch {
	case rightPD != nil:
		p.PD = Normalize(FieldPD, *rightPD)
	case leftPD != nil:
		p.PD = Normalize(FieldPD, *leftPD)
	}
	return p
}

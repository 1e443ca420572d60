package enum

// LensMode controls how a lens choice applies to the two eyes during
// selection: "same" applies one choice to both, "custom" requires an
// independent choice per eye.
type LensMode string

const (
	LensModeSame   LensMode = "same"
	LensModeCustom LensMode = "custom"
)

// IsValid reports whether the mode is one of the known values
func (m LensMode) IsValid() bool {
	return m == LensModeSame || m == LensModeCustom
}

func (m LensMode) String() string {
	return string(m)
}

package request

// StartSelectionRequest opens a lens selection session for a frame
type StartSelectionRequest struct {
	EyeGlassID string `json:"eye_glass_id" binding:"required,uuid"`
	Mode       string `json:"mode" binding:"required,oneof=same custom"`
}

// ChooseLensRequest records a lens choice. Eye is ignored in same mode.
type ChooseLensRequest struct {
	LensID string `json:"lens_id" binding:"required,uuid"`
	Eye    string `json:"eye" binding:"omitempty,oneof=left right"`
}

// ChooseProfileRequest picks the wearer profile for the session
type ChooseProfileRequest struct {
	ProfileID string `json:"profile_id" binding:"required,uuid"`
}

// ChooseRecordRequest seeds the prescription from a refraction record
type ChooseRecordRequest struct {
	RecordID string `json:"record_id" binding:"required,uuid"`
}

// PrescriptionRequest carries the prescription values for submission.
// Values are validated against the clinical ranges server side, so no
// binding constraints beyond presence.
type PrescriptionRequest struct {
	SphereOD   float64 `json:"sphere_od"`
	CylinderOD float64 `json:"cylinder_od"`
	AxisOD     float64 `json:"axis_od"`
	SphereOS   float64 `json:"sphere_os"`
	CylinderOS float64 `json:"cylinder_os"`
	AxisOS     float64 `json:"axis_os"`
	AddOD      float64 `json:"add_od"`
	AddOS      float64 `json:"add_os"`
	PD         float64 `json:"pd"`
}

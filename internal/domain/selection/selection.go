package selection

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	"github.com/nguyenduy/opticart-api/internal/domain/prescription"
)

// Step is a stage of the lens selection flow
type Step int

const (
	// StepExited is the pseudo-step reached by going back from the first
	// step: the session is over without a result.
	StepExited Step = 0

	StepLensSelection      Step = 1
	StepProfileSelection   Step = 2
	StepMeasurementHistory Step = 3
	StepPrescriptionEntry  Step = 4

	// StepCompleted is the terminal step after a valid prescription is
	// submitted.
	StepCompleted Step = 5
)

func (s Step) String() string {
	switch s {
	case StepExited:
		return "Exited"
	case StepLensSelection:
		return "LensSelection"
	case StepProfileSelection:
		return "ProfileSelection"
	case StepMeasurementHistory:
		return "MeasurementHistory"
	case StepPrescriptionEntry:
		return "PrescriptionEntry"
	case StepCompleted:
		return "Completed"
	}
	return "Unknown"
}

// IsTerminal reports whether no further events are accepted
func (s Step) IsTerminal() bool {
	return s == StepExited || s == StepCompleted
}

// Event is something that happens to a selection session
type Event string

const (
	EventLensChosen            Event = "lens_chosen"
	EventProfileChosen         Event = "profile_chosen"
	EventRecordChosen          Event = "record_chosen"
	EventFreshStart            Event = "fresh_start"
	EventPrescriptionSubmitted Event = "prescription_submitted"
	EventBack                  Event = "back"
)

// transitions is the full step transition table. An absent entry means the
// event is illegal in that step; there is no other way to move between steps.
var transitions = map[Step]map[Event]Step{
	StepLensSelection: {
		EventLensChosen: StepProfileSelection,
		EventBack:       StepExited,
	},
	StepProfileSelection: {
		EventProfileChosen: StepMeasurementHistory,
		EventBack:          StepLensSelection,
	},
	StepMeasurementHistory: {
		EventRecordChosen: StepPrescriptionEntry,
		EventFreshStart:   StepPrescriptionEntry,
		EventBack:         StepProfileSelection,
	},
	StepPrescriptionEntry: {
		EventPrescriptionSubmitted: StepCompleted,
		EventBack:                  StepMeasurementHistory,
	},
}

var (
	ErrInvalidTransition = errors.New("event not allowed in current step")
	ErrStepIncomplete    = errors.New("step precondition not satisfied")
	ErrLensPairMissing   = errors.New("both lenses must be chosen before completing the selection")
)

// Next resolves the transition table for one step/event pair
func Next(s Step, e Event) (Step, error) {
	if row, ok := transitions[s]; ok {
		if next, ok := row[e]; ok {
			return next, nil
		}
	}
	return s, ErrInvalidTransition
}

// State is the aggregate a selection session mutates as the customer walks
// through the steps. It is stored as JSON in the session store and owned by
// exactly one account at a time.
type State struct {
	ID         uuid.UUID     `json:"id"`
	AccountID  uuid.UUID     `json:"account_id"`
	EyeGlassID uuid.UUID     `json:"eye_glass_id"`
	Mode       enum.LensMode `json:"mode"`
	Step       Step          `json:"step"`

	LeftLens  *entity.Lens `json:"left_lens,omitempty"`
	RightLens *entity.Lens `json:"right_lens,omitempty"`

	ProfileID          *uuid.UUID                 `json:"profile_id,omitempty"`
	RefractionRecordID *uuid.UUID                 `json:"refraction_record_id,omitempty"`
	Measurements       []entity.MeasurementRecord `json:"measurements,omitempty"`

	Prescription prescription.Prescription `json:"prescription"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewState creates a fresh session at the first step with a zeroed
// prescription and no lens choices
func NewState(accountID, eyeGlassID uuid.UUID, mode enum.LensMode) *State {
	now := time.Now().UTC()
	return &State{
		ID:         uuid.New(),
		AccountID:  accountID,
		EyeGlassID: eyeGlassID,
		Mode:       mode,
		Step:       StepLensSelection,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ApplyLens records a lens choice. In "same" mode the one choice covers both
// eyes; in "custom" mode only the given eye is set.
func (st *State) ApplyLens(lens *entity.Lens, eye enum.EyeSide) {
	if st.Mode == enum.LensModeSame {
		st.LeftLens = lens
		st.RightLens = lens
		return
	}
	if eye == enum.EyeSideRight {
		st.RightLens = lens
	} else {
		st.LeftLens = lens
	}
}

// CanComplete reports whether the lens selection step is satisfied: both
// eyes have a lens, regardless of mode
func (st *State) CanComplete() bool {
	return st.LeftLens != nil && st.RightLens != nil
}

// guard returns nil when the precondition for leaving the current step via
// the given event holds. Back never needs a guard: backward transitions keep
// accumulated state and are always allowed where the table permits them.
func (st *State) guard(e Event) error {
	switch e {
	case EventLensChosen:
		if !st.CanComplete() {
			return ErrStepIncomplete
		}
	case EventProfileChosen:
		if st.ProfileID == nil {
			return ErrStepIncomplete
		}
	case EventRecordChosen:
		if st.RefractionRecordID == nil {
			return ErrStepIncomplete
		}
	}
	return nil
}

// Apply advances the state machine by one event, enforcing both the
// transition table and the step's precondition. State accumulated so far is
// never discarded on a backward transition.
func (st *State) Apply(e Event) error {
	next, err := Next(st.Step, e)
	if err != nil {
		return err
	}
	if err := st.guard(e); err != nil {
		return err
	}
	st.Step = next
	st.UpdatedAt = time.Now().UTC()
	return nil
}

// Result is the read-only outcome of a completed selection
type Result struct {
	EyeGlassID   uuid.UUID                 `json:"eye_glass_id"`
	LeftLens     *entity.Lens              `json:"left_lens"`
	RightLens    *entity.Lens              `json:"right_lens"`
	ProfileID    *uuid.UUID                `json:"profile_id,omitempty"`
	Prescription prescription.Prescription `json:"prescription"`
}

// Finalize produces the selection result after the terminal transition.
// A missing lens at this point is a bug in a caller that bypassed the step
// guards; it is reported as an error rather than silently dropped so the
// customer sees the failure.
func (st *State) Finalize() (*Result, error) {
	if st.Step != StepCompleted {
		return nil, ErrStepIncomplete
	}
	if st.LeftLens == nil || st.RightLens == nil {
		return nil, ErrLensPairMissing
	}
	return &Result{
		EyeGlassID:   st.EyeGlassID,
		LeftLens:     st.LeftLens,
		RightLens:    st.RightLens,
		ProfileID:    st.ProfileID,
		Prescription: st.Prescription,
	}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler so the state can be
// handed directly to the Redis client.
func (st *State) MarshalBinary() ([]byte, error) {
	return json.Marshal(st)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler
func (st *State) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, st)
}

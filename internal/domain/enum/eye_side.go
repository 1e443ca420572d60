package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// EyeSide identifies which eye a measurement belongs to.
// The numeric values match the clinical machine export (0=left, 1=right).
type EyeSide int

const (
	EyeSideLeft  EyeSide = 0
	EyeSideRight EyeSide = 1
)

func (s EyeSide) String() string {
	if s == EyeSideRight {
		return "Right"
	}
	return "Left"
}

func (s EyeSide) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(s))
}

func (s *EyeSide) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return err
	}
	*s = EyeSide(i)
	return nil
}

func (s EyeSide) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *EyeSide) Scan(value interface{}) error {
	if value == nil {
		*s = EyeSideLeft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = EyeSide(v)
	case int:
		*s = EyeSide(v)
	}
	return nil
}

package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ExchangeStatus represents the status of a product exchange request
type ExchangeStatus int

const (
	ExchangeStatusRequested ExchangeStatus = 0
	ExchangeStatusApproved  ExchangeStatus = 1
	ExchangeStatusRejected  ExchangeStatus = 2
	ExchangeStatusCompleted ExchangeStatus = 3
)

func (s ExchangeStatus) String() string {
	return [...]string{"Requested", "Approved", "Rejected", "Completed"}[s]
}

func (s ExchangeStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ExchangeStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ExchangeStatus(i)
		return nil
	}
	switch str {
	case "Requested":
		*s = ExchangeStatusRequested
	case "Approved":
		*s = ExchangeStatusApproved
	case "Rejected":
		*s = ExchangeStatusRejected
	case "Completed":
		*s = ExchangeStatusCompleted
	}
	return nil
}

func (s ExchangeStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ExchangeStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ExchangeStatusRequested
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ExchangeStatus(v)
	case int:
		*s = ExchangeStatus(v)
	}
	return nil
}

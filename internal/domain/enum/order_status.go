package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the status of an order
type OrderStatus int

const (
	OrderStatusPending    OrderStatus = 0
	OrderStatusPaid       OrderStatus = 1
	OrderStatusProcessing OrderStatus = 2
	OrderStatusShipped    OrderStatus = 3
	OrderStatusCompleted  OrderStatus = 4
	OrderStatusCancelled  OrderStatus = 5
)

func (s OrderStatus) String() string {
	return [...]string{"Pending", "Paid", "Processing", "Shipped", "Completed", "Cancelled"}[s]
}

// IsTerminal reports whether no further status transitions are allowed
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = OrderStatusPending
	case "Paid":
		*s = OrderStatusPaid
	case "Processing":
		*s = OrderStatusProcessing
	case "Shipped":
		*s = OrderStatusShipped
	case "Completed":
		*s = OrderStatusCompleted
	case "Cancelled":
		*s = OrderStatusCancelled
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}

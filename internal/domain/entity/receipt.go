package entity

// ReceiptHeader holds the store block printed at the top of a receipt
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem is one printed line. Amounts are in VND.
type ReceiptItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Total     int64  `json:"total"`
}

// Receipt is the printable view of an order, also returned as JSON when no
// thermal printer is configured. Amounts are in VND.
type Receipt struct {
	Header      ReceiptHeader `json:"header"`
	OrderCode   string        `json:"order_code"`
	Date        string        `json:"date"`
	Cashier     string        `json:"cashier,omitempty"`
	Customer    string        `json:"customer,omitempty"`
	PickupPlace string        `json:"pickup_place,omitempty"`
	Items       []ReceiptItem `json:"items"`
	Subtotal    int64         `json:"subtotal"`
	Shipping    int64         `json:"shipping"`
	Discount    int64         `json:"discount"`
	Total       int64         `json:"total"`
	Paid        int64         `json:"paid"`
	Due         int64         `json:"due"`
}

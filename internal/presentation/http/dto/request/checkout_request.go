package request

// QuoteRequest previews order totals for the current cart
type QuoteRequest struct {
	ShippingCost int64   `json:"shipping_cost" binding:"min=0"`
	VoucherCode  *string `json:"voucher_code"`
	IsDeposit    bool    `json:"is_deposit"`
}

// PlaceOrderRequest creates an order from the cart. Exactly one of
// receiver_address or kiosk_id must be set.
type PlaceOrderRequest struct {
	ReceiverAddress *string `json:"receiver_address" binding:"omitempty,min=5,max=500"`
	KioskID         *string `json:"kiosk_id" binding:"omitempty,uuid"`
	ShippingCost    int64   `json:"shipping_cost" binding:"min=0"`
	VoucherCode     *string `json:"voucher_code"`
	IsDeposit       bool    `json:"is_deposit"`
	PaymentMethod   string  `json:"payment_method" binding:"required,oneof=card bank_transfer momo cash"`
	ReturnURL       string  `json:"return_url" binding:"omitempty,url"`
}

// ConfirmPaymentRequest is the payment provider webhook payload
type ConfirmPaymentRequest struct {
	PaymentCode   string `json:"payment_code" binding:"required"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status" binding:"required"`
}

// PayRemainderRequest collects the outstanding balance on a deposit order
type PayRemainderRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=card bank_transfer momo cash"`
	ReturnURL     string `json:"return_url" binding:"omitempty,url"`
}

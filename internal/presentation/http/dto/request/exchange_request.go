package request

// CreateExchangeRequest opens an exchange request for an order line
type CreateExchangeRequest struct {
	OrderDetailID string `json:"order_detail_id" binding:"required,uuid"`
	Reason        string `json:"reason" binding:"required,min=5,max=1000"`
}

// ResolveExchangeRequest approves or rejects a pending exchange request
type ResolveExchangeRequest struct {
	Approve    bool    `json:"approve"`
	StaffNotes *string `json:"staff_notes" binding:"omitempty,max=1000"`
}

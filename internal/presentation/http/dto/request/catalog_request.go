package request

// CreateFrameRequest creates a frame product. Price is in VND.
type CreateFrameRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	Price         int64   `json:"price" binding:"required,min=0"`
	Images        string  `json:"images"`
	Quantity      int     `json:"quantity" binding:"min=0"`
	QuantityAlert int     `json:"quantity_alert" binding:"min=0"`
	Notes         *string `json:"notes"`
}

// UpdateFrameRequest applies a partial update to a frame
type UpdateFrameRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=2,max=255"`
	Price         *int64  `json:"price" binding:"omitempty,min=0"`
	Images        *string `json:"images"`
	Quantity      *int    `json:"quantity" binding:"omitempty,min=0"`
	QuantityAlert *int    `json:"quantity_alert" binding:"omitempty,min=0"`
	Notes         *string `json:"notes"`
	Status        *bool   `json:"status"`
}

// CreateLensTypeRequest creates a lens type grouping
type CreateLensTypeRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=255"`
	Description string `json:"description"`
}

// CreateLensRequest creates a lens product. Price is in VND.
type CreateLensRequest struct {
	LensTypeID  string `json:"lens_type_id" binding:"required,uuid"`
	Name        string `json:"name" binding:"required,min=2,max=255"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,min=0"`
	Images      string `json:"images"`
	Features    string `json:"features"`
}

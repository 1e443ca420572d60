package request

import "github.com/nguyenduy/opticart-api/internal/domain/enum"

// UpdateOrderStatusRequest moves an order to a new status
type UpdateOrderStatusRequest struct {
	Status enum.OrderStatus `json:"status" binding:"required"`
}

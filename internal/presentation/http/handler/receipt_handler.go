package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/application/service"
	"github.com/nguyenduy/opticart-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt printing HTTP requests.
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler.
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// GetStatus returns the current printer connection status.
func (h *ReceiptHandler) GetStatus(c *gin.Context) {
	status := h.receiptService.GetStatus()
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a test page to the printer.
func (h *ReceiptHandler) TestPrint(c *gin.Context) {
	receipt, err := h.receiptService.TestPrint()
	if err != nil {
		// Return the receipt data anyway (useful when printer type is "none")
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test page sent to printer", gin.H{
		"receipt": receipt,
	})
}

// PrintOrderReceipt prints the receipt for an order.
func (h *ReceiptHandler) PrintOrderReceipt(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	receipt, err := h.receiptService.PrintOrderReceipt(c.Request.Context(), orderID)
	if err != nil {
		// If the receipt was built but printing failed, return it with a warning
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Order receipt printed successfully", gin.H{
		"receipt": receipt,
	})
}

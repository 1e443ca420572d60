package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
	"github.com/nguyenduy/opticart-api/pkg/printer"
)

// ReceiptService formats order receipts and sends them to the kiosk's
// thermal printer.
type ReceiptService struct {
	printer     printer.Printer
	orderRepo   repository.OrderRepository
	printerType string
	storeName   string
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	p printer.Printer,
	orderRepo repository.OrderRepository,
	printerType string,
	storeName string,
) *ReceiptService {
	return &ReceiptService{
		printer:     p,
		orderRepo:   orderRepo,
		printerType: printerType,
		storeName:   storeName,
	}
}

// PrinterStatus returns the current printer status information
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status
func (s *ReceiptService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *ReceiptService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: "PRINTER TEST",
			Address:   "Test Address",
			Phone:     "+84 000 000 000",
		},
		OrderCode: "TEST-001",
		Date:      "Test Date",
		Cashier:   "System",
		Items: []entity.ReceiptItem{
			{Name: "Test Frame", Quantity: 1, UnitPrice: 100000, Total: 100000},
			{Name: "Test Lenses", Quantity: 2, UnitPrice: 50000, Total: 100000},
		},
		Subtotal: 200000,
		Total:    200000,
		Paid:     200000,
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// PrintOrderReceipt fetches an order (with details) and prints its receipt
func (s *ReceiptService) PrintOrderReceipt(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	var paid int64
	for _, p := range order.Payments {
		if p.PaidAt != nil {
			paid += p.Amount
		}
	}

	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: s.storeName,
		},
		OrderCode: order.Code,
		Date:      order.CreatedAt.Format("2006-01-02 15:04"),
		Subtotal:  order.Subtotal,
		Shipping:  order.ShippingCost,
		Discount:  order.Discount,
		Total:     order.Total,
		Paid:      paid,
		Due:       order.Total - paid,
	}

	if order.Account != nil {
		receipt.Customer = order.Account.FullName
	}
	if order.Kiosk != nil {
		receipt.PickupPlace = order.Kiosk.Name
		receipt.Header.Address = order.Kiosk.Address
		receipt.Header.Phone = order.Kiosk.PhoneNumber
	}

	for _, d := range order.Details {
		item := entity.ReceiptItem{
			Name:      "Custom glasses",
			Quantity:  d.Quantity,
			UnitPrice: d.Price,
			Total:     d.Price * int64(d.Quantity),
		}
		if pg := d.ProductGlass; pg != nil {
			if pg.EyeGlass != nil {
				item.Name = pg.EyeGlass.Name
			}
			receipt.Items = append(receipt.Items, item)
			if pg.LeftLens != nil && pg.RightLens != nil {
				if pg.LeftLens.ID == pg.RightLens.ID {
					receipt.Items = append(receipt.Items, entity.ReceiptItem{
						Name:     "  " + pg.LeftLens.Name + " (both eyes)",
						Quantity: d.Quantity,
					})
				} else {
					receipt.Items = append(receipt.Items,
						entity.ReceiptItem{Name: "  " + pg.LeftLens.Name + " (left)", Quantity: d.Quantity},
						entity.ReceiptItem{Name: "  " + pg.RightLens.Name + " (right)", Quantity: d.Quantity},
					)
				}
			}
			continue
		}
		receipt.Items = append(receipt.Items, item)
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (order %s): %v", order.Code, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes
func FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("Tax ID: %s", r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Order:", r.OrderCode).
		KeyValue("Date:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.PickupPlace != "" {
		doc.KeyValue("Pickup:", r.PickupPlace)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		if item.Total == 0 {
			doc.Text(item.Name)
			continue
		}
		doc.ItemLine(item.Quantity, item.Name, formatVND(item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", formatVND(item.UnitPrice))
		}
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", formatVND(r.Subtotal))
	if r.Shipping > 0 {
		doc.KeyValue("Shipping:", formatVND(r.Shipping))
	}
	if r.Discount > 0 {
		doc.KeyValue("Discount:", "-"+formatVND(r.Discount))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", formatVND(r.Total)).
		SetBold(false)

	if r.Paid > 0 {
		doc.KeyValue("Paid:", formatVND(r.Paid))
	}
	if r.Due > 0 {
		doc.KeyValue("Due:", formatVND(r.Due))
	}

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for your purchase!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

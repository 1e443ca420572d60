package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	"github.com/nguyenduy/opticart-api/internal/domain/pricing"
	"github.com/nguyenduy/opticart-api/internal/domain/repository"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
	"github.com/nguyenduy/opticart-api/pkg/email"
	"github.com/nguyenduy/opticart-api/pkg/utils"
)

// CheckoutService turns the cart into paid orders. Stock and voucher uses
// are reserved with atomic decrements; everything reserved is rolled back
// when a later step fails.
type CheckoutService struct {
	cartStore        repository.CartStore
	productGlassRepo repository.ProductGlassRepository
	eyeGlassRepo     repository.EyeGlassRepository
	voucherRepo      repository.VoucherRepository
	kioskRepo        repository.KioskRepository
	accountRepo      repository.AccountRepository
	orderRepo        repository.OrderRepository
	orderDetailRepo  repository.OrderDetailRepository
	paymentRepo      repository.PaymentRepository
	gateway          repository.PaymentGateway
	publisher        repository.EventPublisher
	emailService     *email.EmailService
	appURL           string
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	cartStore repository.CartStore,
	productGlassRepo repository.ProductGlassRepository,
	eyeGlassRepo repository.EyeGlassRepository,
	voucherRepo repository.VoucherRepository,
	kioskRepo repository.KioskRepository,
	accountRepo repository.AccountRepository,
	orderRepo repository.OrderRepository,
	orderDetailRepo repository.OrderDetailRepository,
	paymentRepo repository.PaymentRepository,
	gateway repository.PaymentGateway,
	publisher repository.EventPublisher,
	emailService *email.EmailService,
	appURL string,
) *CheckoutService {
	return &CheckoutService{
		cartStore:        cartStore,
		productGlassRepo: productGlassRepo,
		eyeGlassRepo:     eyeGlassRepo,
		voucherRepo:      voucherRepo,
		kioskRepo:        kioskRepo,
		accountRepo:      accountRepo,
		orderRepo:        orderRepo,
		orderDetailRepo:  orderDetailRepo,
		paymentRepo:      paymentRepo,
		gateway:          gateway,
		publisher:        publisher,
		emailService:     emailService,
		appURL:           appURL,
	}
}

// CartLine is a cart entry joined with its configured product
type CartLine struct {
	Item         repository.CartItem  `json:"item"`
	ProductGlass *entity.ProductGlass `json:"product_glass"`
}

// GetCart returns the account's cart with product details. Entries whose
// product has been deleted are dropped from the view and evicted.
func (s *CheckoutService) GetCart(ctx context.Context, accountID uuid.UUID) ([]CartLine, error) {
	items, err := s.cartStore.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		pg, err := s.productGlassRepo.GetWithRelations(ctx, item.ProductGlassID)
		if err != nil {
			return nil, err
		}
		if pg == nil {
			if err := s.cartStore.Remove(ctx, accountID, item.ProductGlassID); err != nil {
				return nil, err
			}
			continue
		}
		lines = append(lines, CartLine{Item: item, ProductGlass: pg})
	}
	return lines, nil
}

// RemoveFromCart deletes a single cart entry
func (s *CheckoutService) RemoveFromCart(ctx context.Context, accountID, productGlassID uuid.UUID) error {
	return s.cartStore.Remove(ctx, accountID, productGlassID)
}

// ClearCart empties the cart
func (s *CheckoutService) ClearCart(ctx context.Context, accountID uuid.UUID) error {
	return s.cartStore.Clear(ctx, accountID)
}

// QuoteInput parameterizes a price preview or an order placement
type QuoteInput struct {
	ShippingCost int64
	VoucherCode  *string
	IsDeposit    bool
}

// Quote prices the current cart without side effects. The same computation
// runs again at placement time, so a stale quote can never leak into an
// order.
func (s *CheckoutService) Quote(ctx context.Context, accountID uuid.UUID, input QuoteInput) (*pricing.Summary, error) {
	lines, err := s.GetCart(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}

	var voucher *entity.Voucher
	if input.VoucherCode != nil {
		voucher, err = s.usableVoucher(ctx, *input.VoucherCode)
		if err != nil {
			return nil, err
		}
	}

	summary := s.price(lines, input, voucher)
	return &summary, nil
}

// PlaceOrderInput parameterizes order placement. Exactly one of
// ReceiverAddress or KioskID must be set.
type PlaceOrderInput struct {
	ReceiverAddress *string
	KioskID         *uuid.UUID
	ShippingCost    int64
	VoucherCode     *string
	IsDeposit       bool
	PaymentMethod   string
	ReturnURL       string
	PlacedByKiosk   bool
}

// PlaceOrderResult is what the client needs to continue to payment
type PlaceOrderResult struct {
	Order      *entity.Order   `json:"order"`
	Payment    *entity.Payment `json:"payment"`
	Summary    pricing.Summary `json:"summary"`
	PaymentURL string          `json:"payment_url,omitempty"`
}

// PlaceOrder creates the order from the cart, reserves stock and the
// voucher, records the pending payment and asks the gateway for a charge.
// The order starts Pending and is flipped to Paid by the payment webhook;
// an order left unpaid past the payment window is cancelled by the expiry
// consumer.
func (s *CheckoutService) PlaceOrder(ctx context.Context, accountID uuid.UUID, input PlaceOrderInput) (*PlaceOrderResult, error) {
	if (input.ReceiverAddress == nil) == (input.KioskID == nil) {
		return nil, apperror.NewBadRequestError("Provide either a receiver address or a pickup kiosk, not both")
	}
	if input.PaymentMethod == "" {
		return nil, apperror.NewBadRequestError("Payment method is required")
	}

	if input.KioskID != nil {
		kiosk, err := s.kioskRepo.GetByID(ctx, *input.KioskID)
		if err != nil {
			return nil, err
		}
		if kiosk == nil || !kiosk.Status {
			return nil, apperror.NewNotFoundError("Kiosk")
		}
		// Pickup orders never ship
		input.ShippingCost = 0
	}

	lines, err := s.GetCart(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}

	var voucher *entity.Voucher
	if input.VoucherCode != nil {
		voucher, err = s.usableVoucher(ctx, *input.VoucherCode)
		if err != nil {
			return nil, err
		}
	}

	summary := s.price(lines, QuoteInput{
		ShippingCost: input.ShippingCost,
		IsDeposit:    input.IsDeposit,
	}, voucher)

	// Reserve frame stock. Each decrement is atomic, so a failure part way
	// through restocks only what this call took.
	reserved := make([]repository.CartItem, 0, len(lines))
	rollbackStock := func() {
		for _, item := range reserved {
			pg, err := s.productGlassRepo.GetByID(context.Background(), item.ProductGlassID)
			if err != nil || pg == nil {
				continue
			}
			if err := s.eyeGlassRepo.IncrementStock(context.Background(), pg.EyeGlassID, item.Quantity); err != nil {
				log.Printf("checkout: restock %s failed: %v", pg.EyeGlassID, err)
			}
		}
	}
	for _, line := range lines {
		if err := s.eyeGlassRepo.DecrementStock(ctx, line.ProductGlass.EyeGlassID, line.Item.Quantity); err != nil {
			rollbackStock()
			return nil, err
		}
		reserved = append(reserved, line.Item)
	}

	var voucherID *uuid.UUID
	if voucher != nil {
		if err := s.voucherRepo.DecrementQuantity(ctx, voucher.ID); err != nil {
			rollbackStock()
			return nil, err
		}
		voucherID = &voucher.ID
	}
	rollbackVoucher := func() {
		if voucher == nil {
			return
		}
		v, err := s.voucherRepo.GetByID(context.Background(), voucher.ID)
		if err != nil || v == nil {
			return
		}
		v.Quantity++
		if err := s.voucherRepo.Update(context.Background(), v); err != nil {
			log.Printf("checkout: voucher %s rollback failed: %v", voucher.ID, err)
		}
	}

	order := &entity.Order{
		Code:            utils.GenerateOrderCode(),
		AccountID:       accountID,
		ReceiverAddress: input.ReceiverAddress,
		KioskID:         input.KioskID,
		VoucherID:       voucherID,
		IsDeposit:       input.IsDeposit,
		Subtotal:        summary.Subtotal,
		ShippingCost:    summary.ShippingCost,
		Discount:        summary.Discount,
		Total:           summary.Total,
		Status:          enum.OrderStatusPending,
		PlacedByKiosk:   input.PlacedByKiosk,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		rollbackVoucher()
		rollbackStock()
		return nil, err
	}

	details := make([]entity.OrderDetail, 0, len(lines))
	for _, line := range lines {
		details = append(details, entity.OrderDetail{
			OrderID:        order.ID,
			ProductGlassID: line.ProductGlass.ID,
			Quantity:       line.Item.Quantity,
			Price:          line.ProductGlass.Total,
		})
	}
	if err := s.orderDetailRepo.CreateBatch(ctx, details); err != nil {
		rollbackVoucher()
		rollbackStock()
		return nil, err
	}

	payment := &entity.Payment{
		OrderID:   order.ID,
		Code:      utils.GeneratePaymentCode(),
		Amount:    summary.PayableNow,
		Method:    input.PaymentMethod,
		IsDeposit: input.IsDeposit,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		rollbackVoucher()
		rollbackStock()
		return nil, err
	}

	charge, err := s.gateway.Charge(ctx, repository.ChargeRequest{
		OrderCode:   order.Code,
		PaymentCode: payment.Code,
		Amount:      payment.Amount,
		Method:      payment.Method,
		ReturnURL:   input.ReturnURL,
	})
	if err != nil {
		rollbackVoucher()
		rollbackStock()
		if cancelErr := s.orderRepo.UpdateStatus(ctx, order.ID, enum.OrderStatusCancelled); cancelErr != nil {
			log.Printf("checkout: cancel order %s after charge failure: %v", order.Code, cancelErr)
		}
		return nil, err
	}

	if charge.TransactionID != "" {
		payment.TransactionID = &charge.TransactionID
		if err := s.paymentRepo.Update(ctx, payment); err != nil {
			log.Printf("checkout: save transaction id for payment %s: %v", payment.Code, err)
		}
	}

	if err := s.publisher.PublishOrderPlaced(ctx, repository.OrderPlacedEvent{
		OrderID:   order.ID,
		Code:      order.Code,
		AccountID: accountID,
		Total:     order.Total,
	}); err != nil {
		// Best effort: the expiry sweep is a safety net, not the happy path
		log.Printf("checkout: publish order placed %s: %v", order.Code, err)
	}

	if err := s.cartStore.Clear(ctx, accountID); err != nil {
		log.Printf("checkout: clear cart for %s: %v", accountID, err)
	}

	s.sendConfirmation(ctx, accountID, order, summary, input.KioskID)

	return &PlaceOrderResult{
		Order:      order,
		Payment:    payment,
		Summary:    summary,
		PaymentURL: charge.PaymentURL,
	}, nil
}

// ConfirmPayment is invoked by the provider webhook once money has moved.
// It is idempotent: replaying a confirmation for an already-paid payment is
// a no-op.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, paymentCode, transactionID string) error {
	payment, err := s.paymentRepo.GetByCode(ctx, paymentCode)
	if err != nil {
		return err
	}
	if payment == nil {
		return apperror.NewNotFoundError("Payment")
	}
	if payment.PaidAt != nil {
		return nil
	}

	now := time.Now().UTC()
	payment.PaidAt = &now
	if transactionID != "" {
		payment.TransactionID = &transactionID
	}
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return err
	}

	order, err := s.orderRepo.GetByID(ctx, payment.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusPending {
		return nil
	}
	return s.orderRepo.UpdateStatus(ctx, order.ID, enum.OrderStatusPaid)
}

// PayRemainder collects the outstanding balance on a deposit order
func (s *CheckoutService) PayRemainder(ctx context.Context, accountID, orderID uuid.UUID, method, returnURL string) (*PlaceOrderResult, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.AccountID != accountID {
		return nil, apperror.ErrForbidden
	}
	if !order.IsDeposit {
		return nil, apperror.NewBadRequestError("Order was paid in full")
	}
	if order.Status == enum.OrderStatusPending {
		return nil, apperror.NewConflictError("Pay the deposit before the remainder")
	}
	if order.Status.IsTerminal() {
		return nil, apperror.NewConflictError("Order is not awaiting the remainder")
	}

	payments, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	var paid int64
	for _, p := range payments {
		if p.PaidAt != nil {
			paid += p.Amount
		}
	}
	remainder := order.Total - paid
	if remainder <= 0 {
		return nil, apperror.NewConflictError("Order is already settled")
	}

	payment := &entity.Payment{
		OrderID: order.ID,
		Code:    utils.GeneratePaymentCode(),
		Amount:  remainder,
		Method:  method,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	charge, err := s.gateway.Charge(ctx, repository.ChargeRequest{
		OrderCode:   order.Code,
		PaymentCode: payment.Code,
		Amount:      remainder,
		Method:      method,
		ReturnURL:   returnURL,
	})
	if err != nil {
		return nil, err
	}
	if charge.TransactionID != "" {
		payment.TransactionID = &charge.TransactionID
		if err := s.paymentRepo.Update(ctx, payment); err != nil {
			log.Printf("checkout: save transaction id for payment %s: %v", payment.Code, err)
		}
	}

	return &PlaceOrderResult{
		Order:      order,
		Payment:    payment,
		PaymentURL: charge.PaymentURL,
	}, nil
}

func (s *CheckoutService) price(lines []CartLine, input QuoteInput, voucher *entity.Voucher) pricing.Summary {
	items := make([]pricing.Item, 0, len(lines))
	for _, line := range lines {
		items = append(items, pricing.Item{
			EyeGlassPrice: line.ProductGlass.EyeGlassPrice,
			LensPrice:     line.ProductGlass.LensPrice,
			Quantity:      line.Item.Quantity,
		})
	}

	var pv *pricing.Voucher
	if voucher != nil {
		pv = &pricing.Voucher{
			DiscountType:  voucher.DiscountType,
			DiscountValue: voucher.DiscountValue,
		}
	}

	return pricing.Compute(pricing.Input{
		Items:        items,
		ShippingCost: input.ShippingCost,
		Voucher:      pv,
		IsDeposit:    input.IsDeposit,
		DepositRate:  pricing.DefaultDepositRate,
	})
}

func (s *CheckoutService) usableVoucher(ctx context.Context, code string) (*entity.Voucher, error) {
	voucher, err := s.voucherRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, apperror.NewNotFoundError("Voucher")
	}
	if !voucher.IsUsable(time.Now()) {
		return nil, apperror.ErrVoucherUnusable
	}
	return voucher, nil
}

func (s *CheckoutService) sendConfirmation(ctx context.Context, accountID uuid.UUID, order *entity.Order, summary pricing.Summary, kioskID *uuid.UUID) {
	if s.emailService == nil {
		return
	}
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil || account == nil || account.Email == "" {
		return
	}

	pickup := ""
	if kioskID != nil {
		if kiosk, err := s.kioskRepo.GetByID(ctx, *kioskID); err == nil && kiosk != nil {
			pickup = kiosk.Name
		}
	}

	data := email.OrderConfirmationData{
		OrderCode:   order.Code,
		Total:       formatVND(summary.Total),
		PayableNow:  formatVND(summary.PayableNow),
		IsDeposit:   order.IsDeposit,
		PickupPlace: pickup,
		OrderURL:    fmt.Sprintf("%s/orders/%s", s.appURL, order.ID),
	}
	go func() {
		if err := s.emailService.SendOrderConfirmationEmail(account.Email, data); err != nil {
			log.Printf("checkout: confirmation email for %s: %v", order.Code, err)
		}
	}()
}

func formatVND(amount int64) string {
	return fmt.Sprintf("%d VND", amount)
}

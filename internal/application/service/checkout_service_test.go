package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	"github.com/nguyenduy/opticart-api/pkg/apperror"

	domainRepo "github.com/nguyenduy/opticart-api/internal/domain/repository"
)

type checkoutFixture struct {
	svc       *CheckoutService
	cart      *fakeCartStore
	products  *fakeProductGlassRepo
	frames    *fakeEyeGlassRepo
	vouchers  *fakeVoucherRepo
	kiosks    *fakeKioskRepo
	accounts  *fakeAccountRepo
	orders    *fakeOrderRepo
	details   *fakeOrderDetailRepo
	payments  *fakePaymentRepo
	gateway   *fakeGateway
	publisher *fakePublisher

	accountID uuid.UUID
	frame     *entity.EyeGlass
	product   *entity.ProductGlass
	voucher   *entity.Voucher
	kiosk     *entity.Kiosk
}

func newCheckoutFixture() *checkoutFixture {
	accountID := uuid.New()
	frame := &entity.EyeGlass{ID: uuid.New(), Name: "Aviator", Price: 300000, Quantity: 10, Status: true}
	product := &entity.ProductGlass{
		ID:            uuid.New(),
		AccountID:     accountID,
		EyeGlassID:    frame.ID,
		EyeGlassPrice: 300000,
		LensPrice:     200000,
		Total:         500000,
	}
	now := time.Now()
	voucher := &entity.Voucher{
		ID:            uuid.New(),
		Name:          "Autumn sale",
		Code:          "SALE10",
		DiscountType:  enum.DiscountTypePercentage,
		DiscountValue: 10,
		Quantity:      5,
		StartDate:     now.AddDate(0, 0, -1),
		EndDate:       now.AddDate(0, 0, 7),
		Status:        true,
	}
	kiosk := &entity.Kiosk{ID: uuid.New(), Name: "District 1", Address: "1 Le Loi", Status: true}

	fx := &checkoutFixture{
		cart:      newFakeCartStore(),
		products:  newFakeProductGlassRepo(product),
		frames:    newFakeEyeGlassRepo(frame),
		vouchers:  newFakeVoucherRepo(voucher),
		kiosks:    newFakeKioskRepo(kiosk),
		accounts:  newFakeAccountRepo(),
		orders:    newFakeOrderRepo(),
		details:   &fakeOrderDetailRepo{},
		payments:  newFakePaymentRepo(),
		gateway:   &fakeGateway{},
		publisher: &fakePublisher{},
		accountID: accountID,
		frame:     frame,
		product:   product,
		voucher:   voucher,
		kiosk:     kiosk,
	}
	fx.svc = NewCheckoutService(
		fx.cart, fx.products, fx.frames, fx.vouchers, fx.kiosks, fx.accounts,
		fx.orders, fx.details, fx.payments, fx.gateway, fx.publisher, nil, "",
	)
	return fx
}

func (fx *checkoutFixture) fillCart(t *testing.T) {
	t.Helper()
	err := fx.cart.Add(context.Background(), fx.accountID, domainRepo.CartItem{
		ProductGlassID: fx.product.ID,
		Quantity:       1,
		AddedAt:        time.Now().UTC(),
	})
	require.NoError(t, err)
}

func strPtr(s string) *string { return &s }

func TestGetCartEvictsDeletedProducts(t *testing.T) {
	fx := newCheckoutFixture()
	fx.fillCart(t)
	ctx := context.Background()

	ghost := uuid.New()
	require.NoError(t, fx.cart.Add(ctx, fx.accountID, domainRepo.CartItem{ProductGlassID: ghost, Quantity: 1}))

	lines, err := fx.svc.GetCart(ctx, fx.accountID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, fx.product.ID, lines[0].ProductGlass.ID)

	items, err := fx.cart.Get(ctx, fx.accountID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestQuoteEmptyCart(t *testing.T) {
	fx := newCheckoutFixture()

	_, err := fx.svc.Quote(context.Background(), fx.accountID, QuoteInput{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestQuoteWithVoucher(t *testing.T) {
	fx := newCheckoutFixture()
	fx.fillCart(t)

	summary, err := fx.svc.Quote(context.Background(), fx.accountID, QuoteInput{
		ShippingCost: 30000,
		VoucherCode:  strPtr("SALE10"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(500000), summary.Subtotal)
	assert.Equal(t, int64(30000), summary.ShippingCost)
	assert.Equal(t, int64(53000), summary.Discount)
	assert.Equal(t, int64(477000), summary.Total)
	assert.Equal(t, int64(477000), summary.PayableNow)

	// Quoting reserves nothing.
	assert.Equal(t, 5, fx.voucher.Quantity)
	assert.Equal(t, 10, fx.frame.Quantity)
}

func TestQuoteDeposit(t *testing.T) {
	fx := newCheckoutFixture()
	fx.fillCart(t)

	summary, err := fx.svc.Quote(context.Background(), fx.accountID, QuoteInput{
		ShippingCost: 30000,
		VoucherCode:  strPtr("SALE10"),
		IsDeposit:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(477000), summary.Total)
	assert.Equal(t, int64(143100), summary.PayableNow)
}

func TestQuoteUnknownVoucher(t *testing.T) {
	fx := newCheckoutFixture()
	fx.fillCart(t)

	_, err := fx.svc.Quote(context.Background(), fx.accountID, QuoteInput{VoucherCode: strPtr("NOPE")})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestQuoteExpiredVoucher(t *testing.T) {
	fx := newCheckoutFixture()
	fx.fillCart(t)
	fx.voucher.EndDate = time.Now().AddDate(0, 0, -1)

	_, err := fx.svc.Quote(context.Background(), fx.accountID, QuoteInput{VoucherCode: strPtr("SALE10")})
	assert.ErrorIs(t, err, apperror.ErrVoucherUnusable)
}

func TestPlaceOrderRequiresExactlyOneDestination(t *testing.T) {
	fx := newCheckoutFixture()
	fx.fillCart(t)
	ctx := context.Background()

	_, err := fx.svc.PlaceOrder(ctx, fx.accountID, PlaceOrderInput{PaymentMethod: "card"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)

	_, err = fx.svc.PlaceOrder(ctx, fx.accountID, PlaceOrderInput{
		ReceiverAddress: strPtr("1 Le Loi"),
		KioskID:         &fx.kiosk.ID,
		PaymentMethod:   "card",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestPlaceOrderRequiresPaymentMethod(t *testing.T) {
	fx := newCheckoutFixture()
	fx.fillCart(t)

	_, err := fx.svc.PlaceOrder(context.Background(), fx.accountID, PlaceOrderInput{
		ReceiverAddress: strPtr("1 Le Loi"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestPlaceOrderShipping(t *testing.T) {
	fx := newCheckoutFixture()
	fx.fillCart(t)
	ctx := context.Background()

	result, err := fx.svc.PlaceOrder(ctx, fx.accountID, PlaceOrderInput{
		ReceiverAddress: strPtr("12 Nguyen Hue"),
		ShippingCost:    30000,
		VoucherCode:     strPtr("SALE10"),
		PaymentMethod:   "card",
		ReturnURL:       "https://shop.example/return",
	})
	require.NoError(t, err)

	order := result.Order
	assert.Equal(t, enum.OrderStatusPending, order.Status)
	assert.Equal(t, int64(500000), order.Subtotal)
	assert.Equal(t, int64(53000), order.Discount)
	assert.Equal(t, int64(477000), order.Total)
	require.NotNil(t, order.VoucherID)
	assert.Equal(t, fx.voucher.ID, *order.VoucherID)
	assert.NotEmpty(t, order.Code)

	// Stock and voucher uses were consumed.
	assert.Equal(t, 9, fx.frame.Quantity)
	assert.Equal(t, 4, fx.voucher.Quantity)

	require.NotNil(t, result.Payment)
	assert.Equal(t, int64(477000), result.Payment.Amount)
	assert.Equal(t, "card", result.Payment.Method)
	require.NotNil(t, result.Payment.TransactionID)
	assert.NotEmpty(t, result.PaymentURL)

	require.Len(t, fx.gateway.charges, 1)
	assert.Equal(t, order.Code, fx.gateway.charges[0].OrderCode)
	assert.Equal(t, int64(477000), fx.gateway.charges[0].Amount)
	assert.Equal(t, "https://shop.example/return", fx.gateway.charges[0].ReturnURL)

	require.Len(t, fx.publisher.events, 1)
	assert.Equal(t, order.ID, fx.publisher.events[0].OrderID)

	details, err := fx.details.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, fx.product.ID, details[0].ProductGlassID)
	assert.Equal(t, int64(500000), details[0].Price)

	items, err := fx.cart.Get(ctx, fx.accountID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPlaceOrderKioskPickupZeroesShipping(t *testing.T) {
	fx := newCheckoutFixture()
	fx.fillCart(t)

	result, err := fx.svc.PlaceOrder(context.Background(), fx.accountID, PlaceOrderInput{
		KioskID:       &fx.kiosk.ID,
		ShippingCost:  30000,
		PaymentMethod: "cash",
		PlacedByKiosk: true,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.Summary.ShippingCost)
	assert.Equal(t, result.Summary.Subtotal, result.Summary.PayableNow)
	assert.True(t, result.Order.PlacedByKiosk)
}

func TestPlaceOrderInactiveKiosk(t *testing.T) {
	fx := newCheckoutFixture()
	fx.fillCart(t)
	fx.kiosk.Status = false

	_, err := fx.svc.PlaceOrder(context.Background(), fx.accountID, PlaceOrderInput{
		KioskID:       &fx.kiosk.ID,
		PaymentMethod: "cash",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestPlaceOrderDeposit(t *testing.T) {
	fx := newCheckoutFixture()
	fx.fillCart(t)

	result, err := fx.svc.PlaceOrder(context.Background(), fx.accountID, PlaceOrderInput{
		ReceiverAddress: strPtr("12 Nguyen Hue"),
		ShippingCost:    30000,
		VoucherCode:     strPtr("SALE10"),
		IsDeposit:       true,
		PaymentMethod:   "momo",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(477000), result.Order.Total)
	assert.True(t, result.Order.IsDeposit)
	assert.Equal(t, int64(143100), result.Payment.Amount)
	assert.True(t, result.Payment.IsDeposit)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	fx := newCheckoutFixture()
	fx.fillCart(t)
	fx.frame.Quantity = 0

	_, err := fx.svc.PlaceOrder(context.Background(), fx.accountID, PlaceOrderInput{
		ReceiverAddress: strPtr("12 Nguyen Hue"),
		PaymentMethod:   "card",
	})
	assert.ErrorIs(t, err, apperror.ErrOutOfStock)
	assert.Empty(t, fx.orders.orders)
	assert.Equal(t, 0, fx.frame.Quantity)
}

func TestPlaceOrderChargeFailureRollsBack(t *testing.T) {
	fx := newCheckoutFixture()
	fx.fillCart(t)
	fx.gateway.chargeFn = func(ctx context.Context, req domainRepo.ChargeRequest) (*domainRepo.ChargeResult, error) {
		return nil, apperror.ErrPaymentFailed
	}

	_, err := fx.svc.PlaceOrder(context.Background(), fx.accountID, PlaceOrderInput{
		ReceiverAddress: strPtr("12 Nguyen Hue"),
		VoucherCode:     strPtr("SALE10"),
		PaymentMethod:   "card",
	})
	assert.ErrorIs(t, err, apperror.ErrPaymentFailed)

	// Everything reserved was handed back and the order cancelled.
	assert.Equal(t, 10, fx.frame.Quantity)
	assert.Equal(t, 5, fx.voucher.Quantity)
	require.Len(t, fx.orders.orders, 1)
	for _, o := range fx.orders.orders {
		assert.Equal(t, enum.OrderStatusCancelled, o.Status)
	}
	assert.Empty(t, fx.publisher.events)
}

func TestConfirmPayment(t *testing.T) {
	fx := newCheckoutFixture()
	ctx := context.Background()

	order := &entity.Order{ID: uuid.New(), Code: "ORD-1", AccountID: fx.accountID, Status: enum.OrderStatusPending}
	fx.orders.orders[order.ID] = order
	payment := &entity.Payment{ID: uuid.New(), OrderID: order.ID, Code: "PAY-1", Amount: 477000}
	fx.payments.payments[payment.ID] = payment

	require.NoError(t, fx.svc.ConfirmPayment(ctx, "PAY-1", "txn-123"))

	assert.NotNil(t, payment.PaidAt)
	require.NotNil(t, payment.TransactionID)
	assert.Equal(t, "txn-123", *payment.TransactionID)
	assert.Equal(t, enum.OrderStatusPaid, order.Status)
}

func TestConfirmPaymentReplayIsNoop(t *testing.T) {
	fx := newCheckoutFixture()
	ctx := context.Background()

	paidAt := time.Now().Add(-time.Hour).UTC()
	order := &entity.Order{ID: uuid.New(), Code: "ORD-1", Status: enum.OrderStatusPaid}
	fx.orders.orders[order.ID] = order
	payment := &entity.Payment{ID: uuid.New(), OrderID: order.ID, Code: "PAY-1", PaidAt: &paidAt}
	fx.payments.payments[payment.ID] = payment

	require.NoError(t, fx.svc.ConfirmPayment(ctx, "PAY-1", "txn-replay"))

	assert.Equal(t, paidAt, *payment.PaidAt)
	assert.Nil(t, payment.TransactionID)
	assert.Equal(t, enum.OrderStatusPaid, order.Status)
}

func TestConfirmPaymentUnknownCode(t *testing.T) {
	fx := newCheckoutFixture()

	err := fx.svc.ConfirmPayment(context.Background(), "PAY-NOPE", "txn")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestPayRemainder(t *testing.T) {
	fx := newCheckoutFixture()
	ctx := context.Background()

	order := &entity.Order{
		ID: uuid.New(), Code: "ORD-1", AccountID: fx.accountID,
		IsDeposit: true, Total: 477000, Status: enum.OrderStatusPaid,
	}
	fx.orders.orders[order.ID] = order
	paidAt := time.Now().UTC()
	deposit := &entity.Payment{
		ID: uuid.New(), OrderID: order.ID, Code: "PAY-1",
		Amount: 143100, IsDeposit: true, PaidAt: &paidAt,
	}
	fx.payments.payments[deposit.ID] = deposit

	result, err := fx.svc.PayRemainder(ctx, fx.accountID, order.ID, "card", "https://shop.example/return")
	require.NoError(t, err)

	assert.Equal(t, int64(333900), result.Payment.Amount)
	assert.False(t, result.Payment.IsDeposit)
	assert.NotEmpty(t, result.PaymentURL)
	require.Len(t, fx.gateway.charges, 1)
	assert.Equal(t, int64(333900), fx.gateway.charges[0].Amount)
}

func TestPayRemainderGuards(t *testing.T) {
	fx := newCheckoutFixture()
	ctx := context.Background()

	order := &entity.Order{
		ID: uuid.New(), Code: "ORD-1", AccountID: fx.accountID,
		IsDeposit: true, Total: 477000, Status: enum.OrderStatusPaid,
	}
	fx.orders.orders[order.ID] = order

	_, err := fx.svc.PayRemainder(ctx, uuid.New(), order.ID, "card", "")
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	order.IsDeposit = false
	_, err = fx.svc.PayRemainder(ctx, fx.accountID, order.ID, "card", "")
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	order.IsDeposit = true

	order.Status = enum.OrderStatusPending
	_, err = fx.svc.PayRemainder(ctx, fx.accountID, order.ID, "card", "")
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)

	order.Status = enum.OrderStatusCancelled
	_, err = fx.svc.PayRemainder(ctx, fx.accountID, order.ID, "card", "")
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}

func TestPayRemainderAlreadySettled(t *testing.T) {
	fx := newCheckoutFixture()
	ctx := context.Background()

	order := &entity.Order{
		ID: uuid.New(), Code: "ORD-1", AccountID: fx.accountID,
		IsDeposit: true, Total: 477000, Status: enum.OrderStatusPaid,
	}
	fx.orders.orders[order.ID] = order
	paidAt := time.Now().UTC()
	full := &entity.Payment{ID: uuid.New(), OrderID: order.ID, Code: "PAY-1", Amount: 477000, PaidAt: &paidAt}
	fx.payments.payments[full.ID] = full

	_, err := fx.svc.PayRemainder(ctx, fx.accountID, order.ID, "card", "")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}

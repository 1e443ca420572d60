package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/nguyenduy/opticart-api/internal/domain/enum"
)

// Item is a single configured product entering total computation.
// Prices are in VND.
type Item struct {
	EyeGlassPrice int64
	LensPrice     int64
	Quantity      int
}

// Voucher is the discount slice of a voucher needed for pricing
type Voucher struct {
	DiscountType  enum.DiscountType
	DiscountValue int64
}

// Input collects everything the total computation depends on
type Input struct {
	Items        []Item
	ShippingCost int64
	Voucher      *Voucher
	IsDeposit    bool
	DepositRate  decimal.Decimal
}

// Summary is the computed breakdown of an order's price
type Summary struct {
	Subtotal     int64 `json:"subtotal"`
	ShippingCost int64 `json:"shipping_cost"`
	Discount     int64 `json:"discount"`
	Total        int64 `json:"total"`
	PayableNow   int64 `json:"payable_now"`
}

// DefaultDepositRate is the fraction of the total charged up front when the
// customer chooses to pay a deposit
var DefaultDepositRate = decimal.NewFromFloat(0.3)

// Compute calculates order totals. The voucher discount applies to the goods
// plus shipping and is clamped so it can never exceed that base: a malformed
// voucher above 100% yields a zero total, never a negative one. When
// IsDeposit is set, PayableNow is the deposit fraction of the total, rounded
// half-up to a whole VND.
func Compute(in Input) Summary {
	var subtotal int64
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			continue
		}
		subtotal += (it.EyeGlassPrice + it.LensPrice) * int64(it.Quantity)
	}

	base := subtotal + in.ShippingCost

	var discount int64
	if in.Voucher != nil && in.Voucher.DiscountType == enum.DiscountTypePercentage {
		d := decimal.NewFromInt(base).
			Mul(decimal.NewFromInt(in.Voucher.DiscountValue)).
			Div(decimal.NewFromInt(100)).
			Round(0)
		discount = d.IntPart()
		if discount > base {
			discount = base
		}
		if discount < 0 {
			discount = 0
		}
	}

	total := base - discount
	if total < 0 {
		total = 0
	}

	payable := total
	if in.IsDeposit {
		rate := in.DepositRate
		if rate.IsZero() {
			rate = DefaultDepositRate
		}
		payable = decimal.NewFromInt(total).Mul(rate).Round(0).IntPart()
	}

	return Summary{
		Subtotal:     subtotal,
		ShippingCost: in.ShippingCost,
		Discount:     discount,
		Total:        total,
		PayableNow:   payable,
	}
}

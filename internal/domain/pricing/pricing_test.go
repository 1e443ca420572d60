package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nguyenduy/opticart-api/internal/domain/enum"
)

func TestComputeWithPercentageVoucher(t *testing.T) {
	sum := Compute(Input{
		Items: []Item{
			{EyeGlassPrice: 300000, LensPrice: 200000, Quantity: 1},
		},
		ShippingCost: 30000,
		Voucher:      &Voucher{DiscountType: enum.DiscountTypePercentage, DiscountValue: 10},
	})

	assert.Equal(t, int64(500000), sum.Subtotal)
	assert.Equal(t, int64(30000), sum.ShippingCost)
	assert.Equal(t, int64(53000), sum.Discount)
	assert.Equal(t, int64(477000), sum.Total)
	assert.Equal(t, int64(477000), sum.PayableNow)
}

func TestComputeDeposit(t *testing.T) {
	sum := Compute(Input{
		Items: []Item{
			{EyeGlassPrice: 300000, LensPrice: 200000, Quantity: 1},
		},
		ShippingCost: 30000,
		Voucher:      &Voucher{DiscountType: enum.DiscountTypePercentage, DiscountValue: 10},
		IsDeposit:    true,
	})

	assert.Equal(t, int64(477000), sum.Total)
	assert.Equal(t, int64(143100), sum.PayableNow)
}

func TestComputeDepositCustomRate(t *testing.T) {
	sum := Compute(Input{
		Items:       []Item{{EyeGlassPrice: 100000, Quantity: 1}},
		IsDeposit:   true,
		DepositRate: decimal.NewFromFloat(0.5),
	})

	assert.Equal(t, int64(50000), sum.PayableNow)
}

func TestComputeKioskPickup(t *testing.T) {
	sum := Compute(Input{
		Items: []Item{
			{EyeGlassPrice: 250000, LensPrice: 150000, Quantity: 2},
		},
		ShippingCost: 0,
	})

	assert.Equal(t, int64(800000), sum.Subtotal)
	assert.Equal(t, int64(0), sum.Discount)
	assert.Equal(t, sum.Subtotal, sum.Total)
	assert.Equal(t, sum.Subtotal, sum.PayableNow)
}

func TestComputeDiscountClamped(t *testing.T) {
	sum := Compute(Input{
		Items:        []Item{{EyeGlassPrice: 80000, LensPrice: 20000, Quantity: 1}},
		ShippingCost: 30000,
		Voucher:      &Voucher{DiscountType: enum.DiscountTypePercentage, DiscountValue: 150},
	})

	assert.Equal(t, int64(130000), sum.Discount)
	assert.Equal(t, int64(0), sum.Total)
	assert.Equal(t, int64(0), sum.PayableNow)
}

func TestComputeNegativeDiscountValue(t *testing.T) {
	sum := Compute(Input{
		Items:   []Item{{EyeGlassPrice: 100000, Quantity: 1}},
		Voucher: &Voucher{DiscountType: enum.DiscountTypePercentage, DiscountValue: -20},
	})

	assert.Equal(t, int64(0), sum.Discount)
	assert.Equal(t, int64(100000), sum.Total)
}

func TestComputeSkipsNonPositiveQuantities(t *testing.T) {
	sum := Compute(Input{
		Items: []Item{
			{EyeGlassPrice: 100000, LensPrice: 50000, Quantity: 1},
			{EyeGlassPrice: 999999, LensPrice: 999999, Quantity: 0},
			{EyeGlassPrice: 999999, LensPrice: 999999, Quantity: -3},
		},
	})

	assert.Equal(t, int64(150000), sum.Subtotal)
}

func TestComputeEmptyCart(t *testing.T) {
	sum := Compute(Input{})

	assert.Equal(t, int64(0), sum.Subtotal)
	assert.Equal(t, int64(0), sum.Total)
	assert.Equal(t, int64(0), sum.PayableNow)
}

func TestComputeDiscountRounding(t *testing.T) {
	// 10% of 105 = 10.5, rounded half-up to 11.
	sum := Compute(Input{
		Items:   []Item{{EyeGlassPrice: 105, Quantity: 1}},
		Voucher: &Voucher{DiscountType: enum.DiscountTypePercentage, DiscountValue: 10},
	})

	assert.Equal(t, int64(11), sum.Discount)
	assert.Equal(t, int64(94), sum.Total)
}

package enum

// DiscountType describes how a voucher's discount value is interpreted.
// Only percentage vouchers are issued today; the type exists so fixed-amount
// vouchers can be added without a schema change.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
)

// IsValid reports whether the discount type is supported
func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercentage
}

func (t DiscountType) String() string {
	return string(t)
}

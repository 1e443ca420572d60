package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nguyenduy/opticart-api/internal/domain/enum"
)

// Order is a placed purchase. Exactly one of ReceiverAddress or KioskID is
// set: shipped orders carry an address, pickup orders carry a kiosk.
// All amounts are in VND.
type Order struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Code            string           `gorm:"size:50;unique;not null" json:"code"`
	AccountID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"account_id"`
	ReceiverAddress *string          `gorm:"size:500" json:"receiver_address,omitempty"`
	KioskID         *uuid.UUID       `gorm:"type:uuid;index" json:"kiosk_id,omitempty"`
	VoucherID       *uuid.UUID       `gorm:"type:uuid;index" json:"voucher_id,omitempty"`
	IsDeposit       bool             `gorm:"default:false" json:"is_deposit"`
	Subtotal        int64            `gorm:"default:0" json:"subtotal"`
	ShippingCost    int64            `gorm:"default:0" json:"shipping_cost"`
	Discount        int64            `gorm:"default:0" json:"discount"`
	Total           int64            `gorm:"default:0" json:"total"`
	Status          enum.OrderStatus `gorm:"default:0" json:"status"`
	PlacedByKiosk   bool             `gorm:"default:false" json:"placed_by_kiosk"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Account  *Account      `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Kiosk    *Kiosk        `gorm:"foreignKey:KioskID" json:"kiosk,omitempty"`
	Voucher  *Voucher      `gorm:"foreignKey:VoucherID" json:"voucher,omitempty"`
	Details  []OrderDetail `gorm:"foreignKey:OrderID" json:"details,omitempty"`
	Payments []Payment     `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderDetail is one configured product line on an order.
type OrderDetail struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductGlassID uuid.UUID `gorm:"type:uuid;not null" json:"product_glass_id"`
	Quantity       int       `gorm:"default:1" json:"quantity"`
	Price          int64     `gorm:"default:0" json:"price"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships
	ProductGlass *ProductGlass `gorm:"foreignKey:ProductGlassID" json:"product_glass,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order detail
func (d *OrderDetail) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderDetail model
func (OrderDetail) TableName() string {
	return "order_details"
}

// Payment records money collected against an order. A deposit order gets a
// first payment at 30% of the total and a second when the remainder is paid.
type Payment struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	OrderID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"order_id"`
	Code          string     `gorm:"size:50;unique;not null" json:"code"`
	Amount        int64      `gorm:"not null" json:"amount"`
	Method        string     `gorm:"size:50;not null" json:"method"`
	IsDeposit     bool       `gorm:"default:false" json:"is_deposit"`
	TransactionID *string    `gorm:"size:255" json:"transaction_id,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

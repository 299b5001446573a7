package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a frozen copy of a cart line: the unit price is the
// post-discount snapshot taken when the order was created, never a live
// reference into the catalog.
type OrderItem struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Color       string          `json:"color,omitempty"`
	Size        string          `json:"size,omitempty"`
	Material    string          `json:"material,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Status      OrderStatus     `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Items       []OrderItem     `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Remaining is TotalAmount − PaidAmount. The repositories refuse writes that
// would push PaidAmount past TotalAmount, so this never goes negative.
func (o *Order) Remaining() decimal.Decimal {
	return o.TotalAmount.Sub(o.PaidAmount)
}

// CreateOrderRequest carries no prices or line items: the order is built from
// the caller's server-side cart. ExpectedTotal is the display total the client
// saw at checkout; it is advisory and only used to detect drift.
type CreateOrderRequest struct {
	ExpectedTotal *float64 `json:"expected_total,omitempty" validate:"omitempty,gt=0"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELLED"`
}

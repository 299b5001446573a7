package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is immutable after creation. One per order, enforced by a unique
// index on order_id.
type Invoice struct {
	ID            uuid.UUID `json:"id"`
	OrderID       uuid.UUID `json:"order_id"`
	InvoiceNumber string    `json:"invoice_number"`
	DueDate       time.Time `json:"due_date"`
	CreatedAt     time.Time `json:"created_at"`
}

type CreateInvoiceRequest struct {
	OrderID uuid.UUID  `json:"order_id" validate:"required"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

type InvoiceLine struct {
	ProductName string          `json:"product_name"`
	Color       string          `json:"color,omitempty"`
	Size        string          `json:"size,omitempty"`
	Material    string          `json:"material,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type BillTo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// InvoiceView is the billing projection of an order: everything the
// presentation layer needs to render or print an invoice, no persistence
// references.
type InvoiceView struct {
	InvoiceNumber string          `json:"invoice_number"`
	CreatedAt     time.Time       `json:"created_at"`
	DueDate       time.Time       `json:"due_date"`
	BillTo        BillTo          `json:"bill_to"`
	Items         []InvoiceLine   `json:"items"`
	Total         decimal.Decimal `json:"total"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Remaining     decimal.Decimal `json:"remaining"`
}

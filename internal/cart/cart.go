// Package cart implements the session-scoped cart aggregator. A State is
// owned by exactly one browsing session and mutated by exactly one writer, so
// it carries no locking; persistence across requests is the caller's concern.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/takeariz/storefront/internal/errors"
	"github.com/takeariz/storefront/internal/models"
	"github.com/takeariz/storefront/internal/pricing"
)

// Customization is the (color, size, material) tuple that distinguishes
// otherwise-identical product selections. Empty fields mean "no preference".
type Customization struct {
	Color    string `json:"color,omitempty"`
	Size     string `json:"size,omitempty"`
	Material string `json:"material,omitempty"`
}

// Line is one priced, quantity-bearing entry in the cart. UnitPrice is the
// post-discount snapshot taken when the line was first added.
type Line struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Customization
}

func (l *Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// State holds the cart lines in insertion order plus the customer-info draft
// collected at checkout.
type State struct {
	Lines    []Line               `json:"lines"`
	Customer *models.CustomerInfo `json:"customer,omitempty"`
}

func New() *State {
	return &State{}
}

func (s *State) IsEmpty() bool {
	return len(s.Lines) == 0
}

// Add appends a line for the product, snapshotting the current effective unit
// price. If a line with the same (product, customization) identity already
// exists, its quantity is incremented instead and the original price snapshot
// is kept.
func (s *State) Add(product *models.Product, quantity int, custom Customization) (*Line, error) {
	if quantity <= 0 {
		return nil, errors.ValidationError("Quantity must be a positive integer")
	}

	if err := validateCustomization(product, custom); err != nil {
		return nil, err
	}

	for i := range s.Lines {
		line := &s.Lines[i]
		if line.ProductID == product.ID && line.Customization == custom {
			line.Quantity += quantity
			return line, nil
		}
	}

	line := Line{
		ID:            uuid.New(),
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      quantity,
		UnitPrice:     pricing.EffectiveUnitPrice(product.Price, product.Discount),
		Customization: custom,
	}

	s.Lines = append(s.Lines, line)

	return &s.Lines[len(s.Lines)-1], nil
}

// UpdateQuantity replaces the line's quantity. Non-positive values are
// rejected; removal is its own operation.
func (s *State) UpdateQuantity(lineID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return errors.ValidationError("Quantity must be a positive integer")
	}

	for i := range s.Lines {
		if s.Lines[i].ID == lineID {
			s.Lines[i].Quantity = quantity
			return nil
		}
	}

	return errors.NotFoundError("Cart line not found")
}

func (s *State) Remove(lineID uuid.UUID) error {
	for i := range s.Lines {
		if s.Lines[i].ID == lineID {
			s.Lines = append(s.Lines[:i], s.Lines[i+1:]...)
			return nil
		}
	}

	return errors.NotFoundError("Cart line not found")
}

// Clear empties the cart and discards the held customer-info draft.
func (s *State) Clear() {
	s.Lines = nil
	s.Customer = nil
}

// Total is derived from the current lines on every read, never cached.
func (s *State) Total() decimal.Decimal {
	total := decimal.Zero

	for i := range s.Lines {
		total = total.Add(s.Lines[i].Subtotal())
	}

	return total
}

// validateCustomization checks each chosen option against the product's
// declared option lists. Empty choices are always allowed.
func validateCustomization(product *models.Product, custom Customization) error {
	if !optionAllowed(custom.Color, product.Colors) {
		return errors.AddValidationError("color", "not an available option for this product")
	}

	if !optionAllowed(custom.Size, product.Sizes) {
		return errors.AddValidationError("size", "not an available option for this product")
	}

	if !optionAllowed(custom.Material, product.Materials) {
		return errors.AddValidationError("material", "not an available option for this product")
	}

	return nil
}

func optionAllowed(chosen string, available []string) bool {
	if chosen == "" {
		return true
	}

	for _, option := range available {
		if option == chosen {
			return true
		}
	}

	return false
}

package models

// CustomerInfo is the checkout contact draft held alongside the cart; it is
// discarded when the cart is cleared.
type CustomerInfo struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
	Material  string `json:"material,omitempty"`
}

type UpdateCartQuantityRequest struct {
	LineID   string `json:"line_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type RemoveCartItemRequest struct {
	LineID string `json:"line_id" validate:"required,uuid"`
}

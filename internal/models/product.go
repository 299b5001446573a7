package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is the catalog entry. Price is a whole-rupiah amount; Discount is a
// percentage in [0,100], zero meaning no discount. Colors, sizes and materials
// are the customization options a cart line may pick from.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Discount    decimal.Decimal `json:"discount"`
	ImageURL    string          `json:"image_url"`
	Colors      pq.StringArray  `json:"colors"`
	Sizes       pq.StringArray  `json:"sizes"`
	Materials   pq.StringArray  `json:"materials"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Description string   `json:"description" validate:"required,min=10"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Discount    *float64 `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
	Materials   []string `json:"materials"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=10"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Discount    *float64 `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	ImageURL    *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	Colors      []string `json:"colors,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Materials   []string `json:"materials,omitempty"`
}

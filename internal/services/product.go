package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
	"github.com/takeariz/storefront/internal/errors"
	"github.com/takeariz/storefront/internal/models"
	"github.com/takeariz/storefront/internal/pricing"
	repository "github.com/takeariz/storefront/internal/repositories"
)

type ProductService interface {
	CreateProduct(ctx context.Context, claims *models.Claims, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, claims *models.Claims, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, claims *models.Claims, id uuid.UUID) error
	ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error)
}

type productService struct {
	repo      repository.ProductRepository
	sanitizer *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *productService) CreateProduct(ctx context.Context, claims *models.Claims, req *models.CreateProductRequest) (*models.Product, error) {

	if err := requireAdmin(claims); err != nil {
		return nil, err
	}

	discount := decimal.Zero
	if req.Discount != nil {
		discount = decimal.NewFromFloat(*req.Discount)
	}

	// Out-of-range discounts are rejected here, at write time, so the read
	// path never computes defensively.
	if err := pricing.ValidateDiscount(discount); err != nil {
		return nil, err
	}

	price := decimal.NewFromFloat(req.Price)
	if !price.IsPositive() {
		return nil, errors.ValidationError("Price must be positive")
	}

	product := &models.Product{
		ID:          uuid.New(),
		Name:        s.sanitizer.Sanitize(req.Name),
		Description: s.sanitizer.Sanitize(req.Description),
		Price:       price,
		Stock:       req.Stock,
		Discount:    discount,
		ImageURL:    req.ImageURL,
		Colors:      req.Colors,
		Sizes:       req.Sizes,
		Materials:   req.Materials,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, claims *models.Claims, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	if err := requireAdmin(claims); err != nil {
		return nil, err
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if req.Name != nil {
		product.Name = s.sanitizer.Sanitize(*req.Name)
	}

	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}

	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		if !price.IsPositive() {
			return nil, errors.ValidationError("Price must be positive")
		}

		product.Price = price
	}

	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if req.Discount != nil {
		discount := decimal.NewFromFloat(*req.Discount)
		if err := pricing.ValidateDiscount(discount); err != nil {
			return nil, err
		}

		product.Discount = discount
	}

	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	if req.Colors != nil {
		product.Colors = req.Colors
	}

	if req.Sizes != nil {
		product.Sizes = req.Sizes
	}

	if req.Materials != nil {
		product.Materials = req.Materials
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, claims *models.Claims, id uuid.UUID) error {

	if err := requireAdmin(claims); err != nil {
		return err
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		// order_items reference products; a product that has been ordered
		// stays in the catalog.
		if repository.IsForeignKeyViolation(err) {
			return errors.DuplicateEntryError("Product is referenced by existing orders")
		}

		return errors.NotFoundError("Product not found").WithError(err)
	}

	return nil
}

// page means "page number requested"
// pageSize means "number of products to be displayed per page"
func (s *productService) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error) {

	products, total, err := s.repo.ListProducts(ctx, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

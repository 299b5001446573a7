package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/takeariz/storefront/internal/cart"
	"github.com/takeariz/storefront/internal/errors"
	"github.com/takeariz/storefront/internal/models"
	repository "github.com/takeariz/storefront/internal/repositories"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*cart.State, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*cart.State, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateCartQuantityRequest) (*cart.State, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, lineID uuid.UUID) (*cart.State, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
	SetCustomerInfo(ctx context.Context, userID uuid.UUID, info *models.CustomerInfo) (*cart.State, error)
}

type cartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) CartService {
	return &cartService{
		carts:    carts,
		products: products,
	}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*cart.State, error) {
	state, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, errors.InternalError("Failed to load cart").WithError(err)
	}

	return state, nil
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*cart.State, error) {

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, errors.BadRequestError("Invalid product ID")
	}

	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	state, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, errors.InternalError("Failed to load cart").WithError(err)
	}

	custom := cart.Customization{
		Color:    req.Color,
		Size:     req.Size,
		Material: req.Material,
	}

	if _, err := state.Add(product, req.Quantity, custom); err != nil {
		return nil, err
	}

	if err := s.carts.SaveCart(ctx, userID, state); err != nil {
		return nil, errors.InternalError("Failed to save cart").WithError(err)
	}

	return state, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateCartQuantityRequest) (*cart.State, error) {

	lineID, err := uuid.Parse(req.LineID)
	if err != nil {
		return nil, errors.BadRequestError("Invalid line ID")
	}

	state, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, errors.InternalError("Failed to load cart").WithError(err)
	}

	if err := state.UpdateQuantity(lineID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.carts.SaveCart(ctx, userID, state); err != nil {
		return nil, errors.InternalError("Failed to save cart").WithError(err)
	}

	return state, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, lineID uuid.UUID) (*cart.State, error) {

	state, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, errors.InternalError("Failed to load cart").WithError(err)
	}

	if err := state.Remove(lineID); err != nil {
		return nil, err
	}

	if err := s.carts.SaveCart(ctx, userID, state); err != nil {
		return nil, errors.InternalError("Failed to save cart").WithError(err)
	}

	return state, nil
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := s.carts.DeleteCart(ctx, userID); err != nil {
		return errors.InternalError("Failed to clear cart").WithError(err)
	}

	return nil
}

func (s *cartService) SetCustomerInfo(ctx context.Context, userID uuid.UUID, info *models.CustomerInfo) (*cart.State, error) {

	state, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, errors.InternalError("Failed to load cart").WithError(err)
	}

	state.Customer = info

	if err := s.carts.SaveCart(ctx, userID, state); err != nil {
		return nil, errors.InternalError("Failed to save cart").WithError(err)
	}

	return state, nil
}

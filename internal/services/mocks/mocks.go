// Package mocks holds hand-written testify mocks for the service
// interfaces, used by the handler tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/takeariz/storefront/internal/cart"
	"github.com/takeariz/storefront/internal/models"
)

type UserService struct {
	mock.Mock
}

func (m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*models.LoginResponse); ok {
		return resp, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

type ProductService struct {
	mock.Mock
}

func (m *ProductService) CreateProduct(ctx context.Context, claims *models.Claims, req *models.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, claims, req)
	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ProductService) UpdateProduct(ctx context.Context, claims *models.Claims, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, claims, id, req)
	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ProductService) DeleteProduct(ctx context.Context, claims *models.Claims, id uuid.UUID) error {
	args := m.Called(ctx, claims, id)

	return args.Error(0)
}

func (m *ProductService) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, int, error) {
	args := m.Called(ctx, page, pageSize)
	if products, ok := args.Get(0).([]*models.Product); ok {
		return products, args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

type CartService struct {
	mock.Mock
}

func (m *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*cart.State, error) {
	args := m.Called(ctx, userID)
	if state, ok := args.Get(0).(*cart.State); ok {
		return state, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*cart.State, error) {
	args := m.Called(ctx, userID, req)
	if state, ok := args.Get(0).(*cart.State); ok {
		return state, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateCartQuantityRequest) (*cart.State, error) {
	args := m.Called(ctx, userID, req)
	if state, ok := args.Get(0).(*cart.State); ok {
		return state, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, userID uuid.UUID, lineID uuid.UUID) (*cart.State, error) {
	args := m.Called(ctx, userID, lineID)
	if state, ok := args.Get(0).(*cart.State); ok {
		return state, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

func (m *CartService) SetCustomerInfo(ctx context.Context, userID uuid.UUID, info *models.CustomerInfo) (*cart.State, error) {
	args := m.Called(ctx, userID, info)
	if state, ok := args.Get(0).(*cart.State); ok {
		return state, args.Error(1)
	}

	return nil, args.Error(1)
}

type OrderService struct {
	mock.Mock
}

func (m *OrderService) Checkout(ctx context.Context, claims *models.Claims, req *models.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, claims, req)
	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OrderService) GetOrderByID(ctx context.Context, claims *models.Claims, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, claims, id)
	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OrderService) ListOrders(ctx context.Context, claims *models.Claims, page, pageSize int) ([]models.Order, int, error) {
	args := m.Called(ctx, claims, page, pageSize)
	if orders, ok := args.Get(0).([]models.Order); ok {
		return orders, args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

func (m *OrderService) UpdateOrderStatus(ctx context.Context, claims *models.Claims, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, claims, id, status)
	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

type InvoiceService struct {
	mock.Mock
}

func (m *InvoiceService) CreateInvoice(ctx context.Context, claims *models.Claims, req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	args := m.Called(ctx, claims, req)
	if invoice, ok := args.Get(0).(*models.Invoice); ok {
		return invoice, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *InvoiceService) GetInvoiceByID(ctx context.Context, claims *models.Claims, id uuid.UUID) (*models.Invoice, error) {
	args := m.Called(ctx, claims, id)
	if invoice, ok := args.Get(0).(*models.Invoice); ok {
		return invoice, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *InvoiceService) GetInvoiceView(ctx context.Context, claims *models.Claims, id uuid.UUID) (*models.InvoiceView, error) {
	args := m.Called(ctx, claims, id)
	if view, ok := args.Get(0).(*models.InvoiceView); ok {
		return view, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *InvoiceService) ListInvoices(ctx context.Context, claims *models.Claims, page, pageSize int) ([]models.Invoice, int, error) {
	args := m.Called(ctx, claims, page, pageSize)
	if invoices, ok := args.Get(0).([]models.Invoice); ok {
		return invoices, args.Int(1), args.Error(2)
	}

	return nil, args.Int(1), args.Error(2)
}

type PaymentService struct {
	mock.Mock
}

func (m *PaymentService) CreateDepositPayment(ctx context.Context, claims *models.Claims, orderID uuid.UUID) (*models.PaymentIntentResponse, error) {
	args := m.Called(ctx, claims, orderID)
	if resp, ok := args.Get(0).(*models.PaymentIntentResponse); ok {
		return resp, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *PaymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) error {
	args := m.Called(ctx, payload, signature)

	return args.Error(0)
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/takeariz/storefront/internal/api/middleware"
	"github.com/takeariz/storefront/internal/errors"
	"github.com/takeariz/storefront/internal/models"
	"github.com/takeariz/storefront/internal/pricing"
	repository "github.com/takeariz/storefront/internal/repositories"
	"github.com/takeariz/storefront/pkg/sendgrid"
)

type OrderService interface {
	Checkout(ctx context.Context, claims *models.Claims, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrderByID(ctx context.Context, claims *models.Claims, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, claims *models.Claims, page, pageSize int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, claims *models.Claims, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	carts    repository.CartRepository
	users    repository.UserRepository
	email    sendgrid.EmailService
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, carts repository.CartRepository, users repository.UserRepository, email sendgrid.EmailService) OrderService {
	return &orderService{
		orders:   orders,
		products: products,
		carts:    carts,
		users:    users,
		email:    email,
	}
}

// Checkout turns the caller's cart into a PENDING order. Every price is
// recomputed from the catalog inside this call, so the stored snapshots and
// the stock reservation come from the same read.
func (s *orderService) Checkout(ctx context.Context, claims *models.Claims, req *models.CreateOrderRequest) (*models.Order, error) {

	state, err := s.carts.GetCart(ctx, claims.UserID)
	if err != nil {
		return nil, errors.InternalError("Failed to load cart").WithError(err)
	}

	if state.IsEmpty() {
		return nil, errors.BadRequestError("Cart is empty")
	}

	ids := make([]uuid.UUID, 0, len(state.Lines))
	for i := range state.Lines {
		ids = append(ids, state.Lines[i].ProductID)
	}

	products, err := s.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load products").WithError(err)
	}

	byID := make(map[uuid.UUID]*models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	orderID := uuid.New()
	items := make([]models.OrderItem, 0, len(state.Lines))
	priceLines := make([]pricing.Line, 0, len(state.Lines))

	for i := range state.Lines {
		line := &state.Lines[i]

		product, ok := byID[line.ProductID]
		if !ok {
			return nil, errors.ValidationError(fmt.Sprintf("Product %q is no longer available", line.ProductName))
		}

		// Current catalog price wins over the cart snapshot.
		unitPrice := pricing.EffectiveUnitPrice(product.Price, product.Discount)

		items = append(items, models.OrderItem{
			ID:          uuid.New(),
			OrderID:     orderID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			Color:       line.Color,
			Size:        line.Size,
			Material:    line.Material,
		})

		priceLines = append(priceLines, pricing.Line{UnitPrice: unitPrice, Quantity: line.Quantity})
	}

	total, err := pricing.OrderTotal(priceLines)
	if err != nil {
		return nil, err
	}

	if req.ExpectedTotal != nil && !total.Equal(decimal.NewFromFloat(*req.ExpectedTotal)) {
		return nil, errors.ValidationError(fmt.Sprintf("Order total is %s, not %s; prices may have changed", total.String(), decimal.NewFromFloat(*req.ExpectedTotal).String()))
	}

	order := &models.Order{
		ID:          orderID,
		UserID:      claims.UserID,
		Status:      models.OrderStatusPending,
		TotalAmount: total,
		PaidAmount:  decimal.Zero,
		Items:       items,
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		if err == repository.ErrInsufficientStock {
			return nil, errors.BadRequestError("Not enough stock for one or more items")
		}

		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	logger := middleware.LoggerFromContext(ctx)

	if err := s.carts.DeleteCart(ctx, claims.UserID); err != nil {
		logger.Warn("Failed to clear cart after checkout", slog.String("orderId", order.ID.String()), slog.String("error", err.Error()))
	}

	s.sendOrderConfirmation(ctx, order)

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, claims *models.Claims, id uuid.UUID) (*models.Order, error) {

	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if err := requireOwnerOrAdmin(claims, order.UserID); err != nil {
		return nil, err
	}

	return order, nil
}

// ListOrders returns every order for admins and only the caller's own orders
// for everyone else.
func (s *orderService) ListOrders(ctx context.Context, claims *models.Claims, page, pageSize int) ([]models.Order, int, error) {

	if claims == nil {
		return nil, 0, errors.UnauthorizedError("Authentication required")
	}

	var (
		orders []models.Order
		total  int
		err    error
	)

	if claims.IsAdmin() {
		orders, total, err = s.orders.ListOrders(ctx, page, pageSize)
	} else {
		orders, total, err = s.orders.ListOrdersByUser(ctx, claims.UserID, page, pageSize)
	}

	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	return orders, total, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, claims *models.Claims, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {

	if err := requireAdmin(claims); err != nil {
		return nil, err
	}

	if !status.IsValid() {
		return nil, errors.ValidationError(fmt.Sprintf("Unknown order status %q", status))
	}

	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, errors.InvalidTransitionError(fmt.Sprintf("Cannot move order from %s to %s", order.Status, status))
	}

	if err := s.orders.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, errors.DatabaseError("Failed to update order status").WithError(err)
	}

	order.Status = status

	return order, nil
}

// sendOrderConfirmation is best effort: a mail failure never fails the order.
func (s *orderService) sendOrderConfirmation(ctx context.Context, order *models.Order) {

	logger := middleware.LoggerFromContext(ctx)

	user, err := s.users.GetUserByID(ctx, order.UserID)
	if err != nil {
		logger.Warn("Skipping order confirmation email", slog.String("orderId", order.ID.String()), slog.String("error", err.Error()))

		return
	}

	deposit := pricing.Deposit(order.TotalAmount)

	msg := &sendgrid.Message{
		To:      user.Email,
		Subject: fmt.Sprintf("Order %s received", order.ID),
		Content: fmt.Sprintf(
			"Hi %s,\n\nWe received your order for a total of %s. A deposit of %s is due now; the remainder is payable on delivery.\n",
			user.Name, order.TotalAmount.String(), deposit.String(),
		),
	}

	if err := s.email.Send(ctx, msg); err != nil {
		logger.Warn("Failed to send order confirmation email", slog.String("orderId", order.ID.String()), slog.String("error", err.Error()))
	}
}

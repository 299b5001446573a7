package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	stripesdk "github.com/stripe/stripe-go/v81"
	"github.com/takeariz/storefront/internal/api/middleware"
	"github.com/takeariz/storefront/internal/errors"
	"github.com/takeariz/storefront/internal/models"
	"github.com/takeariz/storefront/internal/pricing"
	repository "github.com/takeariz/storefront/internal/repositories"
	"github.com/takeariz/storefront/pkg/stripe"
)

type PaymentService interface {
	CreateDepositPayment(ctx context.Context, claims *models.Claims, orderID uuid.UUID) (*models.PaymentIntentResponse, error)
	ProcessWebhook(ctx context.Context, payload []byte, signature string) error
}

type paymentService struct {
	orders   repository.OrderRepository
	client   stripe.Client
	currency string
}

func NewPaymentService(orders repository.OrderRepository, client stripe.Client, currency string) PaymentService {
	return &paymentService{
		orders:   orders,
		client:   client,
		currency: currency,
	}
}

// CreateDepositPayment opens a payment intent for whatever is still owed on
// the order's upfront half. The remainder is settled on delivery, outside
// this flow.
func (s *paymentService) CreateDepositPayment(ctx context.Context, claims *models.Claims, orderID uuid.UUID) (*models.PaymentIntentResponse, error) {

	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if err := requireOwnerOrAdmin(claims, order.UserID); err != nil {
		return nil, err
	}

	if order.Status == models.OrderStatusCancelled {
		return nil, errors.BadRequestError("Order has been cancelled")
	}

	due := pricing.Deposit(order.TotalAmount).Sub(order.PaidAmount)
	if !due.IsPositive() {
		return nil, errors.BadRequestError("Deposit has already been paid")
	}

	intent, err := s.client.CreatePaymentIntent(
		due.IntPart(),
		s.currency,
		fmt.Sprintf("Deposit for order %s", order.ID),
		map[string]string{"order_id": order.ID.String()},
	)
	if err != nil {
		return nil, errors.ThirdPartyError("Failed to create payment intent").WithError(err)
	}

	return &models.PaymentIntentResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          due,
		Currency:        s.currency,
	}, nil
}

// ProcessWebhook verifies and applies a payment-provider event. Credits go
// through the repository guard, so a replayed or oversized event can never
// push paid_amount past the order total.
func (s *paymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) error {

	logger := middleware.LoggerFromContext(ctx)

	event, err := s.client.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return errors.UnauthorizedError("Invalid webhook signature").WithError(err)
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripesdk.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return errors.BadRequestError("Malformed payment intent payload").WithError(err)
		}

		return s.applyPayment(ctx, &intent)

	case "payment_intent.payment_failed":
		logger.Warn("Payment failed", slog.String("event_id", event.ID))

		return nil

	default:
		logger.Info("Ignoring webhook event", slog.String("event_type", string(event.Type)))

		return nil
	}
}

func (s *paymentService) applyPayment(ctx context.Context, intent *stripesdk.PaymentIntent) error {

	rawID, ok := intent.Metadata["order_id"]
	if !ok {
		return errors.BadRequestError("Payment intent carries no order reference")
	}

	orderID, err := uuid.Parse(rawID)
	if err != nil {
		return errors.BadRequestError("Invalid order reference on payment intent")
	}

	amount := decimal.NewFromInt(intent.Amount)

	if err := s.orders.AddPayment(ctx, orderID, amount); err != nil {
		if err == repository.ErrPaidExceedsTotal {
			return errors.ValidationError("Payment exceeds the order's outstanding balance")
		}

		return errors.DatabaseError("Failed to record payment").WithError(err)
	}

	middleware.LoggerFromContext(ctx).Info("Payment recorded",
		slog.String("orderId", orderID.String()),
		slog.String("amount", amount.String()),
	)

	return nil
}

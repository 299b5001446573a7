package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/takeariz/storefront/internal/api/middleware"
	"github.com/takeariz/storefront/internal/errors"
	"github.com/takeariz/storefront/internal/models"
	service "github.com/takeariz/storefront/internal/services"
	"github.com/takeariz/storefront/internal/utils"
	"github.com/takeariz/storefront/internal/utils/response"
)

// maxWebhookBody caps how much of a webhook payload is read before signature
// verification.
const maxWebhookBody = 64 << 10

type PaymentHandler struct {
	paymentService service.PaymentService
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, validator: validator.New()}
}

// CreateDepositPayment godoc
//	@Summary		Start the upfront deposit payment for an order
//	@Description	Opens a payment intent covering the unpaid half of the order total. The client completes the charge with the returned secret.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			payment	body		models.CreatePaymentRequest		true	"Order to pay the deposit for"
//	@Success		201		{object}	models.PaymentIntentResponse	"Payment intent details"
//	@Failure		400		{object}	response.ErrorResponse			"Deposit already paid or order cancelled"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse			"Forbidden - not the order's owner"
//	@Failure		404		{object}	response.ErrorResponse			"Order not found"
//	@Security		BearerAuth
//	@Router			/payments/deposit [post]
func (h *PaymentHandler) CreateDepositPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			logger.Warn("Unauthorized payment attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreatePaymentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid payment input")
			return
		}

		resp, err := h.paymentService.CreateDepositPayment(r.Context(), claims, req.OrderID)
		if err != nil {
			logger.Error("Failed to create deposit payment", slog.String("orderId", req.OrderID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Deposit payment intent created",
			slog.String("orderId", req.OrderID.String()),
			slog.String("paymentIntentId", resp.PaymentIntentID))
		response.Success(w, http.StatusCreated, resp)
	}
}

// Webhook godoc
//	@Summary		Payment provider webhook
//	@Description	Receives signed events from the payment provider and credits orders on successful charges. Not for client use.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Success		200	"Event processed"
//	@Failure		400	{object}	response.ErrorResponse	"Malformed event payload"
//	@Failure		401	{object}	response.ErrorResponse	"Invalid signature"
//	@Router			/payments/webhook [post]
func (h *PaymentHandler) Webhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			logger.Error("Failed to read webhook body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Failed to read request body"))
			return
		}
		defer r.Body.Close()

		signature := r.Header.Get("Stripe-Signature")

		if err := h.paymentService.ProcessWebhook(r.Context(), payload, signature); err != nil {
			logger.Error("Failed to process webhook", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

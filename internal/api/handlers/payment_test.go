package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/takeariz/storefront/internal/api/handlers"
	appErrors "github.com/takeariz/storefront/internal/errors"
	"github.com/takeariz/storefront/internal/models"
	"github.com/takeariz/storefront/internal/services/mocks"
	"github.com/takeariz/storefront/internal/testutils"
)

func TestCreateDepositPaymentHandler(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockPaymentService := new(mocks.PaymentService)
		paymentHandler := handlers.NewPaymentHandler(mockPaymentService)

		mockPaymentService.On("CreateDepositPayment", mock.Anything, mock.Anything, orderID).
			Return(&models.PaymentIntentResponse{
				PaymentIntentID: "pi_123",
				ClientSecret:    "pi_123_secret",
				Amount:          decimal.NewFromInt(350000),
				Currency:        "idr",
			}, nil).Once()

		bodyBytes, _ := json.Marshal(models.CreatePaymentRequest{OrderID: orderID})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/payments/deposit", bytes.NewReader(bodyBytes), userID, models.RoleUser, nil)
		rr := httptest.NewRecorder()

		paymentHandler.CreateDepositPayment().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockPaymentService.AssertExpectations(t)
	})

	t.Run("Failure - Deposit Already Paid", func(t *testing.T) {
		mockPaymentService := new(mocks.PaymentService)
		paymentHandler := handlers.NewPaymentHandler(mockPaymentService)

		mockPaymentService.On("CreateDepositPayment", mock.Anything, mock.Anything, orderID).
			Return(nil, appErrors.BadRequestError("Deposit has already been paid")).Once()

		bodyBytes, _ := json.Marshal(models.CreatePaymentRequest{OrderID: orderID})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/payments/deposit", bytes.NewReader(bodyBytes), userID, models.RoleUser, nil)
		rr := httptest.NewRecorder()

		paymentHandler.CreateDepositPayment().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestWebhookHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockPaymentService := new(mocks.PaymentService)
		paymentHandler := handlers.NewPaymentHandler(mockPaymentService)

		payload := []byte(`{"type":"payment_intent.succeeded"}`)
		mockPaymentService.On("ProcessWebhook", mock.Anything, payload, "sig_abc").Return(nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/payments/webhook", bytes.NewReader(payload), nil)
		req.Header.Set("Stripe-Signature", "sig_abc")
		rr := httptest.NewRecorder()

		paymentHandler.Webhook().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockPaymentService.AssertExpectations(t)
	})

	t.Run("Failure - Bad Signature", func(t *testing.T) {
		mockPaymentService := new(mocks.PaymentService)
		paymentHandler := handlers.NewPaymentHandler(mockPaymentService)

		mockPaymentService.On("ProcessWebhook", mock.Anything, mock.Anything, mock.Anything).
			Return(appErrors.UnauthorizedError("Invalid webhook signature")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/payments/webhook", bytes.NewReader([]byte(`{}`)), nil)
		rr := httptest.NewRecorder()

		paymentHandler.Webhook().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

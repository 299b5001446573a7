package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/takeariz/storefront/internal/errors"
	"github.com/takeariz/storefront/internal/models"
	repository "github.com/takeariz/storefront/internal/repositories"
	"github.com/takeariz/storefront/internal/repositories/mocks"
	service "github.com/takeariz/storefront/internal/services"
)

type invoiceServiceFixture struct {
	invoices *mocks.InvoiceRepository
	orders   *mocks.OrderRepository
	users    *mocks.UserRepository
	email    *emailServiceMock
	svc      service.InvoiceService
}

func newInvoiceServiceFixture(t *testing.T) *invoiceServiceFixture {
	t.Helper()

	f := &invoiceServiceFixture{
		invoices: new(mocks.InvoiceRepository),
		orders:   new(mocks.OrderRepository),
		users:    new(mocks.UserRepository),
		email:    new(emailServiceMock),
	}
	f.svc = service.NewInvoiceService(f.invoices, f.orders, f.users, f.email)

	return f
}

func deliveredOrder(userID uuid.UUID) *models.Order {
	orderID := uuid.New()

	return &models.Order{
		ID:          orderID,
		UserID:      userID,
		Status:      models.OrderStatusDelivered,
		TotalAmount: decimal.NewFromInt(700000),
		PaidAmount:  decimal.NewFromInt(350000),
		Items: []models.OrderItem{
			{
				ID:          uuid.New(),
				OrderID:     orderID,
				ProductID:   uuid.New(),
				ProductName: "Canvas Tote",
				Quantity:    2,
				UnitPrice:   decimal.NewFromInt(350000),
				Color:       "black",
			},
		},
	}
}

func TestCreateInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("issues an invoice with a default due date", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		userID := uuid.New()
		order := deliveredOrder(userID)

		f.orders.On("GetOrderByID", ctx, order.ID).Return(order, nil)
		f.invoices.On("CreateInvoice", ctx, mock.MatchedBy(func(inv *models.Invoice) bool {
			daysOut := time.Until(inv.DueDate)

			return inv.OrderID == order.ID &&
				strings.HasPrefix(inv.InvoiceNumber, "INV-") &&
				daysOut > 6*24*time.Hour && daysOut < 8*24*time.Hour
		})).Return(nil)
		f.users.On("GetUserByID", ctx, userID).Return(&models.User{ID: userID, Name: "Rin", Email: "rin@example.com"}, nil)
		f.email.On("Send", ctx, mock.Anything).Return(nil)

		invoice, err := f.svc.CreateInvoice(ctx, adminClaims(), &models.CreateInvoiceRequest{OrderID: order.ID})

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(invoice.InvoiceNumber, "INV-"))
		f.invoices.AssertExpectations(t)
	})

	t.Run("honours an explicit future due date", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		userID := uuid.New()
		order := deliveredOrder(userID)
		due := time.Now().AddDate(0, 1, 0)

		f.orders.On("GetOrderByID", ctx, order.ID).Return(order, nil)
		f.invoices.On("CreateInvoice", ctx, mock.MatchedBy(func(inv *models.Invoice) bool {
			return inv.DueDate.Equal(due)
		})).Return(nil)
		f.users.On("GetUserByID", ctx, userID).Return(&models.User{ID: userID, Email: "rin@example.com"}, nil)
		f.email.On("Send", ctx, mock.Anything).Return(nil)

		_, err := f.svc.CreateInvoice(ctx, adminClaims(), &models.CreateInvoiceRequest{OrderID: order.ID, DueDate: &due})

		require.NoError(t, err)
	})

	t.Run("rejects a due date in the past", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		order := deliveredOrder(uuid.New())
		due := time.Now().Add(-time.Hour)

		f.orders.On("GetOrderByID", ctx, order.ID).Return(order, nil)

		_, err := f.svc.CreateInvoice(ctx, adminClaims(), &models.CreateInvoiceRequest{OrderID: order.ID, DueDate: &due})

		require.Error(t, err)
		appErr, ok := errors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
		f.invoices.AssertNotCalled(t, "CreateInvoice", mock.Anything, mock.Anything)
	})

	t.Run("refuses a second invoice for the same order", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		order := deliveredOrder(uuid.New())

		f.orders.On("GetOrderByID", ctx, order.ID).Return(order, nil)
		f.invoices.On("CreateInvoice", ctx, mock.Anything).Return(repository.ErrDuplicateInvoice)

		_, err := f.svc.CreateInvoice(ctx, adminClaims(), &models.CreateInvoiceRequest{OrderID: order.ID})

		require.Error(t, err)
		appErr, ok := errors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeDuplicateEntry, appErr.Code)
	})

	t.Run("retries once on an invoice-number collision", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		userID := uuid.New()
		order := deliveredOrder(userID)

		f.orders.On("GetOrderByID", ctx, order.ID).Return(order, nil)
		f.invoices.On("CreateInvoice", ctx, mock.Anything).Return(repository.ErrDuplicateInvoiceNumber).Once()
		f.invoices.On("CreateInvoice", ctx, mock.Anything).Return(nil).Once()
		f.users.On("GetUserByID", ctx, userID).Return(&models.User{ID: userID, Email: "rin@example.com"}, nil)
		f.email.On("Send", ctx, mock.Anything).Return(nil)

		_, err := f.svc.CreateInvoice(ctx, adminClaims(), &models.CreateInvoiceRequest{OrderID: order.ID})

		require.NoError(t, err)
		f.invoices.AssertNumberOfCalls(t, "CreateInvoice", 2)
	})

	t.Run("non-admin cannot issue invoices", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)

		_, err := f.svc.CreateInvoice(ctx, userClaims(uuid.New()), &models.CreateInvoiceRequest{OrderID: uuid.New()})

		require.Error(t, err)
		appErr, ok := errors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeForbidden, appErr.Code)
	})
}

func TestGetInvoiceView(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	order := deliveredOrder(userID)
	invoice := &models.Invoice{
		ID:            uuid.New(),
		OrderID:       order.ID,
		InvoiceNumber: "INV-20260815093000",
		DueDate:       time.Now().AddDate(0, 0, 7),
		CreatedAt:     time.Now(),
	}
	user := &models.User{ID: userID, Name: "Rin Takeda", Email: "rin@example.com"}

	t.Run("owner gets the full billing projection", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		f.invoices.On("GetInvoiceByID", ctx, invoice.ID).Return(invoice, nil)
		f.orders.On("GetOrderByID", ctx, order.ID).Return(order, nil)
		f.users.On("GetUserByID", ctx, userID).Return(user, nil)

		view, err := f.svc.GetInvoiceView(ctx, userClaims(userID), invoice.ID)

		require.NoError(t, err)
		assert.Equal(t, "INV-20260815093000", view.InvoiceNumber)
		assert.Equal(t, "Rin Takeda", view.BillTo.Name)
		require.Len(t, view.Items, 1)
		assert.True(t, view.Items[0].Subtotal.Equal(decimal.NewFromInt(700000)))
		assert.True(t, view.Total.Equal(decimal.NewFromInt(700000)))
		assert.True(t, view.PaidAmount.Equal(decimal.NewFromInt(350000)))
		assert.True(t, view.Remaining.Equal(decimal.NewFromInt(350000)))
	})

	t.Run("stranger cannot read the invoice", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		f.invoices.On("GetInvoiceByID", ctx, invoice.ID).Return(invoice, nil)
		f.orders.On("GetOrderByID", ctx, order.ID).Return(order, nil)

		_, err := f.svc.GetInvoiceView(ctx, userClaims(uuid.New()), invoice.ID)

		require.Error(t, err)
		appErr, ok := errors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeForbidden, appErr.Code)
	})
}

func TestProjectInvoice(t *testing.T) {
	userID := uuid.New()
	order := deliveredOrder(userID)
	invoice := &models.Invoice{OrderID: order.ID, InvoiceNumber: "INV-1", DueDate: time.Now()}
	user := &models.User{ID: userID, Name: "Rin", Email: "rin@example.com"}

	view := service.ProjectInvoice(order, invoice, user)

	// The projection reads stored snapshots, never the live catalog.
	assert.Equal(t, order.Items[0].ProductName, view.Items[0].ProductName)
	assert.True(t, view.Items[0].UnitPrice.Equal(order.Items[0].UnitPrice))
	assert.True(t, view.Remaining.Equal(order.TotalAmount.Sub(order.PaidAmount)))
}

func TestListInvoices(t *testing.T) {
	ctx := context.Background()

	t.Run("admin lists invoices", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)
		f.invoices.On("ListInvoices", ctx, 1, 10).Return([]models.Invoice{{}}, 1, nil)

		invoices, total, err := f.svc.ListInvoices(ctx, adminClaims(), 1, 10)

		require.NoError(t, err)
		assert.Len(t, invoices, 1)
		assert.Equal(t, 1, total)
	})

	t.Run("non-admin is refused", func(t *testing.T) {
		f := newInvoiceServiceFixture(t)

		_, _, err := f.svc.ListInvoices(ctx, userClaims(uuid.New()), 1, 10)

		require.Error(t, err)
	})
}

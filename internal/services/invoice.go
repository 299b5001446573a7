package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/takeariz/storefront/internal/api/middleware"
	"github.com/takeariz/storefront/internal/errors"
	"github.com/takeariz/storefront/internal/models"
	repository "github.com/takeariz/storefront/internal/repositories"
	"github.com/takeariz/storefront/pkg/sendgrid"
)

// defaultDueDays is how far out the due date lands when the request leaves it
// blank.
const defaultDueDays = 7

type InvoiceService interface {
	CreateInvoice(ctx context.Context, claims *models.Claims, req *models.CreateInvoiceRequest) (*models.Invoice, error)
	GetInvoiceByID(ctx context.Context, claims *models.Claims, id uuid.UUID) (*models.Invoice, error)
	GetInvoiceView(ctx context.Context, claims *models.Claims, id uuid.UUID) (*models.InvoiceView, error)
	ListInvoices(ctx context.Context, claims *models.Claims, page, pageSize int) ([]models.Invoice, int, error)
}

type invoiceService struct {
	invoices repository.InvoiceRepository
	orders   repository.OrderRepository
	users    repository.UserRepository
	email    sendgrid.EmailService
	now      func() time.Time
}

func NewInvoiceService(invoices repository.InvoiceRepository, orders repository.OrderRepository, users repository.UserRepository, email sendgrid.EmailService) InvoiceService {
	return &invoiceService{
		invoices: invoices,
		orders:   orders,
		users:    users,
		email:    email,
		now:      time.Now,
	}
}

// newInvoiceNumber derives a human-readable number from the clock. Uniqueness
// is enforced by the database, not here.
func newInvoiceNumber(now time.Time) string {
	return "INV-" + now.Format("20060102150405")
}

func (s *invoiceService) CreateInvoice(ctx context.Context, claims *models.Claims, req *models.CreateInvoiceRequest) (*models.Invoice, error) {

	if err := requireAdmin(claims); err != nil {
		return nil, err
	}

	order, err := s.orders.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	now := s.now()

	dueDate := now.AddDate(0, 0, defaultDueDays)
	if req.DueDate != nil {
		if !req.DueDate.After(now) {
			return nil, errors.ValidationError("Due date must be in the future")
		}

		dueDate = *req.DueDate
	}

	invoice := &models.Invoice{
		ID:            uuid.New(),
		OrderID:       order.ID,
		InvoiceNumber: newInvoiceNumber(now),
		DueDate:       dueDate,
	}

	err = s.invoices.CreateInvoice(ctx, invoice)
	if err == repository.ErrDuplicateInvoiceNumber {
		// Second-resolution numbers can collide under load; retry once with a
		// fresh number before giving up.
		invoice.InvoiceNumber = newInvoiceNumber(s.now().Add(time.Second))
		err = s.invoices.CreateInvoice(ctx, invoice)
	}

	if err != nil {
		if err == repository.ErrDuplicateInvoice {
			return nil, errors.DuplicateEntryError("Order already has an invoice")
		}

		return nil, errors.DatabaseError("Failed to create invoice").WithError(err)
	}

	s.sendInvoiceIssued(ctx, order, invoice)

	return invoice, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, claims *models.Claims, id uuid.UUID) (*models.Invoice, error) {

	invoice, err := s.invoices.GetInvoiceByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Invoice not found").WithError(err)
	}

	order, err := s.orders.GetOrderByID(ctx, invoice.OrderID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load invoice order").WithError(err)
	}

	if err := requireOwnerOrAdmin(claims, order.UserID); err != nil {
		return nil, err
	}

	return invoice, nil
}

// GetInvoiceView resolves the invoice together with its order and customer
// into the printable billing projection.
func (s *invoiceService) GetInvoiceView(ctx context.Context, claims *models.Claims, id uuid.UUID) (*models.InvoiceView, error) {

	invoice, err := s.invoices.GetInvoiceByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Invoice not found").WithError(err)
	}

	order, err := s.orders.GetOrderByID(ctx, invoice.OrderID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load invoice order").WithError(err)
	}

	if err := requireOwnerOrAdmin(claims, order.UserID); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, order.UserID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load invoice customer").WithError(err)
	}

	return ProjectInvoice(order, invoice, user), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, claims *models.Claims, page, pageSize int) ([]models.Invoice, int, error) {

	if err := requireAdmin(claims); err != nil {
		return nil, 0, err
	}

	invoices, total, err := s.invoices.ListInvoices(ctx, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list invoices").WithError(err)
	}

	return invoices, total, nil
}

// ProjectInvoice renders an order and its invoice record into the billing
// view. It is a pure function over its inputs; amounts are read from the
// stored order snapshots, never recomputed from the catalog.
func ProjectInvoice(order *models.Order, invoice *models.Invoice, user *models.User) *models.InvoiceView {

	items := make([]models.InvoiceLine, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]

		items = append(items, models.InvoiceLine{
			ProductName: item.ProductName,
			Color:       item.Color,
			Size:        item.Size,
			Material:    item.Material,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal(),
		})
	}

	return &models.InvoiceView{
		InvoiceNumber: invoice.InvoiceNumber,
		CreatedAt:     invoice.CreatedAt,
		DueDate:       invoice.DueDate,
		BillTo: models.BillTo{
			Name:  user.Name,
			Email: user.Email,
		},
		Items:      items,
		Total:      order.TotalAmount,
		PaidAmount: order.PaidAmount,
		Remaining:  order.Remaining(),
	}
}

// sendInvoiceIssued is best effort and never fails invoice creation.
func (s *invoiceService) sendInvoiceIssued(ctx context.Context, order *models.Order, invoice *models.Invoice) {

	logger := middleware.LoggerFromContext(ctx)

	user, err := s.users.GetUserByID(ctx, order.UserID)
	if err != nil {
		logger.Warn("Skipping invoice email", slog.String("invoiceId", invoice.ID.String()), slog.String("error", err.Error()))

		return
	}

	msg := &sendgrid.Message{
		To:      user.Email,
		Subject: fmt.Sprintf("Invoice %s for your order", invoice.InvoiceNumber),
		Content: fmt.Sprintf(
			"Hi %s,\n\nInvoice %s has been issued for order %s. Amount due: %s by %s.\n",
			user.Name, invoice.InvoiceNumber, order.ID, order.Remaining().String(), invoice.DueDate.Format("2 Jan 2006"),
		),
	}

	if err := s.email.Send(ctx, msg); err != nil {
		logger.Warn("Failed to send invoice email", slog.String("invoiceId", invoice.ID.String()), slog.String("error", err.Error()))
	}
}

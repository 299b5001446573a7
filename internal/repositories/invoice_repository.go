package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/takeariz/storefront/internal/models"
	"github.com/takeariz/storefront/internal/utils"
)

// ErrDuplicateInvoice is returned when the order already has an invoice; the
// invoices.order_id unique index is the source of truth, so concurrent
// creates cannot both succeed.
var ErrDuplicateInvoice = fmt.Errorf("invoice already exists for this order")

// ErrDuplicateInvoiceNumber is returned on an invoice-number collision; the
// caller may regenerate and retry once.
var ErrDuplicateInvoiceNumber = fmt.Errorf("invoice number already taken")

type InvoiceRepository interface {
	CreateInvoice(ctx context.Context, invoice *models.Invoice) error
	GetInvoiceByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	GetInvoiceByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Invoice, error)
	ListInvoices(ctx context.Context, page, size int) ([]models.Invoice, int, error)
}

type invoiceRepository struct {
	DB *sql.DB
}

func NewInvoiceRepo(db *sql.DB) InvoiceRepository {
	return &invoiceRepository{DB: db}
}

func (r *invoiceRepository) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO invoices (id, order_id, invoice_number, due_date)
			  VALUES ($1, $2, $3, $4)
			  RETURNING created_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, invoice.ID, invoice.OrderID, invoice.InvoiceNumber, invoice.DueDate).
		Scan(&invoice.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err, "invoices_order_id_key") {
			return ErrDuplicateInvoice
		}

		if IsUniqueViolation(err, "invoices_invoice_number_key") {
			return ErrDuplicateInvoiceNumber
		}

		return fmt.Errorf("failed to insert invoice: %w", err)
	}

	return nil
}

func (r *invoiceRepository) GetInvoiceByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	invoice := &models.Invoice{}

	query := `SELECT id, order_id, invoice_number, due_date, created_at
			  FROM invoices
			  WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&invoice.ID, &invoice.OrderID, &invoice.InvoiceNumber, &invoice.DueDate, &invoice.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return invoice, nil
}

func (r *invoiceRepository) GetInvoiceByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Invoice, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	invoice := &models.Invoice{}

	query := `SELECT id, order_id, invoice_number, due_date, created_at
			  FROM invoices
			  WHERE order_id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, orderID).
		Scan(&invoice.ID, &invoice.OrderID, &invoice.InvoiceNumber, &invoice.DueDate, &invoice.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return invoice, nil
}

func (r *invoiceRepository) ListInvoices(ctx context.Context, page, size int) ([]models.Invoice, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM invoices`).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `SELECT id, order_id, invoice_number, due_date, created_at
			  FROM invoices
			  ORDER BY created_at DESC
			  LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	defer rows.Close()

	var invoices []models.Invoice

	for rows.Next() {

		var invoice models.Invoice

		err := rows.Scan(&invoice.ID, &invoice.OrderID, &invoice.InvoiceNumber, &invoice.DueDate, &invoice.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan invoice: %w", err)
		}

		invoices = append(invoices, invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

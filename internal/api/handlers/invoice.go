package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/takeariz/storefront/internal/api/middleware"
	"github.com/takeariz/storefront/internal/errors"
	"github.com/takeariz/storefront/internal/models"
	service "github.com/takeariz/storefront/internal/services"
	"github.com/takeariz/storefront/internal/utils"
	"github.com/takeariz/storefront/internal/utils/response"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	validator      *validator.Validate
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, validator: validator.New()}
}

// CreateInvoice godoc
//	@Summary		Issue an invoice for an order (Admin)
//	@Description	Creates the single invoice for an order. The due date defaults to seven days out when omitted.
//	@Tags			Invoices
//	@Accept			json
//	@Produce		json
//	@Param			invoice	body		models.CreateInvoiceRequest	true	"Order and optional due date"
//	@Success		201		{object}	models.Invoice				"Successfully created invoice"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error or past due date"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse		"Forbidden - admin only"
//	@Failure		404		{object}	response.ErrorResponse		"Order not found"
//	@Failure		409		{object}	response.ErrorResponse		"Order already has an invoice"
//	@Security		BearerAuth
//	@Router			/invoices [post]
func (h *InvoiceHandler) CreateInvoice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			logger.Warn("Unauthorized invoice creation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreateInvoiceRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create invoice input")
			return
		}

		invoice, err := h.invoiceService.CreateInvoice(r.Context(), claims, &req)
		if err != nil {
			logger.Error("Failed to create invoice", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Invoice created successfully",
			slog.String("invoiceId", invoice.ID.String()),
			slog.String("invoiceNumber", invoice.InvoiceNumber))
		response.Success(w, http.StatusCreated, invoice)
	}
}

// GetInvoice godoc
//	@Summary		Get an invoice record by ID
//	@Tags			Invoices
//	@Produce		json
//	@Param			id	path		string					true	"Invoice ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Invoice			"Invoice record"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid invoice ID format"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403	{object}	response.ErrorResponse	"Forbidden - not the invoice's customer"
//	@Failure		404	{object}	response.ErrorResponse	"Invoice not found"
//	@Security		BearerAuth
//	@Router			/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			logger.Warn("Unauthorized invoice access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid invoice id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		invoice, err := h.invoiceService.GetInvoiceByID(r.Context(), claims, id)
		if err != nil {
			logger.Error("Failed to get invoice", slog.String("invoiceId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, invoice)
	}
}

// GetInvoiceView godoc
//	@Summary		Get the printable billing view of an invoice
//	@Description	Resolves the invoice with its order lines, customer details, and amounts into a render-ready document.
//	@Tags			Invoices
//	@Produce		json
//	@Param			id	path		string					true	"Invoice ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.InvoiceView		"Billing projection"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid invoice ID format"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403	{object}	response.ErrorResponse	"Forbidden - not the invoice's customer"
//	@Failure		404	{object}	response.ErrorResponse	"Invoice not found"
//	@Security		BearerAuth
//	@Router			/invoices/{id}/view [get]
func (h *InvoiceHandler) GetInvoiceView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			logger.Warn("Unauthorized invoice access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid invoice id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		view, err := h.invoiceService.GetInvoiceView(r.Context(), claims, id)
		if err != nil {
			logger.Error("Failed to build invoice view", slog.String("invoiceId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// ListInvoices godoc
//	@Summary		List invoices with pagination (Admin)
//	@Tags			Invoices
//	@Produce		json
//	@Param			page		query		int												false	"Page number for pagination (default: 1)"			minimum(1)
//	@Param			pageSize	query		int												false	"Number of items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Invoice}	"Successfully retrieved invoices"
//	@Failure		401			{object}	response.ErrorResponse							"Authentication required"
//	@Failure		403			{object}	response.ErrorResponse							"Forbidden - admin only"
//	@Security		BearerAuth
//	@Router			/invoices [get]
func (h *InvoiceHandler) ListInvoices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			logger.Warn("Unauthorized invoice list attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > 100 {
			pageSize = 10
		}

		invoices, total, err := h.invoiceService.ListInvoices(r.Context(), claims, page, pageSize)
		if err != nil {
			logger.Error("Failed to list invoices", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Invoices listed successfully", slog.Int("count", len(invoices)), slog.Int("total", total))
		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     invoices,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

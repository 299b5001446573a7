package handlers

import (
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

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the caller's cart
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	cart.State				"Current cart contents"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		state, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to load cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, state)
	}
}

// AddItem godoc
//	@Summary		Add a product to the cart
//	@Description	Adds a product with an optional color, size, and material choice. Identical selections merge into one line.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddCartItemRequest	true	"Product and customization"
//	@Success		200		{object}	cart.State					"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error or unknown customization"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse		"Product not found"
//	@Security		BearerAuth
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			logger.Warn("Unauthorized cart mutation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.AddCartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add cart item input")
			return
		}

		state, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to add cart item", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart item added", slog.String("productId", req.ProductID))
		response.Success(w, http.StatusOK, state)
	}
}

// UpdateQuantity godoc
//	@Summary		Change the quantity of a cart line
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.UpdateCartQuantityRequest	true	"Line and new quantity"
//	@Success		200		{object}	cart.State							"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse				"Validation error"
//	@Failure		401		{object}	response.ErrorResponse				"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse				"Line not found"
//	@Security		BearerAuth
//	@Router			/cart/items [patch]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			logger.Warn("Unauthorized cart mutation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.UpdateCartQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update cart quantity input")
			return
		}

		state, err := h.cartService.UpdateQuantity(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to update cart quantity", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, state)
	}
}

// RemoveItem godoc
//	@Summary		Remove a line from the cart
//	@Tags			Cart
//	@Produce		json
//	@Param			lineId	path		string					true	"Cart line ID (UUID)"	Format(uuid)
//	@Success		200		{object}	cart.State				"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid line ID format"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse	"Line not found"
//	@Security		BearerAuth
//	@Router			/cart/items/{lineId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			logger.Warn("Unauthorized cart mutation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		lineID, err := utils.ParseID(r, "lineId")
		if err != nil {
			logger.Warn("Invalid cart line id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		state, err := h.cartService.RemoveItem(r.Context(), claims.UserID, lineID)
		if err != nil {
			logger.Error("Failed to remove cart item", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, state)
	}
}

// ClearCart godoc
//	@Summary		Empty the cart
//	@Tags			Cart
//	@Produce		json
//	@Success		204	"Cart cleared"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			logger.Warn("Unauthorized cart mutation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		if err := h.cartService.ClearCart(r.Context(), claims.UserID); err != nil {
			logger.Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}

// SetCustomerInfo godoc
//	@Summary		Attach checkout contact details to the cart
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			info	body		models.CustomerInfo		true	"Contact details"
//	@Success		200		{object}	cart.State				"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/cart/customer [put]
func (h *CartHandler) SetCustomerInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			logger.Warn("Unauthorized cart mutation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var info models.CustomerInfo
		if !utils.ParseAndValidate(r, w, &info, h.validator) {
			logger.Warn("Invalid customer info input")
			return
		}

		state, err := h.cartService.SetCustomerInfo(r.Context(), claims.UserID, &info)
		if err != nil {
			logger.Error("Failed to set customer info", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, state)
	}
}

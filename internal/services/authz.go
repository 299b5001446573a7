package service

import (
	"github.com/google/uuid"
	"github.com/takeariz/storefront/internal/errors"
	"github.com/takeariz/storefront/internal/models"
)

// Every operation that needs a role or ownership check goes through one of
// these two helpers, so the policy lives in exactly one place.

func requireAdmin(claims *models.Claims) error {
	if claims == nil {
		return errors.UnauthorizedError("Authentication required")
	}

	if !claims.IsAdmin() {
		return errors.ForbiddenError("Admin privileges required")
	}

	return nil
}

// requireOwnerOrAdmin allows the resource owner and any admin.
func requireOwnerOrAdmin(claims *models.Claims, ownerID uuid.UUID) error {
	if claims == nil {
		return errors.UnauthorizedError("Authentication required")
	}

	if claims.IsAdmin() || claims.UserID == ownerID {
		return nil
	}

	return errors.ForbiddenError("You don't have permission to access this resource")
}

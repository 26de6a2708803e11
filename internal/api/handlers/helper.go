package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

// requireClaims writes a 401 and returns false when the request carries no authenticated user.
func requireClaims(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*models.Claims, bool) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
	if !ok || claims == nil {
		logger.Warn("Unauthorized access attempt", slog.String("path", r.URL.Path))
		response.Error(w, errors.AuthorizationError("Authentication required"))
		return nil, false
	}

	return claims, true
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCartData(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to get cart", slog.String("userID", claims.UserID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// ModifyCart serves POST /cart/{productID}/{action} and answers with the updated cart.
func (h *CartHandler) ModifyCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}
		logger = logger.With(slog.String("userID", claims.UserID.String()))

		productID, err := utils.ParseID(r, "productID")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		action := models.CartAction(r.PathValue("action"))
		logger = logger.With(slog.Int64("productID", productID), slog.String("action", string(action)))

		if err := h.cartService.ModifyCart(r.Context(), claims.UserID, productID, action); err != nil {
			logger.Warn("Failed to modify cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.GetCartData(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to reload cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Cart modified", slog.Int("cartQuantity", cart.CartTotalQuantity))
		response.Success(w, http.StatusOK, cart)
	}
}

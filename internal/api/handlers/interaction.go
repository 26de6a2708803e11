package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type InteractionHandler struct {
	interactionService service.InteractionService
	validator          *validator.Validate
}

func NewInteractionHandler(interactionService service.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService, validator: validator.New()}
}

func (h *InteractionHandler) ToggleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		slug := strings.TrimSpace(r.PathValue("slug"))
		if slug == "" {
			response.Error(w, errors.BadRequestError("Product slug is required"))
			return
		}

		resp, err := h.interactionService.ToggleLike(r.Context(), claims.UserID, slug)
		if err != nil {
			logger.Warn("Failed to toggle like",
				slog.String("userID", claims.UserID.String()),
				slog.String("slug", slug),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *InteractionHandler) ListLikes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		products, err := h.interactionService.ListLikedProducts(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to list likes", slog.String("userID", claims.UserID.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

func (h *InteractionHandler) AddComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := requireClaims(w, r, logger)
		if !ok {
			return
		}

		productID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.AddCommentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		comment, err := h.interactionService.AddComment(r.Context(), claims.UserID, productID, req.Text)
		if err != nil {
			logger.Warn("Failed to add comment",
				slog.String("userID", claims.UserID.String()),
				slog.Int64("productID", productID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Comment added", slog.Int64("commentID", comment.ID), slog.Int64("productID", productID))
		response.Success(w, http.StatusCreated, comment)
	}
}

func (h *InteractionHandler) ListComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		comments, err := h.interactionService.ListComments(r.Context(), productID)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to list comments",
				slog.Int64("productID", productID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, comments)
	}
}

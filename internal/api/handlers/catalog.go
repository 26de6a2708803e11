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
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.catalogService.ListCategories(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list categories", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

func (h *CatalogHandler) ListCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		catalog, err := h.catalogService.ListCatalog(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list catalog", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, catalog)
	}
}

// ListProductsByCategory serves GET /categories/{slug}/products?q=&sort=&page=&pageSize=
func (h *CatalogHandler) ListProductsByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		slug := strings.TrimSpace(r.PathValue("slug"))
		if slug == "" {
			response.Error(w, errors.BadRequestError("Category slug is required"))
			return
		}

		page, pageSize := utils.ParsePagination(r)
		query := r.URL.Query()

		filter := models.ProductFilter{
			Query:    strings.TrimSpace(query.Get("q")),
			Sort:     query.Get("sort"),
			Page:     page,
			PageSize: pageSize,
		}

		products, err := h.catalogService.ListProductsByCategory(r.Context(), slug, filter)
		if err != nil {
			logger.Warn("Failed to list category products", slog.String("slug", slug), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

func (h *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		slug := strings.TrimSpace(r.PathValue("slug"))
		if slug == "" {
			response.Error(w, errors.BadRequestError("Product slug is required"))
			return
		}

		product, err := h.catalogService.GetProductBySlug(r.Context(), slug)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to get product", slog.String("slug", slug), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

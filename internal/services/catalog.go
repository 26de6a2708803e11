package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultPage     = 1
	defaultPageSize = 12
	maxPageSize     = 100
)

type CatalogService interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
	ListCatalog(ctx context.Context) ([]*models.CategoryProducts, error)
	ListProductsByCategory(ctx context.Context, slug string, filter models.ProductFilter) (*models.PaginatedResponse, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
}

type catalogService struct {
	repo  repository.CatalogRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewCatalogService reads through the cache when one is given. Cache failures
// are logged and never fail a read.
func NewCatalogService(repo repository.CatalogRepository, c cache.Cache, ttl time.Duration) CatalogService {
	return &catalogService{repo: repo, cache: c, ttl: ttl}
}

type productPage struct {
	Products []*models.Product `json:"products"`
	Total    int               `json:"total"`
}

func readThrough[T any](ctx context.Context, c cache.Cache, ttl time.Duration, key string, load func() (T, error)) (T, error) {

	var value T

	if c != nil {
		found, err := c.Get(ctx, key, &value)
		if err != nil {
			slog.Warn("Catalog cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		metrics.ObserveCacheLookup(found)
		if found {
			return value, nil
		}
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if c != nil {
		if err := c.Set(ctx, key, value, ttl); err != nil {
			slog.Warn("Catalog cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	return value, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {

	ctx, span := tracer.Start(ctx, "CatalogService.ListCategories")
	var err error
	defer func() { endSpan(span, err) }()

	categories, err := readThrough(ctx, s.cache, s.ttl, cache.Key(cache.CategoriesKeyPrefix, "all"), func() ([]*models.Category, error) {
		return s.repo.ListCategories(ctx)
	})
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	return categories, nil
}

// ListCatalog groups every product under its category, in category order.
func (s *catalogService) ListCatalog(ctx context.Context) ([]*models.CategoryProducts, error) {

	ctx, span := tracer.Start(ctx, "CatalogService.ListCatalog")
	var err error
	defer func() { endSpan(span, err) }()

	catalog, err := readThrough(ctx, s.cache, s.ttl, cache.Key(cache.CatalogKeyPrefix, "all"), func() ([]*models.CategoryProducts, error) {

		categories, err := s.repo.ListCategories(ctx)
		if err != nil {
			return nil, err
		}

		products, err := s.repo.ListProducts(ctx)
		if err != nil {
			return nil, err
		}

		byCategory := make(map[int64][]*models.Product, len(categories))
		for _, p := range products {
			byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
		}

		groups := make([]*models.CategoryProducts, 0, len(categories))
		for _, c := range categories {
			items := byCategory[c.ID]
			if items == nil {
				items = []*models.Product{}
			}
			groups = append(groups, &models.CategoryProducts{Title: c.Title, Slug: c.Slug, Products: items})
		}

		return groups, nil
	})
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch catalog").WithError(err)
	}

	return catalog, nil
}

func normalizeFilter(filter models.ProductFilter) models.ProductFilter {
	if filter.Page < 1 {
		filter.Page = defaultPage
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}
	return filter
}

func (s *catalogService) ListProductsByCategory(ctx context.Context, slug string, filter models.ProductFilter) (*models.PaginatedResponse, error) {

	ctx, span := tracer.Start(ctx, "CatalogService.ListProductsByCategory")
	span.SetAttributes(attribute.String("category.slug", slug), attribute.String("filter.sort", filter.Sort))
	var err error
	defer func() { endSpan(span, err) }()

	if !filter.SortValid() {
		err = errors.AddValidationError("sort", fmt.Sprintf("must be one of %v", models.ProductSorts))
		return nil, err
	}

	filter = normalizeFilter(filter)

	category, err := s.repo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Category not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch category").WithError(err)
	}

	key := cache.Key(cache.CategoryProductsKeyPrefix, slug, "q="+filter.Query, "sort="+filter.Sort,
		strconv.Itoa(filter.Page), strconv.Itoa(filter.PageSize))

	page, err := readThrough(ctx, s.cache, s.ttl, key, func() (*productPage, error) {
		products, total, err := s.repo.ListProductsByCategory(ctx, category.ID, filter)
		if err != nil {
			return nil, err
		}
		return &productPage{Products: products, Total: total}, nil
	})
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return &models.PaginatedResponse{
		Data:     page.Products,
		Total:    page.Total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {

	ctx, span := tracer.Start(ctx, "CatalogService.GetProductBySlug")
	span.SetAttributes(attribute.String("product.slug", slug))
	var err error
	defer func() { endSpan(span, err) }()

	product, err := readThrough(ctx, s.cache, s.ttl, cache.Key(cache.ProductKeyPrefix, slug), func() (*models.Product, error) {
		return s.repo.GetProductBySlug(ctx, slug)
	})
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	return product, nil
}

// GetProductByID always reads the database, prices must be current.
func (s *catalogService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	return product, nil
}

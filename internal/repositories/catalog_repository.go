package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/lib/pq"
)

type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID int64, filter models.ProductFilter) ([]*models.Product, int, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
}

type catalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepo(db *sql.DB) CatalogRepository {
	return &catalogRepository{DB: db}
}

const productColumns = `p.id, p.category_id, p.title, p.slug, p.description, p.price, p.quantity,
	p.size, p.color, p.brand_info, p.weight, p.materials, p.colors, p.sizes, p.created_at`

var productOrderBy = map[string]string{
	"":       "p.id ASC",
	"price":  "p.price ASC, p.id ASC",
	"-price": "p.price DESC, p.id ASC",
	"size":   "p.size ASC NULLS LAST, p.id ASC",
	"-size":  "p.size DESC NULLS LAST, p.id ASC",
	"color":  "p.color ASC, p.id ASC",
	"-color": "p.color DESC, p.id ASC",
	"title":  "p.title ASC, p.id ASC",
	"-title": "p.title DESC, p.id ASC",
}

func scanProduct(row interface{ Scan(dest ...any) error }) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.CategoryID, &p.Title, &p.Slug, &p.Description, &p.Price, &p.Quantity,
		&p.Size, &p.Color, &p.BrandInfo, &p.Weight, &p.Materials, &p.Colors, &p.Sizes, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanProducts(rows *sql.Rows) ([]*models.Product, error) {
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// attachPhotos loads the galleries of all given products in one query.
func attachPhotos(ctx context.Context, q queryer, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(products))
	byID := make(map[int64]*models.Product, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	query := `SELECT id, product_id, image FROM galleries WHERE product_id = ANY($1) ORDER BY id`

	rows, err := q.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load photos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g models.Gallery
		if err := rows.Scan(&g.ID, &g.ProductID, &g.Image); err != nil {
			return fmt.Errorf("failed to scan photo: %w", err)
		}
		if p, ok := byID[g.ProductID]; ok {
			p.Photos = append(p.Photos, g)
		}
	}

	return rows.Err()
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, `SELECT id, title, slug FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func (r *catalogRepository) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	c := &models.Category{}
	err := r.DB.QueryRowContext(dbCtx, `SELECT id, title, slug FROM categories WHERE slug = $1`, slug).Scan(&c.ID, &c.Title, &c.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return c, nil
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products p ORDER BY p.id`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}

	if err := attachPhotos(dbCtx, r.DB, products); err != nil {
		return nil, err
	}

	return products, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes a search term match literally inside an ILIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// ListProductsByCategory returns one page of the category and the total match count.
// filter.Sort must already be one of models.ProductSorts.
func (r *catalogRepository) ListProductsByCategory(ctx context.Context, categoryID int64, filter models.ProductFilter) ([]*models.Product, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	orderBy, ok := productOrderBy[filter.Sort]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported sort %q", filter.Sort)
	}

	where := `WHERE p.category_id = $1 AND p.title ILIKE '%' || $2 || '%' ESCAPE '\'`
	search := escapeLike(filter.Query)

	var total int
	countQuery := `SELECT COUNT(*) FROM products p ` + where
	if err := r.DB.QueryRowContext(dbCtx, countQuery, categoryID, search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	query := fmt.Sprintf(`SELECT %s FROM products p %s ORDER BY %s LIMIT $3 OFFSET $4`, productColumns, where, orderBy)

	rows, err := r.DB.QueryContext(dbCtx, query, categoryID, search, filter.PageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	if err := attachPhotos(dbCtx, r.DB, products); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *catalogRepository) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + `, c.id, c.title, c.slug
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.slug = $1`

	p := &models.Product{Category: &models.Category{}}
	err := r.DB.QueryRowContext(dbCtx, query, slug).Scan(&p.ID, &p.CategoryID, &p.Title, &p.Slug, &p.Description, &p.Price, &p.Quantity,
		&p.Size, &p.Color, &p.BrandInfo, &p.Weight, &p.Materials, &p.Colors, &p.Sizes, &p.CreatedAt,
		&p.Category.ID, &p.Category.Title, &p.Category.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if err := attachPhotos(dbCtx, r.DB, []*models.Product{p}); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *catalogRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`

	p, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}

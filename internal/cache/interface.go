package cache

import (
	"context"
	"strings"
	"time"
)

// Cache stores JSON encoded catalog reads. A miss is (false, nil).
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

const namespace = "storefront"

// Key joins the namespace, the prefix and the parts with ':'.
func Key(prefix string, parts ...string) string {
	return namespace + ":" + prefix + ":" + strings.Join(parts, ":")
}

const (
	CategoriesKeyPrefix       = "categories"
	CatalogKeyPrefix          = "catalog"
	CategoryProductsKeyPrefix = "category_products"
	ProductKeyPrefix          = "product"
	CommentsKeyPrefix         = "comments"
)

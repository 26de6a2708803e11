package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlaceholderPhotoURL is shown for products without any gallery image.
const PlaceholderPhotoURL = "https://img.freepik.com/premium-vector/no-photo-available-vector-icon-default-image-symbol-picture-coming-soon-web-site-mobile-app_87543-18055.jpg"

type Category struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type Product struct {
	ID          int64           `json:"id"`
	CategoryID  int64           `json:"category_id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Size        *int            `json:"size,omitempty"`
	Color       string          `json:"color"`
	BrandInfo   string          `json:"brand_info"`
	Weight      string          `json:"weight"`
	Materials   string          `json:"materials"`
	Colors      string          `json:"colors"`
	Sizes       string          `json:"sizes"`
	CreatedAt   time.Time       `json:"created_at"`
	Category    *Category       `json:"category,omitempty"`
	Photos      []Gallery       `json:"photos,omitempty"`
}

type Gallery struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Image     string `json:"image"`
}

// FirstPhoto returns the first gallery image or the placeholder.
func (p *Product) FirstPhoto() string {
	if len(p.Photos) == 0 || p.Photos[0].Image == "" {
		return PlaceholderPhotoURL
	}

	return p.Photos[0].Image
}

// CategoryProducts groups a category with its products for the storefront index.
type CategoryProducts struct {
	Title    string     `json:"title"`
	Slug     string     `json:"slug"`
	Products []*Product `json:"products"`
}

// ProductFilter narrows a category listing.
type ProductFilter struct {
	Query    string `json:"q"`
	Sort     string `json:"sort"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

// ProductSorts lists the accepted sort keys; a leading '-' sorts descending.
var ProductSorts = []string{"price", "-price", "size", "-size", "color", "-color", "title", "-title"}

// SortValid reports whether Sort is empty or one of ProductSorts.
func (f ProductFilter) SortValid() bool {
	if f.Sort == "" {
		return true
	}
	for _, s := range ProductSorts {
		if s == f.Sort {
			return true
		}
	}
	return false
}

package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates the requested product or drop does not exist.
var ErrNotFound = errors.New("catalog: not found")

// Product is a sellable catalog item. Sizes are free-form labels: apparel
// uses S-XXL, footwear uses US sizes.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Images      []string        `json:"images"`
	Sizes       []string        `json:"sizes"`
	Tags        []string        `json:"tags"`
	IsNew       bool            `json:"isNew"`
	IsLimited   bool            `json:"isLimited"`
	SoldOut     bool            `json:"soldOut"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// DropStatus describes where a drop sits in its release cycle.
type DropStatus string

const (
	DropUpcoming DropStatus = "upcoming"
	DropLive     DropStatus = "live"
	DropArchived DropStatus = "archived"
)

// Drop is a scheduled product release.
type Drop struct {
	ID       int64      `json:"id"`
	Title    string     `json:"title"`
	Image    string     `json:"image"`
	Status   DropStatus `json:"status"`
	DropsAt  time.Time  `json:"dropsAt"`
	Products []string   `json:"products"`
}

// ListParams filters the product listing.
type ListParams struct {
	Category string
	Tag      string
}

// Repository is the persistence boundary for the catalog.
type Repository interface {
	ListProducts(ctx context.Context, params ListParams) ([]Product, error)
	GetProduct(ctx context.Context, id string) (Product, error)
	ListDrops(ctx context.Context) ([]Drop, error)
}

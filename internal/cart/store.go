package cart

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates the requested cart or line could not be located.
var ErrNotFound = errors.New("cart: not found")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("cart: invalid input")

// Line is a single cart entry. Lines are identified by productID+size, so the
// same product may appear once per size.
type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size"`
	Image     string          `json:"image"`
}

// Key returns the identity key of the line within its cart.
func (l Line) Key() string {
	return l.ProductID + "|" + l.Size
}

// Store holds cart contents keyed by cart id. The checkout engine only reads
// Lines and calls Clear; the mutation operations are driven by the product
// pages outside the checkout flow.
type Store interface {
	Lines(ctx context.Context, cartID string) ([]Line, error)
	AddLine(ctx context.Context, cartID string, line Line) error
	UpdateQuantity(ctx context.Context, cartID, productID, size string, quantity int) error
	RemoveLine(ctx context.Context, cartID, productID, size string) error
	Clear(ctx context.Context, cartID string) error
}

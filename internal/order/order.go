package order

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LineSnapshot is the immutable copy of a cart line stored with the order.
// Missing sub-fields default to safe zero values rather than failing the
// submission.
type LineSnapshot struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Size     string          `json:"size"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
}

// Order is the persisted record produced by a completed checkout. The field
// names mirror the wire contract of the order store (flat, snake_case).
type Order struct {
	ID             int64           `json:"id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Email          string          `json:"email"`
	StreetAddress  string          `json:"street_address"`
	City           string          `json:"city"`
	ZipCode        string          `json:"zip_code"`
	StateRegion    *string         `json:"state_region"`
	ProductDetails []LineSnapshot  `json:"product_details"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	PromoDiscount  decimal.Decimal `json:"promo_discount"`
	ShippingFee    decimal.Decimal `json:"shipping_fee"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	Tax            decimal.Decimal `json:"tax"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	ShippingMethod string          `json:"shipping_method"`
	PromoApplied   bool            `json:"promo_applied"`
	Status         Status          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateParams carries everything needed to persist a new order. Monetary
// fields are expected pre-rounded (2 decimal places, 4 for the tax rate);
// status is always pending on creation.
type CreateParams struct {
	FirstName      string
	LastName       string
	Email          string
	StreetAddress  string
	City           string
	ZipCode        string
	StateRegion    *string
	ProductDetails []LineSnapshot
	Subtotal       decimal.Decimal
	PromoDiscount  decimal.Decimal
	ShippingFee    decimal.Decimal
	TaxRate        decimal.Decimal
	Tax            decimal.Decimal
	TotalAmount    decimal.Decimal
	ShippingMethod string
	PromoApplied   bool
}

// Number derives the customer-facing order number from the repository-assigned
// id, e.g. id 42 becomes XO-00042.
func Number(id int64) string {
	return fmt.Sprintf("XO-%05d", id)
}

package checkout

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/xo-club/storefront-api/internal/cart"
	"github.com/xo-club/storefront-api/internal/events"
	"github.com/xo-club/storefront-api/internal/obs"
	"github.com/xo-club/storefront-api/internal/order"
	"github.com/xo-club/storefront-api/internal/tax"
)

// Service orchestrates checkout submission: final validation, payload
// construction, the single repository write, and the best-effort confirmation
// event.
type Service struct {
	Cart   cart.Store
	Orders order.Repository
	Taxes  *tax.Table
	Events *events.Bus
	Logger zerolog.Logger
}

// SubmitResult is returned after a successful submission.
type SubmitResult struct {
	OrderID     int64  `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
}

// Submit persists the order for the session. Exactly one repository create
// happens per completed checkout: re-entrant calls while a submission is in
// flight fail with ErrSubmitInFlight, and a retry after success fails with
// ErrAlreadySubmitted. On success the session reaches the success step, the
// cart is cleared and an order.created event is emitted; event or
// notification failures are logged, never surfaced. On repository failure
// the session stays on the payment step so the user can retry.
func (s *Service) Submit(ctx context.Context, sess *Session) (SubmitResult, error) {
	if !sess.BeginSubmit() {
		return SubmitResult{}, ErrSubmitInFlight
	}
	defer sess.EndSubmit()

	params, err := s.prepare(sess)
	if err != nil {
		return SubmitResult{}, err
	}

	created, err := s.Orders.Create(ctx, params)
	if err != nil {
		if obs.OrdersSubmitted != nil {
			obs.OrdersSubmitted.WithLabelValues("error").Inc()
		}
		return SubmitResult{}, &SubmitError{Err: err}
	}
	if obs.OrdersSubmitted != nil {
		obs.OrdersSubmitted.WithLabelValues("ok").Inc()
	}

	sess.mu.Lock()
	sess.Step = StepSuccess
	sess.mu.Unlock()
	result := SubmitResult{OrderID: created.ID, OrderNumber: order.Number(created.ID)}

	if err := s.Cart.Clear(ctx, sess.CartID); err != nil {
		s.Logger.Error().Err(err).Str("cart_id", sess.CartID).Msg("clear cart after checkout")
	}
	s.emitOrderCreated(ctx, created, result.OrderNumber)

	return result, nil
}

// prepare validates the session and builds the order payload under the
// session lock. Validation failures never reach the network layer.
func (s *Service) prepare(sess *Session) (order.CreateParams, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.Step == StepSuccess {
		return order.CreateParams{}, ErrAlreadySubmitted
	}
	if len(sess.Lines) == 0 {
		return order.CreateParams{}, &ValidationError{Fields: []FieldError{{Field: "cart", Message: "cart is empty"}}}
	}
	if errs := ValidateInfo(sess.Customer, sess.Address); len(errs) > 0 {
		return order.CreateParams{}, &ValidationError{Fields: errs}
	}
	return s.buildParams(sess), nil
}

// buildParams expects the session lock to be held.
func (s *Service) buildParams(sess *Session) order.CreateParams {
	totals := sess.totalsLocked(s.Taxes).Rounded()

	snapshots := make([]order.LineSnapshot, 0, len(sess.Lines))
	for _, line := range sess.Lines {
		snapshots = append(snapshots, snapshotLine(line))
	}

	method := sess.Shipping
	if method == "" {
		method = ShippingExpress
	}

	var region *string
	if trimmed := strings.TrimSpace(sess.Address.State); trimmed != "" {
		region = &trimmed
	}

	return order.CreateParams{
		FirstName:      strings.TrimSpace(sess.Customer.FirstName),
		LastName:       strings.TrimSpace(sess.Customer.LastName),
		Email:          strings.ToLower(strings.TrimSpace(sess.Customer.Email)),
		StreetAddress:  strings.TrimSpace(sess.Address.Street),
		City:           strings.TrimSpace(sess.Address.City),
		ZipCode:        strings.TrimSpace(sess.Address.Zip),
		StateRegion:    region,
		ProductDetails: snapshots,
		Subtotal:       totals.Subtotal,
		PromoDiscount:  totals.PromoDiscount,
		ShippingFee:    totals.ShippingFee,
		TaxRate:        totals.TaxRate,
		Tax:            totals.Tax,
		TotalAmount:    totals.Total,
		ShippingMethod: string(method),
		PromoApplied:   sess.PromoApplied,
	}
}

// snapshotLine copies a cart line into the persisted shape, defaulting any
// missing sub-field to a safe zero value.
func snapshotLine(line cart.Line) order.LineSnapshot {
	price := line.UnitPrice
	if price.IsNegative() {
		price = decimal.Zero
	}
	qty := line.Quantity
	if qty < 0 {
		qty = 0
	}
	return order.LineSnapshot{
		ID:       line.ProductID,
		Name:     line.Name,
		Category: line.Category,
		Size:     line.Size,
		Quantity: qty,
		Price:    price.Round(2),
		Image:    line.Image,
	}
}

func (s *Service) emitOrderCreated(ctx context.Context, created order.Order, number string) {
	if s.Events == nil {
		return
	}
	products := make([]map[string]any, 0, len(created.ProductDetails))
	for _, p := range created.ProductDetails {
		products = append(products, map[string]any{
			"id":       p.ID,
			"name":     p.Name,
			"category": p.Category,
			"size":     p.Size,
			"quantity": p.Quantity,
			"price":    p.Price,
			"image":    p.Image,
		})
	}
	state := ""
	if created.StateRegion != nil {
		state = *created.StateRegion
	}
	payload := map[string]any{
		"orderId":        created.ID,
		"orderNumber":    number,
		"email":          created.Email,
		"firstName":      created.FirstName,
		"lastName":       created.LastName,
		"products":       products,
		"subtotal":       created.Subtotal,
		"promoDiscount":  created.PromoDiscount,
		"shippingFee":    created.ShippingFee,
		"tax":            created.Tax,
		"totalAmount":    created.TotalAmount,
		"shippingMethod": created.ShippingMethod,
		"shippingAddress": map[string]string{
			"street": created.StreetAddress,
			"city":   created.City,
			"state":  state,
			"zip":    created.ZipCode,
		},
		"orderDate": created.CreatedAt.Format(time.RFC3339),
	}
	if _, err := s.Events.Emit(ctx, events.TopicOrderCreated, number, payload); err != nil {
		// The order already succeeded; notification problems stay out of the
		// buyer's path.
		s.Logger.Error().Err(err).Int64("order_id", created.ID).Msg("emit order.created")
	}
}

package checkout

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xo-club/storefront-api/internal/cart"
	"github.com/xo-club/storefront-api/internal/tax"
)

// Step identifies a stage of the checkout flow.
type Step string

const (
	StepInfo     Step = "info"
	StepShipping Step = "shipping"
	StepPayment  Step = "payment"
	StepSuccess  Step = "success"
)

// Customer is the contact block collected on the info step.
type Customer struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Address is the delivery block collected on the info step. State is optional
// and only drives tax-rate resolution.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// Session is the transient state of one checkout flow. It snapshots the cart
// when checkout begins and is discarded on abandon or success.
type Session struct {
	ID           string         `json:"id"`
	CartID       string         `json:"cartId"`
	Step         Step           `json:"step"`
	Customer     Customer       `json:"customer"`
	Address      Address        `json:"address"`
	Shipping     ShippingMethod `json:"shippingMethod"`
	PromoApplied bool           `json:"promoApplied"`
	Lines        []cart.Line    `json:"lines"`
	CreatedAt    time.Time      `json:"createdAt"`

	// mu serialises concurrent handlers touching the same session; the
	// session object is shared across requests through SessionStore.
	mu sync.Mutex

	// inFlight suppresses re-entrant submits while a submission is pending.
	inFlight atomic.Bool
}

// FieldError describes a single invalid or missing field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateInfo checks the required customer and address fields. State is
// deliberately absent: it is optional.
func ValidateInfo(c Customer, a Address) []FieldError {
	var errs []FieldError
	required := []struct {
		field string
		value string
	}{
		{"email", c.Email},
		{"firstName", c.FirstName},
		{"lastName", c.LastName},
		{"street", a.Street},
		{"city", a.City},
		{"zip", a.Zip},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, FieldError{Field: f.field, Message: f.field + " is required"})
		}
	}
	return errs
}

// Advance moves the session one step forward. The info step is gated on the
// required fields; payment only advances through Submit, never here.
func Advance(s *Session) []FieldError {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.Step {
	case StepInfo:
		if errs := ValidateInfo(s.Customer, s.Address); len(errs) > 0 {
			return errs
		}
		s.Step = StepShipping
	case StepShipping:
		s.Step = StepPayment
	}
	return nil
}

// Retreat moves the session one step back. Always permitted.
func Retreat(s *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.Step {
	case StepPayment:
		s.Step = StepShipping
	case StepShipping:
		s.Step = StepInfo
	}
}

// ApplyPromo toggles the promo flag. A non-blank code enables the discount,
// a blank code clears it.
//
// This mirrors the storefront's behaviour: there is no promotions backend to
// validate codes against, so any non-empty code is accepted. Real validation
// belongs to an external promotions service.
func (s *Session) ApplyPromo(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PromoApplied = strings.TrimSpace(code) != ""
	return s.PromoApplied
}

// BeginSubmit marks the session as having a submission in flight. It reports
// false when another submit has not yet resolved.
func (s *Session) BeginSubmit() bool {
	return s.inFlight.CompareAndSwap(false, true)
}

// EndSubmit clears the in-flight marker.
func (s *Session) EndSubmit() {
	s.inFlight.Store(false)
}

// Totals computes the current order totals for the session.
func (s *Session) Totals(rates *tax.Table) Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalsLocked(rates)
}

func (s *Session) totalsLocked(rates *tax.Table) Totals {
	return ComputeTotals(s.Lines, s.PromoApplied, s.Shipping, s.Address.State, rates)
}

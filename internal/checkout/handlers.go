package checkout

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/xo-club/storefront-api/internal/cart"
	"github.com/xo-club/storefront-api/internal/common"
	"github.com/xo-club/storefront-api/internal/tax"
)

// Handler exposes the checkout flow over HTTP.
type Handler struct {
	Sessions *SessionStore
	Cart     cart.Store
	Svc      *Service
	Taxes    *tax.Table
	Validate *validator.Validate
	Logger   zerolog.Logger
}

// Routes mounts the checkout endpoints on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.Begin)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Post("/{id}/advance", h.Advance)
	r.Post("/{id}/back", h.Back)
	r.Post("/{id}/promo", h.Promo)
	r.Post("/{id}/submit", h.Submit)
	r.Delete("/{id}", h.Abandon)
}

type beginRequest struct {
	CartID string `json:"cartId" validate:"required"`
}

type updateRequest struct {
	Customer       *Customer `json:"customer"`
	Address        *Address  `json:"address"`
	ShippingMethod *string   `json:"shippingMethod" validate:"omitempty,oneof=express standard"`
}

type promoRequest struct {
	Code string `json:"code"`
}

// Begin snapshots the cart and opens a session on the info step.
func (h *Handler) Begin(w http.ResponseWriter, r *http.Request) {
	var req beginRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "cartId is required", nil)
		return
	}

	lines, err := h.Cart.Lines(r.Context(), req.CartID)
	if err != nil {
		h.Logger.Error().Err(err).Str("cart_id", req.CartID).Msg("load cart for checkout")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load cart", nil)
		return
	}
	if len(lines) == 0 {
		common.JSONError(w, http.StatusUnprocessableEntity, "EMPTY_CART", "cart is empty", nil)
		return
	}

	sess := h.Sessions.Begin(req.CartID, lines)
	common.JSON(w, http.StatusCreated, map[string]any{"data": h.view(sess)})
}

// Get returns the session with its current totals.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.view(sess)})
}

// Update applies partial edits to the customer, address and shipping method.
// Field validation happens on advance and submit, not here, so users can save
// incomplete forms.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req updateRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "shippingMethod must be express or standard", nil)
		return
	}

	sess.mu.Lock()
	if req.Customer != nil {
		sess.Customer = *req.Customer
	}
	if req.Address != nil {
		sess.Address = *req.Address
	}
	if req.ShippingMethod != nil {
		sess.Shipping = ShippingMethod(strings.ToLower(*req.ShippingMethod))
	}
	sess.mu.Unlock()
	common.JSON(w, http.StatusOK, map[string]any{"data": h.view(sess)})
}

// Advance moves the session forward one step.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if errs := Advance(sess); len(errs) > 0 {
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", "required fields are missing", errs)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.view(sess)})
}

// Back moves the session one step back, unconditionally.
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	Retreat(sess)
	common.JSON(w, http.StatusOK, map[string]any{"data": h.view(sess)})
}

// Promo toggles the promo discount for the session.
func (h *Handler) Promo(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req promoRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	applied := sess.ApplyPromo(req.Code)
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"promoApplied": applied,
		"totals":       h.totals(sess),
	}})
}

// Submit finalises the checkout and persists the order. The session is
// discarded on success so a replayed submit cannot create a second order.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	result, err := h.Svc.Submit(r.Context(), sess)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}
	h.Sessions.Delete(sess.ID)
	common.JSON(w, http.StatusCreated, map[string]any{"data": map[string]any{
		"orderId":     result.OrderID,
		"orderNumber": result.OrderNumber,
		"step":        StepSuccess,
	}})
}

// Abandon discards the session. The cart is untouched.
func (h *Handler) Abandon(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess, err := h.Sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "checkout session not found", nil)
		return nil, false
	}
	return sess, true
}

func (h *Handler) writeSubmitError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.Is(err, ErrSubmitInFlight):
		common.JSONError(w, http.StatusConflict, "SUBMIT_IN_FLIGHT", "a submission is already in progress", nil)
	case errors.Is(err, ErrAlreadySubmitted):
		common.JSONError(w, http.StatusConflict, "ALREADY_SUBMITTED", "this checkout already produced an order", nil)
	case errors.As(err, &verr):
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", "order could not be validated", verr.Fields)
	default:
		h.Logger.Error().Err(err).Msg("submit order")
		common.JSONError(w, http.StatusBadGateway, "ORDER_STORE", "unable to submit order", nil)
	}
}

func (h *Handler) view(sess *Session) map[string]any {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return map[string]any{
		"id":             sess.ID,
		"cartId":         sess.CartID,
		"step":           sess.Step,
		"customer":       sess.Customer,
		"address":        sess.Address,
		"shippingMethod": sess.Shipping,
		"promoApplied":   sess.PromoApplied,
		"lines":          sess.Lines,
		"totals":         sess.totalsLocked(h.Taxes).Rounded(),
	}
}

func (h *Handler) totals(sess *Session) Totals {
	return sess.Totals(h.Taxes).Rounded()
}

package cart

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/xo-club/storefront-api/internal/common"
	"github.com/xo-club/storefront-api/internal/obs"
)

// Handler exposes cart operations over HTTP. Carts are anonymous: a cart id
// is minted on first use and lives in the client's local storage.
type Handler struct {
	Store    Store
	Validate *validator.Validate
	Logger   zerolog.Logger
}

// Routes mounts the cart endpoints on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/items", h.AddItem)
	r.Patch("/{id}/items", h.UpdateItem)
	r.Delete("/{id}/items", h.RemoveItem)
	r.Delete("/{id}", h.Clear)
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Category  string `json:"category"`
	UnitPrice string `json:"unitPrice" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Size      string `json:"size"`
	Image     string `json:"image"`
}

type updateItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type removeItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size"`
}

// Create mints a new cart identifier.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	common.JSON(w, http.StatusCreated, map[string]any{"data": map[string]string{
		"cartId": uuid.NewString(),
	}})
}

// Get returns the cart contents.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "id")
	lines, err := h.Store.Lines(r.Context(), cartID)
	if err != nil {
		h.writeError(w, "load cart", err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{
		"cartId": cartID,
		"lines":  lines,
	}})
}

// AddItem appends a line, merging quantities with an existing line for the
// same product and size.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "missing or invalid item fields", nil)
		return
	}
	price, err := decimal.NewFromString(strings.TrimSpace(req.UnitPrice))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "unitPrice must be a decimal string", nil)
		return
	}

	line := Line{
		ProductID: req.ProductID,
		Name:      req.Name,
		Category:  req.Category,
		UnitPrice: price,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Image:     req.Image,
	}
	if err := h.Store.AddLine(r.Context(), chi.URLParam(r, "id"), line); err != nil {
		h.count("add", "error")
		h.writeError(w, "add cart line", err)
		return
	}
	h.count("add", "ok")
	h.respondLines(w, r, http.StatusCreated)
}

// UpdateItem sets the quantity of a line. A quantity below one removes it.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "productId is required", nil)
		return
	}
	err := h.Store.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), req.ProductID, req.Size, req.Quantity)
	if err != nil {
		h.count("update", "error")
		h.writeError(w, "update cart line", err)
		return
	}
	h.count("update", "ok")
	h.respondLines(w, r, http.StatusOK)
}

// RemoveItem deletes a line.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req removeItemRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "productId is required", nil)
		return
	}
	err := h.Store.RemoveLine(r.Context(), chi.URLParam(r, "id"), req.ProductID, req.Size)
	if err != nil {
		h.count("remove", "error")
		h.writeError(w, "remove cart line", err)
		return
	}
	h.count("remove", "ok")
	h.respondLines(w, r, http.StatusOK)
}

// Clear empties the cart.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Clear(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, "clear cart", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondLines(w http.ResponseWriter, r *http.Request, status int) {
	cartID := chi.URLParam(r, "id")
	lines, err := h.Store.Lines(r.Context(), cartID)
	if err != nil {
		h.writeError(w, "load cart", err)
		return
	}
	common.JSON(w, status, map[string]any{"data": map[string]any{
		"cartId": cartID,
		"lines":  lines,
	}})
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "cart line not found", nil)
	default:
		h.Logger.Error().Err(err).Msg(op)
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart store unavailable", nil)
	}
}

func (h *Handler) count(op, result string) {
	if obs.CartOperations != nil {
		obs.CartOperations.WithLabelValues(op, result).Inc()
	}
}

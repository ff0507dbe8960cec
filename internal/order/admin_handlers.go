package order

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/xo-club/storefront-api/internal/common"
	"github.com/xo-club/storefront-api/internal/events"
	"github.com/xo-club/storefront-api/internal/obs"
)

// AdminHandler provides the order management endpoints behind the admin
// token.
type AdminHandler struct {
	Repo   Repository
	Events *events.Bus
	Logger zerolog.Logger
}

// Routes mounts the admin order endpoints on the router.
func (h *AdminHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.PatchStatus)
}

type patchStatusRequest struct {
	Status string `json:"status"`
}

// List returns orders, newest first, filtered by status and free-text search.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Search: strings.TrimSpace(r.URL.Query().Get("q"))}
	filter.Page, filter.PerPage = common.ParsePagination(r, 20)

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := ParseStatus(raw)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "unknown status filter", nil)
			return
		}
		filter.Status = &status
	}

	orders, total, err := h.Repo.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error().Err(err).Msg("list orders")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to list orders", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": orders,
		"pagination": common.Pagination{
			Page:       filter.Page,
			PerPage:    filter.PerPage,
			TotalItems: total,
		},
	})
}

// Get returns a single order.
func (h *AdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	ord, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
			return
		}
		h.Logger.Error().Err(err).Int64("order_id", id).Msg("load order")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load order", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": ord})
}

// PatchStatus updates the order status with lifecycle validation.
func (h *AdminHandler) PatchStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	var req patchStatusRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	target, err := ParseStatus(req.Status)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "unsupported status", nil)
		return
	}

	ord, err := h.Repo.UpdateStatus(r.Context(), id, target)
	switch {
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
		return
	case errors.Is(err, ErrInvalidTransition):
		common.JSONError(w, http.StatusConflict, "INVALID_STATE", "status transition not allowed", nil)
		return
	case err != nil:
		h.Logger.Error().Err(err).Int64("order_id", id).Msg("update order status")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to update order status", nil)
		return
	}

	if obs.OrderStatusChanges != nil {
		obs.OrderStatusChanges.WithLabelValues(string(target)).Inc()
	}
	h.emitStatusChanged(r.Context(), ord)
	common.JSON(w, http.StatusOK, map[string]any{"data": ord})
}

// emitStatusChanged records the transition as a domain event. The status
// update already succeeded, so event failures are logged, never surfaced.
func (h *AdminHandler) emitStatusChanged(ctx context.Context, ord Order) {
	if h.Events == nil {
		return
	}
	number := Number(ord.ID)
	payload := map[string]any{
		"orderId":     ord.ID,
		"orderNumber": number,
		"email":       ord.Email,
		"status":      ord.Status,
	}
	if _, err := h.Events.Emit(ctx, events.TopicOrderStatusChanged, number, payload); err != nil {
		h.Logger.Error().Err(err).Int64("order_id", ord.ID).Msg("emit order.status_changed")
	}
}

func (h *AdminHandler) orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid order id", nil)
		return 0, false
	}
	return id, true
}

package catalog

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/xo-club/storefront-api/internal/common"
)

// Handler exposes the public catalog endpoints.
type Handler struct {
	Svc    *Service
	Logger zerolog.Logger
}

// Routes mounts the catalog endpoints on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/products", h.Products)
	r.Get("/products/{id}", h.Product)
	r.Get("/drops", h.Drops)
}

// Products handles GET /products with optional category and tag filters.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
		Tag:      strings.TrimSpace(r.URL.Query().Get("tag")),
	}
	products, err := h.Svc.ListProducts(r.Context(), params)
	if err != nil {
		h.Logger.Error().Err(err).Msg("list products")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to list products", nil)
		return
	}
	if products == nil {
		products = []Product{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": products})
}

// Product handles GET /products/{id}.
func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := h.Svc.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		h.Logger.Error().Err(err).Str("product_id", id).Msg("load product")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load product", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": product})
}

// Drops handles GET /drops.
func (h *Handler) Drops(w http.ResponseWriter, r *http.Request) {
	drops, err := h.Svc.ListDrops(r.Context())
	if err != nil {
		h.Logger.Error().Err(err).Msg("list drops")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to list drops", nil)
		return
	}
	if drops == nil {
		drops = []Drop{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": drops})
}

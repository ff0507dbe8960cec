package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/xo-club/storefront-api/internal/catalog"
)

type fakeRepo struct {
	products []catalog.Product
	drops    []catalog.Drop
	listHits int
}

func (f *fakeRepo) ListProducts(_ context.Context, params catalog.ListParams) ([]catalog.Product, error) {
	f.listHits++
	if params.Category == "" {
		return f.products, nil
	}
	var out []catalog.Product
	for _, p := range f.products {
		if p.Category == params.Category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetProduct(_ context.Context, id string) (catalog.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, catalog.ErrNotFound
}

func (f *fakeRepo) ListDrops(context.Context) ([]catalog.Drop, error) {
	return f.drops, nil
}

func seedRepo() *fakeRepo {
	return &fakeRepo{
		products: []catalog.Product{
			{
				ID:       "retro-jordan-1-high",
				Name:     "RETRO JORDAN 1 HIGH",
				Price:    decimal.RequireFromString("25.00"),
				Category: "FOOTWEAR",
				Sizes:    []string{"8", "9", "10", "11", "12"},
				IsNew:    true,
			},
			{
				ID:        "supreme-box-logo-hoodie",
				Name:      "SUPREME BOX LOGO HOODIE",
				Price:     decimal.RequireFromString("25.00"),
				Category:  "FLEECE",
				Sizes:     []string{"M", "L", "XL", "XXL"},
				IsLimited: true,
			},
		},
		drops: []catalog.Drop{
			{ID: 1, Title: "SUMMER CAPSULE", Status: catalog.DropLive, DropsAt: time.Now()},
		},
	}
}

func newCatalogServer(t *testing.T, repo *fakeRepo, cache *catalog.Cache) *httptest.Server {
	t.Helper()
	handler := &catalog.Handler{
		Svc:    &catalog.Service{Repo: repo, Cache: cache, Logger: zerolog.Nop()},
		Logger: zerolog.Nop(),
	}
	r := chi.NewRouter()
	r.Route("/", handler.Routes)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestListProducts(t *testing.T) {
	srv := newCatalogServer(t, seedRepo(), nil)

	resp, body := get(t, srv.URL+"/products")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body["data"].([]any), 2)

	resp, body = get(t, srv.URL+"/products?category=FOOTWEAR")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	require.Equal(t, "RETRO JORDAN 1 HIGH", data[0].(map[string]any)["name"])
}

func TestGetProduct(t *testing.T) {
	srv := newCatalogServer(t, seedRepo(), nil)

	resp, body := get(t, srv.URL+"/products/supreme-box-logo-hoodie")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["data"].(map[string]any)["isLimited"])

	resp, _ = get(t, srv.URL+"/products/ghost")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListDrops(t *testing.T) {
	srv := newCatalogServer(t, seedRepo(), nil)

	resp, body := get(t, srv.URL+"/drops")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	require.Equal(t, "live", data[0].(map[string]any)["status"])
}

func TestListProductsServedFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := seedRepo()
	srv := newCatalogServer(t, repo, &catalog.Cache{Client: client, TTL: time.Minute})

	_, _ = get(t, srv.URL+"/products")
	_, body := get(t, srv.URL+"/products")
	require.Len(t, body["data"].([]any), 2)
	require.Equal(t, 1, repo.listHits)
}

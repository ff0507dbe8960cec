package common

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
)

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:52211"
	if got := ClientIP(req); got != "198.51.100.7" {
		t.Fatalf("remote addr: got %q", got)
	}

	req.Header.Set("X-Real-IP", "203.0.113.4")
	if got := ClientIP(req); got != "203.0.113.4" {
		t.Fatalf("x-real-ip: got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 198.51.100.7")
	if got := ClientIP(req); got != "203.0.113.9" {
		t.Fatalf("x-forwarded-for: got %q", got)
	}
}

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&limit=50", nil)
	page, perPage := ParsePagination(req, 20)
	if page != 3 || perPage != 50 {
		t.Fatalf("got page=%d perPage=%d", page, perPage)
	}

	req = httptest.NewRequest(http.MethodGet, "/?page=-1&limit=0", nil)
	page, perPage = ParsePagination(req, 20)
	if page != 1 || perPage != 20 {
		t.Fatalf("defaults: got page=%d perPage=%d", page, perPage)
	}

	req = httptest.NewRequest(http.MethodGet, "/?limit=5000", nil)
	_, perPage = ParsePagination(req, 20)
	if perPage != 100 {
		t.Fatalf("expected cap of 100, got %d", perPage)
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"kai","bogus":1}`))
	if err := DecodeJSON(req, &dst); err == nil {
		t.Fatal("expected error for unknown field")
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"kai"}{"name":"mia"}`))
	if err := DecodeJSON(req, &dst); err == nil {
		t.Fatal("expected error for trailing data")
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"kai"}`))
	if err := DecodeJSON(req, &dst); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dst.Name != "kai" {
		t.Fatalf("got %q", dst.Name)
	}
}

func TestIdemMiddlewareRejectsReplay(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	idem := Idem{R: client, TTL: time.Minute}
	handler := idem.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	req.Header.Set("Idempotency-Key", "abc-123")

	rr1 := httptest.NewRecorder()
	handler.ServeHTTP(rr1, req.Clone(req.Context()))
	if rr1.Code != http.StatusCreated {
		t.Fatalf("first request: %d", rr1.Code)
	}

	rr2 := httptest.NewRecorder()
	handler.ServeHTTP(rr2, req.Clone(req.Context()))
	if rr2.Code != http.StatusConflict {
		t.Fatalf("replay: %d", rr2.Code)
	}
	if !strings.Contains(rr2.Body.String(), "IDEMPOTENT_REPLAY") {
		t.Fatalf("body = %q", rr2.Body.String())
	}

	noKey := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	rr3 := httptest.NewRecorder()
	handler.ServeHTTP(rr3, noKey)
	if rr3.Code != http.StatusCreated {
		t.Fatalf("missing key must pass through: %d", rr3.Code)
	}
}

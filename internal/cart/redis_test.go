package cart_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/xo-club/storefront-api/internal/cart"
)

func newStore(t *testing.T) *cart.RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &cart.RedisStore{Client: client, TTL: time.Hour}
}

func line(productID, size string, qty int, price float64) cart.Line {
	return cart.Line{
		ProductID: productID,
		Name:      "HEAVYWEIGHT HOODIE",
		Category:  "FLEECE",
		UnitPrice: decimal.NewFromFloat(price),
		Quantity:  qty,
		Size:      size,
		Image:     "https://cdn.example/hoodie.jpg",
	}
}

func TestAddLineMergesOnProductAndSize(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.AddLine(ctx, "c1", line("p1", "M", 1, 65)); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if err := store.AddLine(ctx, "c1", line("p1", "M", 2, 65)); err != nil {
		t.Fatalf("add line again: %v", err)
	}
	if err := store.AddLine(ctx, "c1", line("p1", "L", 1, 65)); err != nil {
		t.Fatalf("add different size: %v", err)
	}

	lines, err := store.Lines(ctx, "c1")
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, l := range lines {
		switch l.Size {
		case "M":
			if l.Quantity != 3 {
				t.Fatalf("expected merged quantity 3, got %d", l.Quantity)
			}
		case "L":
			if l.Quantity != 1 {
				t.Fatalf("expected quantity 1, got %d", l.Quantity)
			}
		}
	}
}

func TestAddLineRejectsInvalid(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.AddLine(ctx, "c1", line("p1", "M", 0, 65)); err == nil {
		t.Fatal("expected error for zero quantity")
	}
	bad := line("p1", "M", 1, 65)
	bad.UnitPrice = decimal.NewFromFloat(-1)
	if err := store.AddLine(ctx, "c1", bad); err == nil {
		t.Fatal("expected error for negative price")
	}
	if err := store.AddLine(ctx, "", line("p1", "M", 1, 65)); err == nil {
		t.Fatal("expected error for blank cart id")
	}
}

func TestUpdateQuantity(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.AddLine(ctx, "c1", line("p1", "M", 2, 65)); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if err := store.UpdateQuantity(ctx, "c1", "p1", "M", 5); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	lines, err := store.Lines(ctx, "c1")
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 5 {
		t.Fatalf("unexpected lines %+v", lines)
	}

	// quantity below one removes the line
	if err := store.UpdateQuantity(ctx, "c1", "p1", "M", 0); err != nil {
		t.Fatalf("update to zero: %v", err)
	}
	lines, err = store.Lines(ctx, "c1")
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	store := newStore(t)
	if err := store.UpdateQuantity(context.Background(), "c1", "p1", "M", 2); err != cart.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveAndClear(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.AddLine(ctx, "c1", line("p1", "M", 1, 65)); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if err := store.AddLine(ctx, "c1", line("p2", "L", 1, 35)); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if err := store.RemoveLine(ctx, "c1", "p1", "M"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.RemoveLine(ctx, "c1", "p1", "M"); err != cart.ErrNotFound {
		t.Fatalf("expected ErrNotFound on double remove, got %v", err)
	}
	if err := store.Clear(ctx, "c1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	lines, err := store.Lines(ctx, "c1")
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected cleared cart, got %+v", lines)
	}
}

func TestLinesPreservesPricePrecision(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.AddLine(ctx, "c1", line("p1", "M", 1, 19.99)); err != nil {
		t.Fatalf("add line: %v", err)
	}
	lines, err := store.Lines(ctx, "c1")
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if !lines[0].UnitPrice.Equal(decimal.NewFromFloat(19.99)) {
		t.Fatalf("expected 19.99, got %s", lines[0].UnitPrice)
	}
}

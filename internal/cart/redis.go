package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisStore keeps each cart in a Redis hash with one field per line. Carts
// expire after TTL of inactivity; every touch refreshes the expiry.
type RedisStore struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

func (s *RedisStore) key(cartID string) string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = "cart:"
	}
	return prefix + cartID
}

func (s *RedisStore) ttl() time.Duration {
	if s.TTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return s.TTL
}

// Lines returns the cart contents ordered by line key. A missing cart is an
// empty cart, not an error.
func (s *RedisStore) Lines(ctx context.Context, cartID string) ([]Line, error) {
	if s == nil || s.Client == nil {
		return nil, fmt.Errorf("cart: redis store not configured")
	}
	if strings.TrimSpace(cartID) == "" {
		return nil, ErrInvalidInput
	}
	fields, err := s.Client.HGetAll(ctx, s.key(cartID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cart: load %s: %w", cartID, err)
	}
	keys := make([]string, 0, len(fields))
	for field := range fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)
	lines := make([]Line, 0, len(keys))
	for _, field := range keys {
		var line Line
		if err := json.Unmarshal([]byte(fields[field]), &line); err != nil {
			return nil, fmt.Errorf("cart: decode line %s: %w", field, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// AddLine inserts the line, merging quantity with an existing line for the
// same productID+size.
func (s *RedisStore) AddLine(ctx context.Context, cartID string, line Line) error {
	if s == nil || s.Client == nil {
		return fmt.Errorf("cart: redis store not configured")
	}
	if strings.TrimSpace(cartID) == "" || strings.TrimSpace(line.ProductID) == "" {
		return ErrInvalidInput
	}
	if line.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1: %w", ErrInvalidInput)
	}
	if line.UnitPrice.IsNegative() {
		return fmt.Errorf("unit price must not be negative: %w", ErrInvalidInput)
	}
	key := s.key(cartID)
	existing, err := s.Client.HGet(ctx, key, line.Key()).Result()
	if err == nil {
		var current Line
		if err := json.Unmarshal([]byte(existing), &current); err == nil {
			line.Quantity += current.Quantity
		}
	} else if err != redis.Nil {
		return fmt.Errorf("cart: read line: %w", err)
	}
	return s.writeLine(ctx, key, line)
}

// UpdateQuantity sets the quantity of an existing line. Quantity below 1
// removes the line, mirroring the storefront's decrement-to-zero behaviour.
func (s *RedisStore) UpdateQuantity(ctx context.Context, cartID, productID, size string, quantity int) error {
	if s == nil || s.Client == nil {
		return fmt.Errorf("cart: redis store not configured")
	}
	if quantity < 1 {
		return s.RemoveLine(ctx, cartID, productID, size)
	}
	key := s.key(cartID)
	field := Line{ProductID: productID, Size: size}.Key()
	raw, err := s.Client.HGet(ctx, key, field).Result()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("cart: read line: %w", err)
	}
	var line Line
	if err := json.Unmarshal([]byte(raw), &line); err != nil {
		return fmt.Errorf("cart: decode line: %w", err)
	}
	line.Quantity = quantity
	return s.writeLine(ctx, key, line)
}

// RemoveLine deletes the line identified by productID+size.
func (s *RedisStore) RemoveLine(ctx context.Context, cartID, productID, size string) error {
	if s == nil || s.Client == nil {
		return fmt.Errorf("cart: redis store not configured")
	}
	field := Line{ProductID: productID, Size: size}.Key()
	removed, err := s.Client.HDel(ctx, s.key(cartID), field).Result()
	if err != nil {
		return fmt.Errorf("cart: remove line: %w", err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	_ = s.Client.Expire(ctx, s.key(cartID), s.ttl()).Err()
	return nil
}

// Clear deletes the whole cart.
func (s *RedisStore) Clear(ctx context.Context, cartID string) error {
	if s == nil || s.Client == nil {
		return fmt.Errorf("cart: redis store not configured")
	}
	if err := s.Client.Del(ctx, s.key(cartID)).Err(); err != nil {
		return fmt.Errorf("cart: clear %s: %w", cartID, err)
	}
	return nil
}

func (s *RedisStore) writeLine(ctx context.Context, key string, line Line) error {
	encoded, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("cart: encode line: %w", err)
	}
	pipe := s.Client.TxPipeline()
	pipe.HSet(ctx, key, line.Key(), encoded)
	pipe.Expire(ctx, key, s.ttl())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cart: write line: %w", err)
	}
	return nil
}

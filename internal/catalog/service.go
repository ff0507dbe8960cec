package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Service layers caching over the catalog repository. Cache failures fall
// back to the database and are logged at debug level.
type Service struct {
	Repo   Repository
	Cache  *Cache
	Logger zerolog.Logger
}

// ListProducts returns the catalog filtered by the given params.
func (s *Service) ListProducts(ctx context.Context, params ListParams) ([]Product, error) {
	key := listCacheKey(params)
	var cached []Product
	if hit, err := s.Cache.GetJSON(ctx, key, &cached); err != nil {
		s.Logger.Debug().Err(err).Str("key", key).Msg("catalog cache read")
	} else if hit {
		return cached, nil
	}

	products, err := s.Repo.ListProducts(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.SetJSON(ctx, key, products); err != nil {
		s.Logger.Debug().Err(err).Str("key", key).Msg("catalog cache write")
	}
	return products, nil
}

// GetProduct returns one product by id.
func (s *Service) GetProduct(ctx context.Context, id string) (Product, error) {
	key := "catalog:product:" + id
	var cached Product
	if hit, err := s.Cache.GetJSON(ctx, key, &cached); err != nil {
		s.Logger.Debug().Err(err).Str("key", key).Msg("catalog cache read")
	} else if hit {
		return cached, nil
	}

	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if err := s.Cache.SetJSON(ctx, key, product); err != nil {
		s.Logger.Debug().Err(err).Str("key", key).Msg("catalog cache write")
	}
	return product, nil
}

// ListDrops returns all drops, newest first.
func (s *Service) ListDrops(ctx context.Context) ([]Drop, error) {
	const key = "catalog:drops"
	var cached []Drop
	if hit, err := s.Cache.GetJSON(ctx, key, &cached); err != nil {
		s.Logger.Debug().Err(err).Str("key", key).Msg("catalog cache read")
	} else if hit {
		return cached, nil
	}

	drops, err := s.Repo.ListDrops(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.SetJSON(ctx, key, drops); err != nil {
		s.Logger.Debug().Err(err).Str("key", key).Msg("catalog cache write")
	}
	return drops, nil
}

func listCacheKey(params ListParams) string {
	category := strings.ToUpper(strings.TrimSpace(params.Category))
	tag := strings.TrimSpace(params.Tag)
	if category == "" && tag == "" {
		return "catalog:products"
	}
	return fmt.Sprintf("catalog:products:%s:%s", category, tag)
}

// Package catalog serves store data to the UI, caching backend responses in
// sqlite and deriving regions and display prices.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/storefront/internal/commerce"
)

// Backend is the subset of the Store API the catalog uses.
type Backend interface {
	ListProducts(ctx context.Context, q commerce.ProductQuery) (commerce.ProductPage, error)
	ProductByHandle(ctx context.Context, handle, regionID string) (*commerce.Product, error)
	ListRegions(ctx context.Context) ([]commerce.Region, error)
	ListCollections(ctx context.Context) ([]commerce.Collection, error)
	Cart(ctx context.Context, id string) (*commerce.Cart, error)
}

var _ Backend = (*commerce.Client)(nil)

// Result is a value with its provenance.
type Result[T any] struct {
	Value     T
	FetchedAt time.Time
	FromCache bool
	Stale     bool // served from an expired entry because the backend failed
}

// Service combines a backend with a cache. A nil cache disables caching.
type Service struct {
	backend Backend
	cache   *Cache
}

// New creates a catalog service.
func New(backend Backend, cache *Cache) *Service {
	return &Service{backend: backend, cache: cache}
}

// Cache key prefixes.
const (
	keyProducts    = "products:"
	keyProduct     = "product:"
	keyRegions     = "regions"
	keyCollections = "collections"
)

func fetch[T any](ctx context.Context, c *Cache, key string, load func(context.Context) (T, error)) (Result[T], error) {
	var stale *entry
	if c != nil {
		e, err := c.get(ctx, key)
		if err != nil {
			log.Printf("catalog: read cache %s: %v", key, err)
		}
		if e != nil {
			var v T
			if err := json.Unmarshal(e.body, &v); err == nil {
				if !c.isExpired(e.fetchedAt) {
					return Result[T]{Value: v, FetchedAt: e.fetchedAt, FromCache: true}, nil
				}
				stale = e
			}
		}
	}

	v, err := load(ctx)
	if err != nil {
		if stale != nil && !commerce.IsNotFound(err) {
			var sv T
			if jerr := json.Unmarshal(stale.body, &sv); jerr == nil {
				return Result[T]{Value: sv, FetchedAt: stale.fetchedAt, FromCache: true, Stale: true}, nil
			}
		}
		var zero Result[T]
		return zero, err
	}

	now := time.Now()
	if c != nil {
		now = c.now()
		if body, err := json.Marshal(v); err == nil {
			if err := c.put(ctx, key, body); err != nil {
				log.Printf("catalog: write cache %s: %v", key, err)
			}
		}
	}
	return Result[T]{Value: v, FetchedAt: now}, nil
}

func productsKey(q commerce.ProductQuery) string {
	return keyProducts + strings.Join([]string{
		q.RegionID, q.CollectionID, q.Query, q.Order,
		strconv.Itoa(q.Limit), strconv.Itoa(q.Offset),
	}, "|")
}

// Products returns a page of products. Price orders are applied to the page.
func (s *Service) Products(ctx context.Context, q commerce.ProductQuery) (Result[commerce.ProductPage], error) {
	res, err := fetch(ctx, s.cache, productsKey(q), func(ctx context.Context) (commerce.ProductPage, error) {
		return s.backend.ListProducts(ctx, q)
	})
	if err != nil {
		return res, err
	}
	SortProducts(res.Value.Products, q.Order)
	return res, nil
}

// Product returns the product with handle priced for regionID.
func (s *Service) Product(ctx context.Context, handle, regionID string) (Result[*commerce.Product], error) {
	return fetch(ctx, s.cache, keyProduct+regionID+"|"+handle, func(ctx context.Context) (*commerce.Product, error) {
		return s.backend.ProductByHandle(ctx, handle, regionID)
	})
}

// Regions returns all regions.
func (s *Service) Regions(ctx context.Context) (Result[[]commerce.Region], error) {
	return fetch(ctx, s.cache, keyRegions, s.backend.ListRegions)
}

// Collections returns all collections.
func (s *Service) Collections(ctx context.Context) (Result[[]commerce.Collection], error) {
	return fetch(ctx, s.cache, keyCollections, s.backend.ListCollections)
}

// Cart returns the cart. Carts change under the user so they are never cached.
func (s *Service) Cart(ctx context.Context, id string) (Result[*commerce.Cart], error) {
	cart, err := s.backend.Cart(ctx, id)
	if err != nil {
		return Result[*commerce.Cart]{}, err
	}
	return Result[*commerce.Cart]{Value: cart, FetchedAt: time.Now()}, nil
}

// Related returns up to limit products of the same collection, excluding p.
func (s *Service) Related(ctx context.Context, p *commerce.Product, regionID string, limit int) ([]commerce.Product, error) {
	if p == nil || limit <= 0 {
		return nil, nil
	}
	q := commerce.ProductQuery{RegionID: regionID, Limit: limit + 1}
	if p.Collection != nil {
		q.CollectionID = p.Collection.ID
	} else if p.CollectionID != "" {
		q.CollectionID = p.CollectionID
	}
	res, err := s.Products(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("related products: %w", err)
	}
	related := make([]commerce.Product, 0, limit)
	for _, rp := range res.Value.Products {
		if rp.ID == p.ID {
			continue
		}
		related = append(related, rp)
		if len(related) == limit {
			break
		}
	}
	return related, nil
}

// Refresh drops every cached catalog response.
func (s *Service) Refresh(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	for _, prefix := range []string{keyProducts, keyProduct, keyRegions, keyCollections} {
		if err := s.cache.Invalidate(ctx, prefix); err != nil {
			return err
		}
	}
	return nil
}

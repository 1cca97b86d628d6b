package app

import (
	"context"

	"github.com/llehouerou/storefront/internal/catalog"
	"github.com/llehouerou/storefront/internal/commerce"
)

// Catalog is the store data the application reads.
type Catalog interface {
	Products(ctx context.Context, q commerce.ProductQuery) (catalog.Result[commerce.ProductPage], error)
	Product(ctx context.Context, handle, regionID string) (catalog.Result[*commerce.Product], error)
	Regions(ctx context.Context) (catalog.Result[[]commerce.Region], error)
	Collections(ctx context.Context) (catalog.Result[[]commerce.Collection], error)
	Cart(ctx context.Context, id string) (catalog.Result[*commerce.Cart], error)
	Related(ctx context.Context, p *commerce.Product, regionID string, limit int) ([]commerce.Product, error)
	Refresh(ctx context.Context) error
}

// Verify catalog.Service implements Catalog at compile time.
var _ Catalog = (*catalog.Service)(nil)

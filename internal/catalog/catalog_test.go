package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/storefront/internal/commerce"
	"github.com/llehouerou/storefront/internal/state"
)

type fakeBackend struct {
	products    []commerce.Product
	regions     []commerce.Region
	collections []commerce.Collection
	cart        *commerce.Cart
	err         error
	calls       map[string]int
	lastQuery   commerce.ProductQuery
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: map[string]int{}}
}

func (f *fakeBackend) ListProducts(_ context.Context, q commerce.ProductQuery) (commerce.ProductPage, error) {
	f.calls["products"]++
	f.lastQuery = q
	if f.err != nil {
		return commerce.ProductPage{}, f.err
	}
	var out []commerce.Product
	for _, p := range f.products {
		if q.CollectionID != "" && (p.Collection == nil || p.Collection.ID != q.CollectionID) {
			continue
		}
		out = append(out, p)
	}
	return commerce.ProductPage{Products: out, Count: len(out), Limit: q.Limit, Offset: q.Offset}, nil
}

func (f *fakeBackend) ProductByHandle(_ context.Context, handle, _ string) (*commerce.Product, error) {
	f.calls["product"]++
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.products {
		if f.products[i].Handle == handle {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, commerce.ErrNotFound
}

func (f *fakeBackend) ListRegions(context.Context) ([]commerce.Region, error) {
	f.calls["regions"]++
	return f.regions, f.err
}

func (f *fakeBackend) ListCollections(context.Context) ([]commerce.Collection, error) {
	f.calls["collections"]++
	return f.collections, f.err
}

func (f *fakeBackend) Cart(context.Context, string) (*commerce.Cart, error) {
	f.calls["cart"]++
	return f.cart, f.err
}

func price(amount float64) *commerce.Price {
	return &commerce.Price{Amount: amount, CurrencyCode: "eur"}
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	m, err := state.OpenPath(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return NewCache(m.DB(), time.Minute)
}

func sampleProducts() []commerce.Product {
	summer := &commerce.Collection{ID: "pcol_summer", Title: "Summer"}
	return []commerce.Product{
		{ID: "p1", Handle: "tee", Title: "Tee", Collection: summer,
			Variants: []commerce.Variant{{Price: price(20)}, {Price: price(15)}}},
		{ID: "p2", Handle: "shorts", Title: "Shorts", Collection: summer,
			Variants: []commerce.Variant{{Price: price(30)}}},
		{ID: "p3", Handle: "cap", Title: "Cap", Collection: summer,
			Variants: []commerce.Variant{{Title: "One size"}}},
		{ID: "p4", Handle: "scarf", Title: "Scarf",
			Variants: []commerce.Variant{{Price: price(5)}}},
	}
}

func TestService_ProductCachedWithinTTL(t *testing.T) {
	backend := newFakeBackend()
	backend.products = sampleProducts()
	svc := New(backend, newTestCache(t))
	ctx := context.Background()

	first, err := svc.Product(ctx, "tee", "reg_eu")
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, "Tee", first.Value.Title)

	second, err := svc.Product(ctx, "tee", "reg_eu")
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, "Tee", second.Value.Title)
	assert.Equal(t, 1, backend.calls["product"])

	_, err = svc.Product(ctx, "tee", "reg_us")
	require.NoError(t, err)
	assert.Equal(t, 2, backend.calls["product"], "region is part of the key")
}

func TestService_ExpiredEntryRefetched(t *testing.T) {
	backend := newFakeBackend()
	backend.regions = []commerce.Region{{ID: "reg_eu"}}
	cache := newTestCache(t)
	now := time.Now()
	cache.now = func() time.Time { return now }
	svc := New(backend, cache)
	ctx := context.Background()

	_, err := svc.Regions(ctx)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	res, err := svc.Regions(ctx)
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.Equal(t, 2, backend.calls["regions"])
}

func TestService_StaleServedOnBackendError(t *testing.T) {
	backend := newFakeBackend()
	backend.collections = []commerce.Collection{{ID: "pcol_1", Title: "Summer"}}
	cache := newTestCache(t)
	now := time.Now()
	cache.now = func() time.Time { return now }
	svc := New(backend, cache)
	ctx := context.Background()

	_, err := svc.Collections(ctx)
	require.NoError(t, err)

	now = now.Add(time.Hour)
	backend.err = errors.New("backend down")

	res, err := svc.Collections(ctx)
	require.NoError(t, err)
	assert.True(t, res.Stale)
	assert.Equal(t, "Summer", res.Value[0].Title)
}

func TestService_ErrorWithoutCache(t *testing.T) {
	backend := newFakeBackend()
	backend.err = errors.New("backend down")
	svc := New(backend, nil)

	_, err := svc.Regions(context.Background())

	assert.EqualError(t, err, "backend down")
}

func TestService_NotFoundNotCached(t *testing.T) {
	backend := newFakeBackend()
	svc := New(backend, newTestCache(t))
	ctx := context.Background()

	_, err := svc.Product(ctx, "missing", "")
	assert.ErrorIs(t, err, commerce.ErrNotFound)
	_, err = svc.Product(ctx, "missing", "")
	assert.ErrorIs(t, err, commerce.ErrNotFound)
	assert.Equal(t, 2, backend.calls["product"])
}

func TestService_ProductsSortedByPrice(t *testing.T) {
	backend := newFakeBackend()
	backend.products = sampleProducts()
	svc := New(backend, nil)

	res, err := svc.Products(context.Background(), commerce.ProductQuery{Order: commerce.OrderPriceAsc})
	require.NoError(t, err)

	var handles []string
	for _, p := range res.Value.Products {
		handles = append(handles, p.Handle)
	}
	assert.Equal(t, []string{"scarf", "tee", "shorts", "cap"}, handles)

	res, err = svc.Products(context.Background(), commerce.ProductQuery{Order: commerce.OrderPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, "shorts", res.Value.Products[0].Handle)
	assert.Equal(t, "cap", res.Value.Products[3].Handle, "unpriced last")
}

func TestService_Related(t *testing.T) {
	backend := newFakeBackend()
	backend.products = sampleProducts()
	svc := New(backend, nil)
	p := backend.products[0]

	related, err := svc.Related(context.Background(), &p, "reg_eu", 4)
	require.NoError(t, err)

	assert.Equal(t, "pcol_summer", backend.lastQuery.CollectionID)
	require.Len(t, related, 2)
	for _, r := range related {
		assert.NotEqual(t, p.ID, r.ID)
	}

	related, err = svc.Related(context.Background(), &p, "reg_eu", 1)
	require.NoError(t, err)
	assert.Len(t, related, 1)

	related, err = svc.Related(context.Background(), nil, "", 3)
	require.NoError(t, err)
	assert.Empty(t, related)
}

func TestService_Refresh(t *testing.T) {
	backend := newFakeBackend()
	backend.regions = []commerce.Region{{ID: "reg_eu"}}
	svc := New(backend, newTestCache(t))
	ctx := context.Background()

	_, err := svc.Regions(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Refresh(ctx))
	_, err = svc.Regions(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, backend.calls["regions"])
}

func TestService_CartNeverCached(t *testing.T) {
	backend := newFakeBackend()
	backend.cart = &commerce.Cart{ID: "cart_1", Items: []commerce.CartItem{{Quantity: 2}}}
	svc := New(backend, newTestCache(t))
	ctx := context.Background()

	for range 2 {
		res, err := svc.Cart(ctx, "cart_1")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Value.ItemCount())
	}
	assert.Equal(t, 2, backend.calls["cart"])
}

func TestCache_Prune(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	now := time.Now()
	cache.now = func() time.Time { return now.Add(-48 * time.Hour) }
	require.NoError(t, cache.put(ctx, "old", []byte(`1`)))
	cache.now = func() time.Time { return now }
	require.NoError(t, cache.put(ctx, "new", []byte(`2`)))

	n, err := cache.Prune(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	e, err := cache.get(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, e)
	e, err = cache.get(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, []byte(`2`), e.body)
}

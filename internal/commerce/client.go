// Package commerce is a client for the commerce backend's Store API.
package commerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	userAgent      = "Storefront/0.1 (https://github.com/llehouerou/storefront)"
	defaultTimeout = 30 * time.Second
	rateLimitDur   = 100 * time.Millisecond

	// Retry configuration
	maxRetries   = 3
	initialDelay = 500 * time.Millisecond
	maxDelay     = 5 * time.Second

	maxErrorBody = 512
)

// productFields asks the API to expand the relations the UI renders.
const productFields = "*variants.calculated_price,*images,*collection,*type,*tags"

// Options configures a Client.
type Options struct {
	BaseURL        string
	PublishableKey string
	Timeout        time.Duration
	HTTPClient     *http.Client // overrides Timeout when set
}

// Client provides access to the Store API.
type Client struct {
	baseURL        string
	publishableKey string
	httpClient     *http.Client
	lastRequest    time.Time
	mu             sync.Mutex
}

// NewClient creates a new Store API client.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:        strings.TrimSuffix(opts.BaseURL, "/"),
		publishableKey: opts.PublishableKey,
		httpClient:     hc,
	}
}

// Sort orders accepted by ListProducts.
const (
	OrderNewest    = "-created_at"
	OrderPriceAsc  = "price_asc"
	OrderPriceDesc = "price_desc"
)

// ProductQuery filters a product listing.
type ProductQuery struct {
	RegionID     string
	CollectionID string
	Query        string
	Order        string // OrderNewest by default; price orders are applied by the caller
	Limit        int
	Offset       int
}

func (q ProductQuery) values() url.Values {
	params := url.Values{}
	params.Set("fields", productFields)
	if q.RegionID != "" {
		params.Set("region_id", q.RegionID)
	}
	if q.CollectionID != "" {
		params.Add("collection_id[]", q.CollectionID)
	}
	if q.Query != "" {
		params.Set("q", q.Query)
	}
	// Price sorting is not supported server side.
	switch q.Order {
	case "", OrderPriceAsc, OrderPriceDesc:
		params.Set("order", OrderNewest)
	default:
		params.Set("order", q.Order)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 12
	}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(max(q.Offset, 0)))
	return params
}

// ListProducts returns one page of products.
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (ProductPage, error) {
	var page ProductPage
	if err := c.get(ctx, "/store/products", q.values(), &page); err != nil {
		return ProductPage{}, fmt.Errorf("list products: %w", err)
	}
	c.resolveImages(page.Products)
	return page, nil
}

// ProductByHandle returns the product with the given handle, priced for
// regionID. It returns ErrNotFound when no product matches.
func (c *Client) ProductByHandle(ctx context.Context, handle, regionID string) (*Product, error) {
	if strings.TrimSpace(handle) == "" {
		return nil, fmt.Errorf("product by handle: %w", ErrNotFound)
	}
	params := url.Values{}
	params.Set("handle", handle)
	params.Set("fields", productFields)
	if regionID != "" {
		params.Set("region_id", regionID)
	}

	var page ProductPage
	if err := c.get(ctx, "/store/products", params, &page); err != nil {
		return nil, fmt.Errorf("product %q: %w", handle, err)
	}
	if len(page.Products) == 0 {
		return nil, fmt.Errorf("product %q: %w", handle, ErrNotFound)
	}
	c.resolveImages(page.Products[:1])
	return &page.Products[0], nil
}

// ListRegions returns all regions.
func (c *Client) ListRegions(ctx context.Context) ([]Region, error) {
	var result struct {
		Regions []Region `json:"regions"`
	}
	if err := c.get(ctx, "/store/regions", nil, &result); err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	return result.Regions, nil
}

// ListCollections returns all collections.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	params := url.Values{}
	params.Set("limit", "100")
	var result struct {
		Collections []Collection `json:"collections"`
	}
	if err := c.get(ctx, "/store/collections", params, &result); err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return result.Collections, nil
}

// Cart returns the cart with the given id.
func (c *Client) Cart(ctx context.Context, id string) (*Cart, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("cart: %w", ErrNotFound)
	}
	var result struct {
		Cart *Cart `json:"cart"`
	}
	if err := c.get(ctx, "/store/carts/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, fmt.Errorf("cart %q: %w", id, err)
	}
	if result.Cart == nil {
		return nil, fmt.Errorf("cart %q: %w", id, ErrNotFound)
	}
	for i := range result.Cart.Items {
		item := &result.Cart.Items[i]
		item.Thumbnail = c.resolveURL(item.Thumbnail)
	}
	return result.Cart, nil
}

// resolveImages makes image URLs served by the backend itself, such as
// "/static/tee.jpg", absolute.
func (c *Client) resolveImages(products []Product) {
	for i := range products {
		p := &products[i]
		p.Thumbnail = c.resolveURL(p.Thumbnail)
		for j := range p.Images {
			p.Images[j].URL = c.resolveURL(p.Images[j].URL)
		}
	}
}

func (c *Client) resolveURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	base, err := url.Parse(c.baseURL + "/")
	if err != nil || base.Host == "" {
		return ref
	}
	return base.ResolveReference(u).String()
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	resp, err := c.doRequestWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-Id", uuid.NewString())
		if c.publishableKey != "" {
			req.Header.Set("x-publishable-api-key", c.publishableKey)
		}
		return req, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

// waitForRateLimit spaces requests by at least rateLimitDur.
func (c *Client) waitForRateLimit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := time.Since(c.lastRequest)
	if elapsed < rateLimitDur {
		if err := sleep(ctx, rateLimitDur-elapsed); err != nil {
			return err
		}
	}
	c.lastRequest = time.Now()
	return nil
}

// doRequestWithRetry executes a request with exponential backoff retry.
// Retries on 5xx errors and network errors. newReq is called per attempt.
func (c *Client) doRequestWithRetry(ctx context.Context, newReq func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, delay); err != nil {
				return nil, err
			}
			delay = min(delay*2, maxDelay)
		}
		if err := c.waitForRateLimit(ctx); err != nil {
			return nil, err
		}

		req, err := newReq()
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			lastErr = err
			continue
		}

		// Success or client error (4xx) - don't retry
		if resp.StatusCode < 500 {
			return resp, nil
		}

		// Server error (5xx) - retry
		resp.Body.Close()
		lastErr = &APIError{Status: resp.StatusCode}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries+1, lastErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// IsNotFound reports whether err means the resource does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

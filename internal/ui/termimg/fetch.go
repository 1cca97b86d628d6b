package termimg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder for image.Decode
	_ "image/jpeg" // Register JPEG decoder for image.Decode
	_ "image/png"  // Register PNG decoder for image.Decode
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

const maxImageBytes = 20 << 20

// ErrNoURL is returned for images without a URL.
var ErrNoURL = errors.New("image has no url")

// Fetcher downloads and decodes images, keeping the raw bytes on disk.
// Concurrent fetches of one URL share a single download.
type Fetcher struct {
	client *http.Client
	cache  *Cache

	mu       sync.Mutex
	inflight map[string]*fetchCall
}

type fetchCall struct {
	done chan struct{}
	img  image.Image
	err  error
}

// NewFetcher creates a fetcher. cache may be nil.
func NewFetcher(client *http.Client, cache *Cache) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{
		client:   client,
		cache:    cache,
		inflight: make(map[string]*fetchCall),
	}
}

// Fetch returns the decoded image at url. A caller joining a fetch already
// in progress stops waiting when its ctx is done.
func (f *Fetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	if url == "" {
		return nil, ErrNoURL
	}

	f.mu.Lock()
	if c, ok := f.inflight[url]; ok {
		f.mu.Unlock()
		select {
		case <-c.done:
			return c.img, c.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	c := &fetchCall{done: make(chan struct{})}
	f.inflight[url] = c
	f.mu.Unlock()

	c.img, c.err = f.fetch(ctx, url)

	f.mu.Lock()
	delete(f.inflight, url)
	f.mu.Unlock()
	close(c.done)

	return c.img, c.err
}

func (f *Fetcher) fetch(ctx context.Context, url string) (image.Image, error) {
	if data := f.cache.Get(url); data != nil {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err == nil {
			return img, nil
		}
		log.Printf("termimg: drop unreadable cache entry for %s: %v", url, err)
		f.cache.Remove(url)
	}

	data, err := f.download(ctx, url)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	if err := f.cache.Put(url, data); err != nil {
		log.Printf("termimg: cache %s: %v", url, err)
	}
	return img, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "image/png,image/jpeg,image/gif")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return data, nil
}

package termimg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_DownloadsDecodesAndCaches(t *testing.T) {
	pngData := createTestPNG(t, 12, 8)
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngData)
	}))
	defer srv.Close()

	dir := t.TempDir()
	cache, err := NewCache(dir)
	require.NoError(t, err)
	f := NewFetcher(srv.Client(), cache)
	url := srv.URL + "/tee.png"

	img, err := f.Fetch(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, 12, img.Bounds().Dx())

	_, err = f.Fetch(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, 1, hits, "second fetch served from disk")

	f2 := NewFetcher(srv.Client(), cache)
	_, err = f2.Fetch(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, 1, hits, "disk cache shared across fetchers")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
	assert.Equal(t, cacheKey(url)+".img", entries[0].Name())
}

func TestFetcher_ConcurrentFetchesShareDownload(t *testing.T) {
	pngData := createTestPNG(t, 6, 6)
	var hits atomic.Int32
	arrived := make(chan struct{}, 2)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		arrived <- struct{}{}
		<-release
		_, _ = w.Write(pngData)
	}))
	defer srv.Close()

	cache, err := NewCache(t.TempDir())
	require.NoError(t, err)
	f := NewFetcher(srv.Client(), cache)
	url := srv.URL + "/cap.png"

	var wg sync.WaitGroup
	errs := make([]error, 2)
	fetch := func(i int) {
		defer wg.Done()
		_, errs[i] = f.Fetch(context.Background(), url)
	}

	wg.Add(1)
	go fetch(0)
	<-arrived // first download is in flight

	wg.Add(1)
	go fetch(1)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetcher_UnreadableCacheEntryRefetched(t *testing.T) {
	pngData := createTestPNG(t, 10, 4)
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write(pngData)
	}))
	defer srv.Close()

	cache, err := NewCache(t.TempDir())
	require.NoError(t, err)
	url := srv.URL + "/tote.png"
	require.NoError(t, cache.Put(url, pngData[:len(pngData)/2]))

	img, err := NewFetcher(srv.Client(), cache).Fetch(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 1, hits)

	// The torn entry was replaced by the downloaded one.
	_, err = NewFetcher(srv.Client(), cache).Fetch(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
	assert.Equal(t, pngData, cache.Get(url))
}

func TestFetcher_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/garbage" {
			_, _ = w.Write([]byte("not an image"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), nil)
	ctx := context.Background()

	_, err := f.Fetch(ctx, "")
	assert.ErrorIs(t, err, ErrNoURL)

	_, err = f.Fetch(ctx, srv.URL+"/missing.png")
	assert.ErrorContains(t, err, "status 404")

	_, err = f.Fetch(ctx, srv.URL+"/garbage")
	assert.ErrorContains(t, err, "decode")
}

func TestCache_NilSafe(t *testing.T) {
	var c *Cache
	assert.Nil(t, c.Get("x"))
	assert.NoError(t, c.Put("x", []byte("y")))
	c.Remove("x")
}

func TestFetcher_KeepsNoDecodedImages(t *testing.T) {
	pngData := createTestPNG(t, 4, 4)
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write(pngData)
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), nil)
	url := srv.URL + "/sock.png"
	for range 2 {
		_, err := f.Fetch(context.Background(), url)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, hits, "without a disk cache every fetch downloads")
	assert.Empty(t, f.inflight)
}

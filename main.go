package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storefront/internal/app"
	"github.com/llehouerou/storefront/internal/catalog"
	"github.com/llehouerou/storefront/internal/commerce"
	"github.com/llehouerou/storefront/internal/config"
	"github.com/llehouerou/storefront/internal/errmsg"
	"github.com/llehouerou/storefront/internal/state"
	"github.com/llehouerou/storefront/internal/ui/termimg"
)

// Offline copies older than this are dropped at startup.
const cacheRetention = 30 * 24 * time.Hour

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpInitialize, err)
	}

	if cfg.DebugLog != "" {
		f, err := tea.LogToFile(cfg.DebugLog, "storefront")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	}

	stateMgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpDatabaseOpen, err)
	}
	defer stateMgr.Close()

	client := commerce.NewClient(commerce.Options{
		BaseURL:        cfg.Backend.URL,
		PublishableKey: cfg.Backend.PublishableKey,
		Timeout:        cfg.Timeout(),
	})
	cache := catalog.NewCache(stateMgr.DB(), cfg.CacheTTL())
	if n, err := cache.Prune(context.Background(), cacheRetention); err != nil {
		log.Printf("prune catalog cache: %v", err)
	} else if n > 0 {
		log.Printf("pruned %d catalog cache entries", n)
	}
	cat := catalog.New(client, cache)

	protocol := termimg.Detect(cfg.ImageProtocol)
	imageCache, err := termimg.NewCache(cfg.Cache.ImageDir)
	if err != nil {
		log.Printf("image cache disabled: %v", err)
	}
	fetcher := termimg.NewFetcher(&http.Client{Timeout: cfg.Timeout()}, imageCache)

	m := app.New(cfg, stateMgr, cat, protocol, fetcher)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		os.Exit(1)
	}
}

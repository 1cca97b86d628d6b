package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/storefront/internal/db"
)

// Cache stores raw JSON responses in the catalog_cache table.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewCache creates a new Cache instance.
func NewCache(db *sql.DB, ttl time.Duration) *Cache {
	return &Cache{db: db, ttl: ttl, now: time.Now}
}

// entry is a cached body with its fetch time.
type entry struct {
	body      []byte
	fetchedAt time.Time
}

func (c *Cache) isExpired(fetchedAt time.Time) bool {
	return c.now().Sub(fetchedAt) > c.ttl
}

// get returns the entry for key, or nil when absent.
func (c *Cache) get(ctx context.Context, key string) (*entry, error) {
	var body []byte
	var fetchedAt sql.NullInt64
	err := c.db.QueryRowContext(ctx, `
		SELECT body, fetched_at FROM catalog_cache WHERE key = ?
	`, key).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry{body: body, fetchedAt: dbutil.UnixTime(fetchedAt)}, nil
}

func (c *Cache) put(ctx context.Context, key string, body []byte) error {
	return dbutil.WithTxContext(ctx, c.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_cache WHERE key = ?`, key); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO catalog_cache (key, body, fetched_at) VALUES (?, ?, ?)
		`, key, body, c.now().Unix())
		return err
	})
}

// Invalidate removes all entries whose key starts with prefix.
func (c *Cache) Invalidate(ctx context.Context, prefix string) error {
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM catalog_cache WHERE substr(key, 1, ?) = ?
	`, len(prefix), prefix)
	return err
}

// Prune removes entries older than maxAge.
func (c *Cache) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	res, err := c.db.ExecContext(ctx, `
		DELETE FROM catalog_cache WHERE fetched_at < ?
	`, c.now().Add(-maxAge).Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Package cache provides a small SQLite-backed byte cache. The application
// uses it only for rendered post markdown, keyed by post id; authorization
// and visibility decisions are never cached.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"go-blog-app/internal/config"
)

// Cache provides a SQLite-based caching mechanism.
type Cache struct {
	db *sqlx.DB
}

// New creates a new Cache instance backed by the SQLite database at the
// configured file path, creating the schema if needed.
func New(cfg config.CacheConfig) (*Cache, error) {
	db, err := sqlx.Connect("sqlite", cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite cache: %w", err)
	}

	// WAL mode is generally better for concurrent readers.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode on sqlite cache: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS render_cache (
		cache_key TEXT PRIMARY KEY,
		value BLOB,
		expires_at INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_render_cache_expires_at ON render_cache (expires_at);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Get retrieves an item from the cache. It returns nil if the item is not
// found or has expired.
func (c *Cache) Get(key string) ([]byte, error) {
	var item struct {
		Value     []byte `db:"value"`
		ExpiresAt int64  `db:"expires_at"`
	}
	err := c.db.Get(&item, `SELECT value, expires_at FROM render_cache WHERE cache_key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // cache miss
		}
		return nil, fmt.Errorf("failed to get item from cache: %w", err)
	}

	if time.Now().Unix() > item.ExpiresAt {
		// Expired; evict best effort and treat as a miss.
		_ = c.Delete(key)
		return nil, nil
	}

	return item.Value, nil
}

// Set adds an item to the cache with a specific TTL.
func (c *Cache) Set(key string, value []byte, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl).Unix()
	_, err := c.db.Exec(`INSERT OR REPLACE INTO render_cache (cache_key, value, expires_at) VALUES (?, ?, ?)`,
		key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set item in cache: %w", err)
	}
	return nil
}

// Delete removes an item from the cache.
func (c *Cache) Delete(key string) error {
	if _, err := c.db.Exec(`DELETE FROM render_cache WHERE cache_key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete item from cache: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

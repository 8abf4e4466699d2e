package docs

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"

	"go.uber.org/zap"

	"github.com/teranos/cmdstub/db"
	"github.com/teranos/cmdstub/errors"
	"github.com/teranos/cmdstub/logger"
)

// PageCache stores downloaded documentation pages keyed by URL
type PageCache struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// OpenPageCache opens (and migrates) the SQLite cache at path
func OpenPageCache(path string) (*PageCache, error) {
	log := logger.ComponentLogger("docs.cache")
	conn, err := db.OpenWithMigrations(path, log)
	if err != nil {
		return nil, errors.WithHintf(
			errors.Wrap(err, "failed to open page cache"),
			"delete %s to start with an empty cache", path)
	}
	return NewPageCache(conn), nil
}

// NewPageCache wraps an already migrated database
func NewPageCache(conn *sql.DB) *PageCache {
	return &PageCache{db: conn, log: logger.ComponentLogger("docs.cache")}
}

func urlHash(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached body for url, found=false on a miss
func (c *PageCache) Get(ctx context.Context, url string) (string, bool, error) {
	const query = `SELECT body FROM pages WHERE url_hash = ?`
	c.trace(query, url)

	var body string
	err := c.db.QueryRowContext(ctx, query, urlHash(url)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to read cached page %s", url)
	}
	return body, true, nil
}

// Put stores or replaces the body for url
func (c *PageCache) Put(ctx context.Context, url, body string) error {
	const query = `INSERT INTO pages (url_hash, url, body) VALUES (?, ?, ?)
		ON CONFLICT(url_hash) DO UPDATE SET body = excluded.body, fetched_at = CURRENT_TIMESTAMP`
	c.trace(query, url)

	if _, err := c.db.ExecContext(ctx, query, urlHash(url), url, body); err != nil {
		return errors.Wrapf(err, "failed to cache page %s", url)
	}
	return nil
}

// Clear removes every cached page and returns how many were dropped
func (c *PageCache) Clear(ctx context.Context) (int64, error) {
	const query = `DELETE FROM pages`
	c.trace(query, "")

	res, err := c.db.ExecContext(ctx, query)
	if err != nil {
		return 0, errors.Wrap(err, "failed to clear page cache")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "failed to count cleared pages")
	}
	return n, nil
}

// Close releases the database
func (c *PageCache) Close() error {
	if err := c.db.Close(); err != nil && !db.IsDatabaseClosed(err) {
		return errors.Wrap(err, "failed to close page cache")
	}
	return nil
}

func (c *PageCache) trace(query, url string) {
	if logger.ShouldOutput(logger.Verbosity, logger.OutputSQL) {
		c.log.Debugw("page cache statement", "sql", query, logger.FieldURL, url)
	}
}

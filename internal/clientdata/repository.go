// Package clientdata provides persistent caching for market-data client
// responses. Series are stored as msgpack blobs with expiration
// timestamps for cache-first behavior. Only successful retrievals are
// ever stored; a provider failure is re-surfaced on every call until a
// fetch succeeds.
package clientdata

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/advisor/internal/domain"
)

// TTLDailyPrices is the default freshness window for cached daily
// close series. A closed trading day never changes, but the tail of a
// range ending today does, so entries expire daily.
const TTLDailyPrices = 24 * time.Hour

// Repository provides cache operations for price series.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new client data repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InitSchema creates the cache table if it does not exist.
func (r *Repository) InitSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS daily_prices (
			request    TEXT PRIMARY KEY,
			data       BLOB NOT NULL,
			expires_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_daily_prices_expires ON daily_prices(expires_at);
	`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create daily_prices table: %w", err)
	}
	return nil
}

// RequestKey builds the cache key for one retrieval request.
// Identical symbol + date range requests share an entry.
func RequestKey(symbol, start, end string) string {
	return symbol + "|" + start + "|" + end
}

// Store saves a successfully retrieved series with expiration = now + ttl.
// Uses INSERT OR REPLACE to upsert.
func (r *Repository) Store(key string, series domain.PriceSeries, ttl time.Duration) error {
	blob, err := msgpack.Marshal(series)
	if err != nil {
		return fmt.Errorf("failed to marshal price series: %w", err)
	}

	expiresAt := time.Now().Add(ttl).Unix()

	_, err = r.db.Exec(
		"INSERT OR REPLACE INTO daily_prices (request, data, expires_at) VALUES (?, ?, ?)",
		key, blob, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store price series: %w", err)
	}

	return nil
}

// GetIfFresh returns a cached series only if expires_at > now.
// Returns nil, nil if the key does not exist or the entry is expired.
func (r *Repository) GetIfFresh(key string) (domain.PriceSeries, error) {
	now := time.Now().Unix()

	var blob []byte
	err := r.db.QueryRow(
		"SELECT data FROM daily_prices WHERE request = ? AND expires_at > ?",
		key, now,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get price series: %w", err)
	}

	var series domain.PriceSeries
	if err := msgpack.Unmarshal(blob, &series); err != nil {
		return nil, fmt.Errorf("failed to unmarshal price series: %w", err)
	}

	return series, nil
}

// Delete removes a specific entry.
func (r *Repository) Delete(key string) error {
	if _, err := r.db.Exec("DELETE FROM daily_prices WHERE request = ?", key); err != nil {
		return fmt.Errorf("failed to delete price series: %w", err)
	}
	return nil
}

// DeleteExpired removes all rows where expires_at < now.
// Returns the number of rows deleted.
func (r *Repository) DeleteExpired() (int64, error) {
	now := time.Now().Unix()

	result, err := r.db.Exec("DELETE FROM daily_prices WHERE expires_at < ?", now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired price series: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

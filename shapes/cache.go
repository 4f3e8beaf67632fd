package shapes

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS shape_runs (
	run_id TEXT PRIMARY KEY,
	started_at_utc TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS route_polylines (
	route_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	encoded TEXT NOT NULL,
	run_id TEXT NOT NULL REFERENCES shape_runs(run_id),
	fetched_at_utc TEXT NOT NULL,
	PRIMARY KEY (route_id, seq)
);
`

// Cache is a sqlite-backed store of fetched encoded polylines so
// repeated runs within the TTL skip the API entirely.
type Cache struct {
	conn *sql.DB
	ttl  time.Duration
}

// OpenCache opens (creating if needed) the polyline cache at path.
func OpenCache(path string, ttl time.Duration) (*Cache, error) {
	dsn := path + "?_journal=WAL&_busy_timeout=5000"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open shape cache: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping shape cache: %w", err)
	}
	if _, err := conn.Exec(cacheSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ensure cache schema: %w", err)
	}
	return &Cache{conn: conn, ttl: ttl}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error { return c.conn.Close() }

// BeginRun records one fetch run and returns its id.
func (c *Cache) BeginRun(ctx context.Context) (string, error) {
	runID := uuid.New().String()
	_, err := c.conn.ExecContext(ctx,
		"INSERT INTO shape_runs (run_id, started_at_utc) VALUES (?, ?)",
		runID, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("record shape run: %w", err)
	}
	return runID, nil
}

// Get returns the cached polylines for a route when they are fresher
// than the TTL. A stale or missing entry reports ok=false.
func (c *Cache) Get(ctx context.Context, routeID string) ([]string, bool) {
	cutoff := time.Now().UTC().Add(-c.ttl).Format(time.RFC3339)
	rows, err := c.conn.QueryContext(ctx, `
		SELECT encoded FROM route_polylines
		WHERE route_id = ? AND fetched_at_utc >= ?
		ORDER BY seq
	`, routeID, cutoff)
	if err != nil {
		return nil, false
	}
	defer rows.Close()

	var polylines []string
	for rows.Next() {
		var enc string
		if err := rows.Scan(&enc); err != nil {
			return nil, false
		}
		polylines = append(polylines, enc)
	}
	if rows.Err() != nil || len(polylines) == 0 {
		return nil, false
	}
	return polylines, true
}

// Put replaces a route's cached polylines with a freshly fetched set.
func (c *Cache) Put(ctx context.Context, runID, routeID string, polylines []string) error {
	tx, err := c.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache write: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM route_polylines WHERE route_id = ?", routeID); err != nil {
		return fmt.Errorf("evict route %s: %w", routeID, err)
	}
	fetchedAt := time.Now().UTC().Format(time.RFC3339)
	for i, enc := range polylines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO route_polylines (route_id, seq, encoded, run_id, fetched_at_utc)
			VALUES (?, ?, ?, ?, ?)
		`, routeID, i, enc, runID, fetchedAt)
		if err != nil {
			return fmt.Errorf("cache route %s: %w", routeID, err)
		}
	}
	return tx.Commit()
}

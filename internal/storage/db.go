package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

const defaultQueryTimeout = 5 * time.Second

// Repository is the SQLite-backed ping store. It owns durability only;
// status derivation happens in the services layer.
type Repository struct {
	db           *sql.DB
	logger       *slog.Logger
	queryTimeout time.Duration
}

// New opens the database at dbPath and runs migrations. The pool is capped
// at one open connection, which serializes writers the way SQLite expects.
func New(ctx context.Context, dbPath string, queryTimeout time.Duration, logger *slog.Logger) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}

	repo := &Repository{db: db, logger: logger, queryTimeout: queryTimeout}
	if err := repo.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Debug("ping store ready", "path", dbPath)
	return repo, nil
}

// Close closes the underlying connection pool.
func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SQLDB returns the low-level sql.DB for callers requiring direct access.
func (r *Repository) SQLDB() *sql.DB {
	if r == nil {
		return nil
	}
	return r.db
}

func (r *Repository) migrate(ctx context.Context) error {
	statements := []string{
		`PRAGMA journal_mode = WAL;`,
		`CREATE TABLE IF NOT EXISTS pings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			device_id TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'received'
		);`,
		`CREATE INDEX IF NOT EXISTS idx_pings_device_id ON pings(device_id);`,
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate failed: %w", err)
		}
	}
	return nil
}

// opContext bounds one store operation. Expiry surfaces through the
// operation's own error classification.
func (r *Repository) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.queryTimeout)
}

// formatTimestamp renders a UTC instant at second precision. The fixed
// width keeps SQL MAX and ORDER BY on the text column chronological.
func formatTimestamp(ts time.Time) string {
	return ts.UTC().Truncate(time.Second).Format(time.RFC3339)
}

func parseTimestamp(value string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return ts.UTC(), nil
}

package weather

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/chrissnell/solarestimate/pkg/migrate"
	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store persists climatology responses in SQLite so that they survive restarts.
// Coordinates are rounded to four decimals before they are used as keys.
type Store struct {
	db     *sql.DB
	dbPath string
	maxAge time.Duration
}

// NewStore opens (creating if needed) the SQLite database at dbPath. Entries
// older than maxAge are ignored; a zero maxAge keeps them forever.
func NewStore(dbPath string, maxAge time.Duration) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	m := migrate.NewMigrator(db, migrate.NewFSProvider(migrations, "migrations", ""), nil)
	if err := m.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate climatology store: %w", err)
	}

	return &Store{db: db, dbPath: dbPath, maxAge: maxAge}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the stored climatology, or nil when there is no fresh entry
func (s *Store) Get(ctx context.Context, parameter string, lat, lon float64) (*climatology, error) {
	var payload []byte
	var fetchedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM climatology WHERE parameter = ? AND latitude = ? AND longitude = ?`,
		parameter, roundCoord(lat), roundCoord(lon),
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query climatology: %w", err)
	}

	if s.maxAge > 0 && time.Since(time.Unix(fetchedAt, 0)) > s.maxAge {
		return nil, nil
	}

	clim := &climatology{}
	if err := msgpack.Unmarshal(payload, clim); err != nil {
		return nil, fmt.Errorf("failed to decode climatology payload: %w", err)
	}
	return clim, nil
}

// Put inserts or replaces an entry
func (s *Store) Put(ctx context.Context, parameter string, lat, lon float64, clim *climatology) error {
	payload, err := msgpack.Marshal(clim)
	if err != nil {
		return fmt.Errorf("failed to encode climatology payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO climatology (parameter, latitude, longitude, payload, fetched_at) VALUES (?, ?, ?, ?, ?)`,
		parameter, roundCoord(lat), roundCoord(lon), payload, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store climatology: %w", err)
	}
	return nil
}

// Prune deletes entries older than maxAge and reports how many were removed
func (s *Store) Prune(ctx context.Context) (int64, error) {
	if s.maxAge <= 0 {
		return 0, nil
	}
	cutoff := time.Now().Add(-s.maxAge).Unix()
	res, err := s.db.ExecContext(ctx, `DELETE FROM climatology WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune climatology: %w", err)
	}
	return res.RowsAffected()
}

func roundCoord(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

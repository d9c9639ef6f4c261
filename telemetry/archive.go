package telemetry

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// ErrArchiveClosed is returned by every Archive method after Close.
var ErrArchiveClosed = errors.New("archive is not open")

// Archive keeps world snapshots in a SQLite database keyed by tick.
// Saving a tick twice replaces the earlier snapshot.
type Archive struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// OpenArchive opens or creates the database at path.
func OpenArchive(ctx context.Context, path string) (*Archive, error) {
	if path == "" {
		return nil, errors.New("archive path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := createArchiveTables(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Archive{path: path, db: db}, nil
}

// Path returns the database file path.
func (a *Archive) Path() string { return a.path }

// Save stores snap under its tick.
func (a *Archive) Save(ctx context.Context, snap *Snapshot) error {
	db, err := a.getDB()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := snap.Encode(&buf); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO snapshots (tick, name, version, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(tick) DO UPDATE SET
			name = excluded.name,
			version = excluded.version,
			payload = excluded.payload
	`, snap.Tick, snap.Name, snap.Version, buf.Bytes())
	return err
}

// Load returns the snapshot stored for tick. ok is false if there is none.
func (a *Archive) Load(ctx context.Context, tick int) (snap *Snapshot, ok bool, err error) {
	db, err := a.getDB()
	if err != nil {
		return nil, false, err
	}
	return scanSnapshot(db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE tick = ?`, tick))
}

// Latest returns the snapshot with the highest tick. ok is false if the
// archive is empty.
func (a *Archive) Latest(ctx context.Context) (snap *Snapshot, ok bool, err error) {
	db, err := a.getDB()
	if err != nil {
		return nil, false, err
	}
	return scanSnapshot(db.QueryRowContext(ctx, `SELECT payload FROM snapshots ORDER BY tick DESC LIMIT 1`))
}

// Ticks lists the archived ticks in ascending order.
func (a *Archive) Ticks(ctx context.Context) ([]int, error) {
	db, err := a.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT tick FROM snapshots ORDER BY tick`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ticks []int
	for rows.Next() {
		var tick int
		if err := rows.Scan(&tick); err != nil {
			return nil, err
		}
		ticks = append(ticks, tick)
	}
	return ticks, rows.Err()
}

// Close closes the database. Further calls return ErrArchiveClosed.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *Archive) getDB() (*sql.DB, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.db == nil {
		return nil, ErrArchiveClosed
	}
	return a.db, nil
}

func scanSnapshot(row *sql.Row) (*Snapshot, bool, error) {
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	snap, err := DecodeSnapshot(bytes.NewReader(payload))
	if err != nil {
		return nil, false, err
	}
	return snap, true, nil
}

func createArchiveTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			tick INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
	`)
	return err
}

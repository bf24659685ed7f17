// Package sqlite implements the repository contracts over an embedded SQLite
// database for single-node deployments. UUIDs and timestamps are stored as
// text; equipment lists as JSON.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	role TEXT NOT NULL,
	department TEXT NOT NULL,
	profile_image TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS departments (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	code TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	icon TEXT NOT NULL,
	color TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS resources (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	department_id TEXT NOT NULL REFERENCES departments(id),
	capacity INTEGER NOT NULL,
	equipment TEXT NOT NULL DEFAULT '[]',
	description TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL,
	is_active INTEGER NOT NULL DEFAULT 1,
	requires_approval INTEGER NOT NULL DEFAULT 0,
	working_hours_start TEXT NOT NULL DEFAULT '09:00',
	working_hours_end TEXT NOT NULL DEFAULT '15:00',
	has_working_hours INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bookings (
	id TEXT PRIMARY KEY,
	resource_id TEXT NOT NULL REFERENCES resources(id),
	user_id TEXT NOT NULL REFERENCES users(id),
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	status TEXT NOT NULL,
	purpose TEXT NOT NULL,
	attendees INTEGER NOT NULL,
	approved_by TEXT,
	approved_at TEXT,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bookings_resource ON bookings(resource_id);
CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings(user_id);
`

// Store implements repository.Store over SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral database.
func NewStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// modernc sqlite serializes writers; a single connection avoids
	// SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// text/parse helpers shared by the entity files

// timeLayout keeps the fractional part fixed-width, unlike RFC3339Nano which
// strips trailing zeros. All timestamps are normalized to UTC, so the stored
// strings order lexicographically and text comparisons in SQL stay correct.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t, nil
}

func formatNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatNullUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func parseNullUUID(s sql.NullString) (*uuid.UUID, error) {
	if !s.Valid {
		return nil, nil
	}
	id, err := uuid.Parse(s.String)
	if err != nil {
		return nil, fmt.Errorf("invalid stored uuid %q: %w", s.String, err)
	}
	return &id, nil
}

func marshalEquipment(equipment []string) (string, error) {
	if equipment == nil {
		return "[]", nil
	}
	data, err := json.Marshal(equipment)
	if err != nil {
		return "", fmt.Errorf("failed to marshal equipment: %w", err)
	}
	return string(data), nil
}

func unmarshalEquipment(raw string) ([]string, error) {
	var equipment []string
	if err := json.Unmarshal([]byte(raw), &equipment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal equipment: %w", err)
	}
	if len(equipment) == 0 {
		return nil, nil
	}
	return equipment, nil
}

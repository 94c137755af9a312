package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vovakirdan/presence-server/internal/store"
)

// Schema creates the journal table.
const Schema = `
CREATE TABLE IF NOT EXISTS journal (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	kind       TEXT    NOT NULL,
	room_id    TEXT    NOT NULL,
	user_id    TEXT    NOT NULL,
	nick       TEXT    NOT NULL,
	capacity   TEXT    NOT NULL DEFAULT '0',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_journal_room ON journal(room_id, id);
`

// SQLiteStore implements store.Journal for SQLite.
// Ids are stored as decimal text because SQLite integers are signed.
type SQLiteStore struct {
	db *sql.DB
}

// New opens the journal at dbPath and applies the schema.
func New(dbPath string) (*SQLiteStore, error) {
	return NewWithSetup(dbPath, func(db *sql.DB) error {
		_, err := db.Exec(Schema)
		return err
	})
}

// NewWithSetup creates a new SQLite store and runs a setup function.
// Useful for tests to apply schema against ":memory:".
func NewWithSetup(dbPath string, setup func(*sql.DB) error) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection; it also keeps ":memory:" on one database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if setup != nil {
		if err := setup(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Append stores a journal record.
func (s *SQLiteStore) Append(ctx context.Context, rec store.Record) error {
	query := `
		INSERT INTO journal (kind, room_id, user_id, nick, capacity, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, query,
		string(rec.Kind),
		formatUint(rec.RoomID),
		formatUint(rec.UserID),
		rec.Nick,
		formatUint(rec.Capacity),
		createdAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert journal record: %w", err)
	}
	return nil
}

// ListRoom returns the records of a room in insertion order.
func (s *SQLiteStore) ListRoom(ctx context.Context, roomID uint64) ([]store.Record, error) {
	query := `
		SELECT id, kind, room_id, user_id, nick, capacity, created_at
		FROM journal
		WHERE room_id = ?
		ORDER BY id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, formatUint(roomID))
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var records []store.Record
	for rows.Next() {
		var (
			rec                       store.Record
			kind, room, user, capText string
		)
		if err := rows.Scan(&rec.ID, &kind, &room, &user, &rec.Nick, &capText, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan journal record: %w", err)
		}
		rec.Kind = store.RecordKind(kind)
		if rec.RoomID, err = strconv.ParseUint(room, 10, 64); err != nil {
			return nil, fmt.Errorf("parse room id: %w", err)
		}
		if rec.UserID, err = strconv.ParseUint(user, 10, 64); err != nil {
			return nil, fmt.Errorf("parse user id: %w", err)
		}
		if rec.Capacity, err = strconv.ParseUint(capText, 10, 64); err != nil {
			return nil, fmt.Errorf("parse capacity: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return records, nil
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

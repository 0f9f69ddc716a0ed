package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/sipcalc/sip-calculator/internal/domain"
)

// SQLiteStore persists the list to a SQLite database. Position 0 is the newest entry.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at path and runs migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store: path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS history_entries (
		position       INTEGER PRIMARY KEY,
		id             TEXT NOT NULL,
		timestamp      INTEGER NOT NULL,
		label          TEXT NOT NULL,
		total_invested TEXT NOT NULL,
		total_value    TEXT NOT NULL
	)`)
	return err
}

func (s *SQLiteStore) Load(ctx context.Context) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, timestamp, label, total_invested, total_value
		FROM history_entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var (
			e               domain.HistoryEntry
			ts              int64
			invested, value string
		)
		if err := rows.Scan(&e.ID, &ts, &e.Label, &invested, &value); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.Timestamp = time.Unix(0, ts).UTC()
		if e.TotalInvested, err = decimal.NewFromString(invested); err != nil {
			return nil, fmt.Errorf("entry %s: total_invested: %w", e.ID, err)
		}
		if e.TotalValue, err = decimal.NewFromString(value); err != nil {
			return nil, fmt.Errorf("entry %s: total_value: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Save replaces the stored list in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, entries []domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM history_entries`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	for i, e := range entries {
		if _, err := tx.ExecContext(ctx, `INSERT INTO history_entries
			(position, id, timestamp, label, total_invested, total_value)
			VALUES (?,?,?,?,?,?)`,
			i, e.ID, e.Timestamp.UnixNano(), e.Label, e.TotalInvested.String(), e.TotalValue.String(),
		); err != nil {
			return fmt.Errorf("insert history entry %s: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

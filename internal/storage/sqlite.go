// Package storage provides SQLite-based persistence for the automation
// report journal. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
//
// The journal is an operational audit of the egress integration: every
// attempted outcome report is recorded with its delivery status so a stuck
// automation endpoint is visible after the fact. It is not a scoreboard.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the report journal.
type Store struct {
	db *sql.DB
}

// DeliveryEntry is one journaled outcome report.
type DeliveryEntry struct {
	ID        int64
	Score     int
	Outcome   string
	Delivered bool
	Attempts  int
	Error     string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path. It creates
// the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS report_deliveries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			delivered INTEGER NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_report_deliveries_created
			ON report_deliveries(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordDelivery journals one report attempt. deliverErr is nil for a
// successful delivery. Returns the ID of the inserted record.
func (s *Store) RecordDelivery(score int, outcome string, attempts int, deliverErr error) (int64, error) {
	delivered := 0
	errText := ""
	if deliverErr == nil {
		delivered = 1
	} else {
		errText = deliverErr.Error()
	}

	result, err := s.db.Exec(
		"INSERT INTO report_deliveries (score, outcome, delivered, attempts, error) VALUES (?, ?, ?, ?, ?)",
		score, outcome, delivered, attempts, errText,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record delivery: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Recent retrieves the most recent journal entries, newest first.
func (s *Store) Recent(limit int) ([]DeliveryEntry, error) {
	return s.query(
		`SELECT id, score, outcome, delivered, attempts, error, created_at
		 FROM report_deliveries
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, limit)
}

// Undelivered retrieves entries whose delivery failed, newest first.
func (s *Store) Undelivered(limit int) ([]DeliveryEntry, error) {
	return s.query(
		`SELECT id, score, outcome, delivered, attempts, error, created_at
		 FROM report_deliveries
		 WHERE delivered = 0
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, limit)
}

func (s *Store) query(q string, limit int) ([]DeliveryEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(q, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query deliveries: %w", err)
	}
	defer rows.Close()

	var entries []DeliveryEntry
	for rows.Next() {
		var e DeliveryEntry
		var delivered int
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Score, &e.Outcome, &delivered, &e.Attempts, &e.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Delivered = delivered != 0

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

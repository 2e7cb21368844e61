package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jwulff/strata/internal/timeline"

	_ "modernc.org/sqlite"
)

// Store provides access to a catalog database.
type Store struct {
	db *sql.DB
}

// DefaultDBPath returns the default database path.
func DefaultDBPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "strata", "catalog.sqlite")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "strata", "catalog.sqlite")
}

// Open opens an existing database in read-only mode with WAL.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_journal_mode=WAL", path)
	return open(dsn)
}

// Create opens path for writing, creating the file and schema if needed.
func Create(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	s, err := open(fmt.Sprintf("file:%s?mode=rwc&_journal_mode=WAL", path))
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Exec(Schema); err != nil {
		s.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return s, nil
}

func open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Periods returns all periods ordered by begin time.
func (s *Store) Periods() ([]timeline.Period, error) {
	rows, err := s.db.Query(`
		SELECT name, beginTime, endTime, color
		FROM periods
		ORDER BY beginTime ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query periods: %w", err)
	}
	defer rows.Close()

	var periods []timeline.Period
	for rows.Next() {
		var p timeline.Period
		var color int64
		if err := rows.Scan(&p.Name, &p.Begin, &p.End, &color); err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		p.Color = unpackColor(color)
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// Events returns all events ordered by occurrence time.
func (s *Store) Events() ([]timeline.HistoricalEvent, error) {
	rows, err := s.db.Query(`
		SELECT occurrenceTime, title, description
		FROM events
		ORDER BY occurrenceTime ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []timeline.HistoricalEvent
	for rows.Next() {
		var e timeline.HistoricalEvent
		if err := rows.Scan(&e.Time, &e.Title, &e.Description); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ReplaceCatalog swaps the stored periods and events in one transaction.
func (s *Store) ReplaceCatalog(periods []timeline.Period, events []timeline.HistoricalEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM periods`); err != nil {
		return fmt.Errorf("clear periods: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM events`); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}

	for _, p := range periods {
		if _, err := tx.Exec(`INSERT INTO periods (name, beginTime, endTime, color) VALUES (?, ?, ?, ?)`,
			p.Name, p.Begin, p.End, packColor(p.Color)); err != nil {
			return fmt.Errorf("insert period %q: %w", p.Name, err)
		}
	}
	for _, e := range events {
		if _, err := tx.Exec(`INSERT INTO events (occurrenceTime, title, description) VALUES (?, ?, ?)`,
			e.Time, e.Title, e.Description); err != nil {
			return fmt.Errorf("insert event %q: %w", e.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func packColor(c timeline.RGB) int64 {
	return int64(c.R)<<16 | int64(c.G)<<8 | int64(c.B)
}

func unpackColor(v int64) timeline.RGB {
	return timeline.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

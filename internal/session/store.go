// Package session persists computed strand sets in DuckDB. It replaces
// ambient save-on-exit state with an explicit store: callers decide when a
// session is saved and when one is loaded back.
package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding saved sessions.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path. Use an empty
// string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create session directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			name VARCHAR PRIMARY KEY,
			uuid VARCHAR,
			theta_b DOUBLE,
			z_b DOUBLE,
			z_mate DOUBLE,
			g DOUBLE,
			b INTEGER,
			d DOUBLE
		)`,
		`CREATE TABLE IF NOT EXISTS strands (
			session VARCHAR,
			idx INTEGER,
			name VARCHAR,
			closed BOOLEAN,
			color_r INTEGER,
			color_g INTEGER,
			color_b INTEGER,
			auto_color BOOLEAN,
			thickness INTEGER,
			auto_thickness BOOLEAN,
			PRIMARY KEY (session, idx)
		)`,
		`CREATE TABLE IF NOT EXISTS points (
			session VARCHAR,
			strand_idx INTEGER,
			item_idx INTEGER,
			kind VARCHAR,
			direction INTEGER,
			domain_idx INTEGER,
			x DOUBLE,
			z DOUBLE,
			angle DOUBLE,
			base VARCHAR,
			junctable BOOLEAN,
			junction BOOLEAN,
			juncmate_strand INTEGER,
			juncmate_item INTEGER,
			matching_strand INTEGER,
			matching_item INTEGER,
			PRIMARY KEY (session, strand_idx, item_idx)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Sessions lists the saved session names.
func (s *Store) Sessions() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM sessions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a saved session and its rows.
func (s *Store) Delete(name string) error {
	for _, table := range []string{"points", "strands", "sessions"} {
		col := "session"
		if table == "sessions" {
			col = "name"
		}
		if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, col), name); err != nil {
			return fmt.Errorf("delete session %q: %w", name, err)
		}
	}
	return nil
}

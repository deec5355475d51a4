// Package db is the SQLite layer for guild state that outgrows the flat
// datastore: elections and role menus.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	sql  *sql.DB
	path string
}

// Open opens (or creates) the SQLite database and bootstraps the schema.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_fk=on", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{sql: conn, path: path}
	if err := db.bootstrap(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Path returns the database file path, for backups.
func (d *DB) Path() string {
	return d.path
}

func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) bootstrap() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS elections (
			guild_id   TEXT PRIMARY KEY,
			expiry     TIMESTAMP NOT NULL,
			channel_id TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS votes (
			guild_id     TEXT NOT NULL,
			member_id    TEXT NOT NULL,
			candidate_id TEXT NOT NULL,
			PRIMARY KEY (guild_id, member_id)
		);`,
		`CREATE TABLE IF NOT EXISTS role_menus (
			message_id TEXT PRIMARY KEY,
			guild_id   TEXT NOT NULL,
			channel_id TEXT NOT NULL,
			author_id  TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS role_options (
			message_id  TEXT NOT NULL,
			role_id     TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (message_id, role_id)
		);`,
	}

	for _, stmt := range schema {
		if _, err := d.sql.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is a CredentialStore backed by a local SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and migrates) the credential database at dbPath
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Expand ~ in path
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// migrate creates the necessary tables
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS tokens (
			user_id TEXT PRIMARY KEY,
			token TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS room_contexts (
			user_id TEXT PRIMARY KEY,
			state TEXT NOT NULL UNIQUE,
			room_id TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_room_contexts_state ON room_contexts(state);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveToken stores the access token for a user
func (s *SQLiteStore) SaveToken(userID, token string) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO tokens (user_id, token, updated_at)
		VALUES (?, ?, ?)
	`, userID, token, time.Now())

	return err
}

// Token retrieves the stored token for a user
func (s *SQLiteStore) Token(userID string) (string, error) {
	row := s.db.QueryRow(`SELECT token FROM tokens WHERE user_id = ?`, userID)

	var token string
	if err := row.Scan(&token); err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", err
	}

	return token, nil
}

// DeleteToken removes the stored token for a user
func (s *SQLiteStore) DeleteToken(userID string) error {
	_, err := s.db.Exec(`DELETE FROM tokens WHERE user_id = ?`, userID)
	return err
}

// SaveRoomContext records a pending OAuth interaction context.
// The user_id primary key makes a repeated connect replace any
// earlier pending context for the same user.
func (s *SQLiteStore) SaveRoomContext(state, userID, roomID string) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO room_contexts (user_id, state, room_id, created_at)
		VALUES (?, ?, ?, ?)
	`, userID, state, roomID, time.Now())

	return err
}

// RoomContext resolves a pending context by OAuth state value
func (s *SQLiteStore) RoomContext(state string) (string, string, error) {
	row := s.db.QueryRow(`
		SELECT user_id, room_id FROM room_contexts WHERE state = ?
	`, state)

	var userID, roomID string
	if err := row.Scan(&userID, &roomID); err != nil {
		if err == sql.ErrNoRows {
			return "", "", ErrNotFound
		}
		return "", "", err
	}

	return userID, roomID, nil
}

// DeleteRoomContext removes a pending context once consumed
func (s *SQLiteStore) DeleteRoomContext(state string) error {
	_, err := s.db.Exec(`DELETE FROM room_contexts WHERE state = ?`, state)
	return err
}

package store

import (
	"os"
	"path/filepath"
	"testing"
)

// createTestStore creates a SQLite store on a temp database for testing
func createTestStore(t *testing.T) (*SQLiteStore, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "store-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to create SQLiteStore: %v", err)
	}

	cleanup := func() {
		s.Close()
		os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

func TestTokenRoundTrip(t *testing.T) {
	s, cleanup := createTestStore(t)
	defer cleanup()

	if _, err := s.Token("u1"); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound for missing token, got %v", err)
	}

	if err := s.SaveToken("u1", "tok-aaa"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}

	tok, err := s.Token("u1")
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if tok != "tok-aaa" {
		t.Errorf("Expected 'tok-aaa', got '%s'", tok)
	}
}

func TestTokenLastWriteWins(t *testing.T) {
	s, cleanup := createTestStore(t)
	defer cleanup()

	if err := s.SaveToken("u1", "tok-old"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}
	if err := s.SaveToken("u1", "tok-new"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}

	tok, err := s.Token("u1")
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if tok != "tok-new" {
		t.Errorf("Expected 'tok-new', got '%s'", tok)
	}
}

func TestDeleteToken(t *testing.T) {
	s, cleanup := createTestStore(t)
	defer cleanup()

	if err := s.SaveToken("u1", "tok"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}
	if err := s.DeleteToken("u1"); err != nil {
		t.Fatalf("DeleteToken failed: %v", err)
	}
	if _, err := s.Token("u1"); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	// Deleting a missing token is not an error
	if err := s.DeleteToken("u2"); err != nil {
		t.Errorf("DeleteToken for missing user failed: %v", err)
	}
}

func TestRoomContextRoundTrip(t *testing.T) {
	s, cleanup := createTestStore(t)
	defer cleanup()

	if _, _, err := s.RoomContext("state-1"); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound for missing context, got %v", err)
	}

	if err := s.SaveRoomContext("state-1", "u1", "room-9"); err != nil {
		t.Fatalf("SaveRoomContext failed: %v", err)
	}

	userID, roomID, err := s.RoomContext("state-1")
	if err != nil {
		t.Fatalf("RoomContext failed: %v", err)
	}
	if userID != "u1" || roomID != "room-9" {
		t.Errorf("Expected (u1, room-9), got (%s, %s)", userID, roomID)
	}
}

func TestRoomContextOnePendingPerUser(t *testing.T) {
	s, cleanup := createTestStore(t)
	defer cleanup()

	if err := s.SaveRoomContext("state-old", "u1", "room-old"); err != nil {
		t.Fatalf("SaveRoomContext failed: %v", err)
	}
	if err := s.SaveRoomContext("state-new", "u1", "room-new"); err != nil {
		t.Fatalf("SaveRoomContext failed: %v", err)
	}

	// The earlier context is replaced, not kept alongside
	if _, _, err := s.RoomContext("state-old"); err != ErrNotFound {
		t.Errorf("Expected stale state to be gone, got %v", err)
	}

	userID, roomID, err := s.RoomContext("state-new")
	if err != nil {
		t.Fatalf("RoomContext failed: %v", err)
	}
	if userID != "u1" || roomID != "room-new" {
		t.Errorf("Expected (u1, room-new), got (%s, %s)", userID, roomID)
	}
}

func TestDeleteRoomContext(t *testing.T) {
	s, cleanup := createTestStore(t)
	defer cleanup()

	if err := s.SaveRoomContext("state-1", "u1", "room-1"); err != nil {
		t.Fatalf("SaveRoomContext failed: %v", err)
	}
	if err := s.DeleteRoomContext("state-1"); err != nil {
		t.Fatalf("DeleteRoomContext failed: %v", err)
	}
	if _, _, err := s.RoomContext("state-1"); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	s, cleanup := createTestStore(t)
	defer cleanup()

	if err := s.SaveToken("u1", "tok-1"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}
	if err := s.SaveToken("u2", "tok-2"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}
	if err := s.DeleteToken("u1"); err != nil {
		t.Fatalf("DeleteToken failed: %v", err)
	}

	tok, err := s.Token("u2")
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if tok != "tok-2" {
		t.Errorf("Expected 'tok-2', got '%s'", tok)
	}
}

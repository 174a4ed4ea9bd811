package store

import "errors"

// ErrNotFound is returned when no record exists for a user.
var ErrNotFound = errors.New("record not found")

// CredentialStore persists per-user Asana access tokens and transient
// OAuth interaction context. Each operation is independently atomic;
// writes are last-write-wins per user.
type CredentialStore interface {
	// SaveToken stores the access token for a user, replacing any
	// existing token.
	SaveToken(userID, token string) error

	// Token returns the stored token for a user, or ErrNotFound.
	Token(userID string) (string, error)

	// DeleteToken removes the stored token for a user. Removing a
	// missing token is not an error.
	DeleteToken(userID string) error

	// SaveRoomContext records the room an in-flight OAuth redirect
	// should notify, keyed by the state value issued with the
	// authorization URL. At most one pending context per user.
	SaveRoomContext(state, userID, roomID string) error

	// RoomContext resolves a pending context by state, or ErrNotFound.
	RoomContext(state string) (userID, roomID string, err error)

	// DeleteRoomContext removes a pending context once consumed.
	DeleteRoomContext(state string) error
}

package storage

import "context"

// SessionStorage defines interface for storing the session on client.
// This is the lowest storage layer - it works with the already signed session
// blob and doesn't sign or verify anything itself.
type SessionStorage interface {
	// SaveSession stores the signed session as-is
	SaveSession(ctx context.Context, signed []byte) error

	// GetSession retrieves the signed session
	// Returns ErrSessionNotFound if no session exists
	GetSession(ctx context.Context) ([]byte, error)

	// DeleteSession removes the stored session (logout)
	// Returns ErrSessionNotFound if no session exists
	DeleteSession(ctx context.Context) error
}

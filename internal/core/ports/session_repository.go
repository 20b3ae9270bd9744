package ports

import "context"

// SessionRepository stores login sessions keyed by the opaque signature
// segment of an issued token. Presence of a row is the sole definition of
// "logged in"; rows never expire on their own.
type SessionRepository interface {
	Create(ctx context.Context, signature string, userID int64) error
	Exists(ctx context.Context, signature string) (bool, error)
	// Delete is a no-op when the signature was never stored.
	Delete(ctx context.Context, signature string) error
}

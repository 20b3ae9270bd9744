package ports

import (
	"context"

	"github.com/pizzahub/pizza-service/internal/core/domain"
)

// AuthService owns registration, login/logout and the session lifecycle.
type AuthService interface {
	// Register creates the account with exactly one diner grant, ignoring
	// any roles on the input, then issues a token and opens a session.
	// Privileged accounts come from the admin seed or an existing admin,
	// never from self-registration.
	Register(ctx context.Context, user *domain.User, password string) (*domain.User, string, error)

	// Login verifies the credentials and opens a new session. Unknown email
	// and wrong password both return domain.ErrUnknownUser.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)

	// Logout revokes the session of the presented token. Revoking an absent
	// session is a no-op.
	Logout(ctx context.Context, token string) error

	// Authenticate resolves a presented token to its user: the token must
	// parse and verify, and its signature must have an active session.
	Authenticate(ctx context.Context, token string) (*domain.User, error)

	// UpdateUser applies a partial update; empty fields are left unchanged
	// and a supplied password is re-hashed.
	UpdateUser(ctx context.Context, userID int64, email, password string) (*domain.User, error)
}

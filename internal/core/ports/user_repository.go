package ports

import (
	"context"

	"github.com/pizzahub/pizza-service/internal/core/domain"
)

// UserRepository persists accounts and their role assignments.
type UserRepository interface {
	// Add inserts the user and one row per role assignment. PasswordHash
	// must already be set. Franchisee grants carrying only a franchise name
	// are resolved to a franchise id; unknown names fail the whole add.
	Add(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByEmail returns the user with roles and password hash populated,
	// or domain.ErrUnknownUser.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update applies a partial update. Empty email or passwordHash means
	// "leave unchanged"; with both empty it is a read. All fields are bound
	// through placeholders. Returns the record as stored afterwards.
	Update(ctx context.Context, userID int64, email, passwordHash string) (*domain.User, error)
}

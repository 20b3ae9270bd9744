package ports

import (
	"context"

	"github.com/pizzahub/pizza-service/internal/core/domain"
)

// FranchiseRepository persists franchises and their stores.
type FranchiseRepository interface {
	// ListSummaries returns every franchise with id, name and bare stores.
	// This is the shape unprivileged callers receive.
	ListSummaries(ctx context.Context) ([]*domain.Franchise, error)

	// ListDetailed returns every franchise enriched with its admin list and
	// per-store total revenue (zero for stores with no orders).
	ListDetailed(ctx context.Context) ([]*domain.Franchise, error)

	// Get returns one franchise in the detailed shape, or
	// domain.ErrFranchiseNotFound.
	Get(ctx context.Context, franchiseID int64) (*domain.Franchise, error)

	// ListForUser returns the detailed franchises the user holds a
	// franchisee grant for.
	ListForUser(ctx context.Context, userID int64) ([]*domain.Franchise, error)

	// Create inserts the franchise after resolving every admin email to an
	// existing user, then records a franchisee grant per admin.
	Create(ctx context.Context, franchise *domain.Franchise) (*domain.Franchise, error)

	// Delete removes the franchise, its stores and every role grant scoped
	// to it as one atomic unit. Partial deletion is never observable; any
	// failure rolls back and reports domain.ErrFranchiseDelete.
	Delete(ctx context.Context, franchiseID int64) error

	CreateStore(ctx context.Context, franchiseID int64, store *domain.Store) (*domain.Store, error)
	DeleteStore(ctx context.Context, franchiseID, storeID int64) error
}

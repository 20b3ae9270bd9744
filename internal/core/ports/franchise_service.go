package ports

import (
	"context"

	"github.com/pizzahub/pizza-service/internal/core/domain"
)

// FranchiseService applies role-scoped visibility on top of the repository.
type FranchiseService interface {
	// List returns every franchise. Admin callers receive the detailed
	// shape (admins, per-store revenue); everyone else the summary shape.
	List(ctx context.Context, authUser *domain.User) ([]*domain.Franchise, error)

	// ListForUser returns the franchises userID administers when the caller
	// is that user or an admin, and an empty list otherwise.
	ListForUser(ctx context.Context, authUser *domain.User, userID int64) ([]*domain.Franchise, error)

	Create(ctx context.Context, franchise *domain.Franchise) (*domain.Franchise, error)
	Delete(ctx context.Context, franchiseID int64) error

	// CreateStore requires the caller to be an admin or an admin of the
	// franchise itself.
	CreateStore(ctx context.Context, authUser *domain.User, franchiseID int64, store *domain.Store) (*domain.Store, error)
	DeleteStore(ctx context.Context, authUser *domain.User, franchiseID, storeID int64) error
}

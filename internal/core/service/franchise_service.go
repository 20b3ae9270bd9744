package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pizzahub/pizza-service/internal/core/domain"
	"github.com/pizzahub/pizza-service/internal/core/ports"
)

// FranchiseService applies role-scoped visibility over the franchise
// repository. Admin identity and revenue are privileged fields; the service
// decides which repository shape a caller may see.
type FranchiseService struct {
	franchises ports.FranchiseRepository
	log        zerolog.Logger
}

func NewFranchiseService(franchises ports.FranchiseRepository, log zerolog.Logger) *FranchiseService {
	return &FranchiseService{franchises: franchises, log: log}
}

// List returns every franchise. Admin callers get the detailed shape with
// admin lists and per-store revenue; everyone else gets id/name/stores only.
func (s *FranchiseService) List(ctx context.Context, authUser *domain.User) ([]*domain.Franchise, error) {
	if authUser.IsRole(domain.RoleAdmin) {
		return s.franchises.ListDetailed(ctx)
	}
	return s.franchises.ListSummaries(ctx)
}

// ListForUser returns the franchises userID administers. Only that user and
// admins may look; everyone else receives an empty list, not an error.
func (s *FranchiseService) ListForUser(ctx context.Context, authUser *domain.User, userID int64) ([]*domain.Franchise, error) {
	if authUser == nil || (authUser.ID != userID && !authUser.IsRole(domain.RoleAdmin)) {
		return []*domain.Franchise{}, nil
	}
	return s.franchises.ListForUser(ctx, userID)
}

func (s *FranchiseService) Create(ctx context.Context, franchise *domain.Franchise) (*domain.Franchise, error) {
	return s.franchises.Create(ctx, franchise)
}

func (s *FranchiseService) Delete(ctx context.Context, franchiseID int64) error {
	return s.franchises.Delete(ctx, franchiseID)
}

// CreateStore requires the caller to be a global admin or an admin of this
// franchise.
func (s *FranchiseService) CreateStore(ctx context.Context, authUser *domain.User, franchiseID int64, store *domain.Store) (*domain.Store, error) {
	if err := s.authorizeStoreChange(ctx, authUser, franchiseID); err != nil {
		return nil, err
	}
	return s.franchises.CreateStore(ctx, franchiseID, store)
}

func (s *FranchiseService) DeleteStore(ctx context.Context, authUser *domain.User, franchiseID, storeID int64) error {
	if err := s.authorizeStoreChange(ctx, authUser, franchiseID); err != nil {
		return err
	}
	return s.franchises.DeleteStore(ctx, franchiseID, storeID)
}

// authorizeStoreChange checks against the franchise's current admin list so
// a freshly granted franchisee is honoured without re-login.
func (s *FranchiseService) authorizeStoreChange(ctx context.Context, authUser *domain.User, franchiseID int64) error {
	franchise, err := s.franchises.Get(ctx, franchiseID)
	if err != nil {
		return err
	}
	if authUser.IsRole(domain.RoleAdmin) {
		return nil
	}
	for _, admin := range franchise.Admins {
		if authUser != nil && admin.ID == authUser.ID {
			return nil
		}
	}
	return domain.ErrForbidden
}

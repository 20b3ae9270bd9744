package ports

import (
	"context"

	"github.com/pizzahub/pizza-service/internal/core/domain"
)

// OrderService owns the menu and the order workflow.
type OrderService interface {
	Menu(ctx context.Context) ([]domain.MenuItem, error)

	// AddMenuItem requires an admin caller and returns the full menu after
	// the insert.
	AddMenuItem(ctx context.Context, authUser *domain.User, item domain.MenuItem) ([]domain.MenuItem, error)

	// Orders returns one page of the caller's order history.
	Orders(ctx context.Context, authUser *domain.User, page int) (*domain.OrderHistory, error)

	// Create stores the order and submits it to the factory. A factory
	// refusal surfaces as *domain.FactoryError after the order was stored.
	Create(ctx context.Context, authUser *domain.User, order domain.Order) (*domain.Order, *domain.Fulfillment, error)
}

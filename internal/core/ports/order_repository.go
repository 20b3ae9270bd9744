package ports

import (
	"context"

	"github.com/pizzahub/pizza-service/internal/core/domain"
)

// OrderRepository persists the menu catalog and diner orders.
type OrderRepository interface {
	Menu(ctx context.Context) ([]domain.MenuItem, error)
	AddMenuItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error)

	// OrdersFor returns one fixed-size page of the diner's orders in
	// insertion order. page is 1-based; a page past the end is empty.
	OrdersFor(ctx context.Context, dinerID int64, page, pageSize int) ([]domain.Order, error)

	// Add inserts the order header with the current server timestamp and
	// one snapshot row per line item, all inside a single transaction. A
	// line referencing a missing menu id fails the whole order with
	// domain.ErrMenuItemNotFound.
	Add(ctx context.Context, dinerID int64, order domain.Order) (domain.Order, error)
}

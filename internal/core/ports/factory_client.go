package ports

import (
	"context"

	"github.com/pizzahub/pizza-service/internal/core/domain"
)

// FactoryClient submits stored orders to the pizza factory for fulfilment.
type FactoryClient interface {
	// Fulfill returns the factory's receipt, or *domain.FactoryError when
	// the factory refuses the order.
	Fulfill(ctx context.Context, diner *domain.User, order *domain.Order) (*domain.Fulfillment, error)
}

// ActivityTracker records that a session was seen, feeding the active-diner
// gauge. Implementations must be safe for concurrent use and must never fail
// a request.
type ActivityTracker interface {
	Touch(ctx context.Context, signature string)
}

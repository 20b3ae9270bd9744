package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pizzahub/pizza-service/internal/core/domain"
	"github.com/pizzahub/pizza-service/internal/core/ports"
)

// OrderService owns the menu catalog and the order workflow: store the
// order, then hand it to the factory for fulfilment.
type OrderService struct {
	orders   ports.OrderRepository
	factory  ports.FactoryClient
	pageSize int
	log      zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, factory ports.FactoryClient, pageSize int, log zerolog.Logger) *OrderService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &OrderService{orders: orders, factory: factory, pageSize: pageSize, log: log}
}

func (s *OrderService) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	return s.orders.Menu(ctx)
}

// AddMenuItem is admin-only and responds with the full menu after the
// insert, matching what menu readers would now see.
func (s *OrderService) AddMenuItem(ctx context.Context, authUser *domain.User, item domain.MenuItem) ([]domain.MenuItem, error) {
	if !authUser.IsRole(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	if _, err := s.orders.AddMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return s.orders.Menu(ctx)
}

// Orders returns one fixed-size page of the caller's history. Pages are
// 1-based; a page past the end carries an empty list.
func (s *OrderService) Orders(ctx context.Context, authUser *domain.User, page int) (*domain.OrderHistory, error) {
	if page < 1 {
		page = 1
	}
	orders, err := s.orders.OrdersFor(ctx, authUser.ID, page, s.pageSize)
	if err != nil {
		return nil, err
	}
	return &domain.OrderHistory{DinerID: authUser.ID, Orders: orders, Page: page}, nil
}

// Create stores the order, then submits it to the factory. A factory refusal
// is reported as *domain.FactoryError after the order was stored; the stored
// order is returned either way so the caller can reference it.
func (s *OrderService) Create(ctx context.Context, authUser *domain.User, order domain.Order) (*domain.Order, *domain.Fulfillment, error) {
	stored, err := s.orders.Add(ctx, authUser.ID, order)
	if err != nil {
		return nil, nil, err
	}

	fulfillment, err := s.factory.Fulfill(ctx, authUser, &stored)
	if err != nil {
		return &stored, nil, err
	}
	return &stored, fulfillment, nil
}

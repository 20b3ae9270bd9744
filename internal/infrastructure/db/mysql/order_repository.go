package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pizzahub/pizza-service/internal/core/domain"
)

// OrderRepository persists the menu catalog and diner orders.
type OrderRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewOrderRepository(db *sql.DB, log zerolog.Logger) *OrderRepository {
	return &OrderRepository{db: db, log: log}
}

func (r *OrderRepository) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, image, price FROM menu ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("select menu: %w", err)
	}
	defer rows.Close()

	menu := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Image, &item.Price); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		menu = append(menu, item)
	}
	return menu, rows.Err()
}

func (r *OrderRepository) AddMenuItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO menu (title, description, image, price) VALUES (?, ?, ?, ?)`,
		item.Title, item.Description, item.Image, item.Price,
	)
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("insert menu item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("insert menu item: %w", err)
	}
	item.ID = id
	r.log.Debug().Int64("menuId", id).Str("title", item.Title).Msg("menu item added")
	return item, nil
}

// OrdersFor returns one page of the diner's orders in insertion order. Pages
// are 1-based; anything below one reads page one, a page past the end reads
// empty.
func (r *OrderRepository) OrdersFor(ctx context.Context, dinerID int64, page, pageSize int) ([]domain.Order, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, franchiseId, storeId, date FROM dinerOrder WHERE dinerId=? ORDER BY id LIMIT ? OFFSET ?`,
		dinerID, pageSize, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.FranchiseID, &o.StoreID, &o.Date); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].Items, err = r.itemsOf(ctx, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// Add writes the order header with the server's clock and one snapshot row
// per line item, all in one transaction: a header without its items is never
// observable, and a line referencing a missing menu id fails the whole order.
func (r *OrderRepository) Add(ctx context.Context, dinerID int64, order domain.Order) (domain.Order, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO dinerOrder (dinerId, franchiseId, storeId, date) VALUES (?, ?, ?, now())`,
			dinerID, order.FranchiseID, order.StoreID,
		)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		orderID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		order.ID = orderID

		for i, item := range order.Items {
			var menuID int64
			err := tx.QueryRowContext(ctx, `SELECT id FROM menu WHERE id=?`, item.MenuID).Scan(&menuID)
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrMenuItemNotFound
			}
			if err != nil {
				return fmt.Errorf("select menu item: %w", err)
			}

			res, err := tx.ExecContext(ctx,
				`INSERT INTO orderItem (orderId, menuId, description, price) VALUES (?, ?, ?, ?)`,
				orderID, menuID, item.Description, item.Price,
			)
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
			itemID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
			order.Items[i].ID = itemID
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	r.log.Debug().Int64("orderId", order.ID).Int64("dinerId", dinerID).Int("items", len(order.Items)).Msg("order added")
	return order, nil
}

func (r *OrderRepository) itemsOf(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, menuId, description, price FROM orderItem WHERE orderId=?`, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.MenuID, &item.Description, &item.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

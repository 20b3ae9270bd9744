package domain

import "time"

// MenuItem is an entry of the global catalog.
type MenuItem struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

// OrderItem is a point-in-time snapshot of a menu item inside an order. Once
// written it never changes, regardless of later menu edits.
type OrderItem struct {
	ID          int64   `json:"id,omitempty"`
	MenuID      int64   `json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Order is one diner order placed against a store.
type Order struct {
	ID          int64       `json:"id,omitempty"`
	FranchiseID int64       `json:"franchiseId"`
	StoreID     int64       `json:"storeId"`
	Date        time.Time   `json:"date,omitempty"`
	Items       []OrderItem `json:"items"`
}

// OrderHistory is one page of a diner's orders. Pages are 1-based; a page
// past the end carries an empty order list.
type OrderHistory struct {
	DinerID int64   `json:"dinerId"`
	Orders  []Order `json:"orders"`
	Page    int     `json:"page"`
}

// Fulfillment is the factory's receipt for a submitted order.
type Fulfillment struct {
	JWT       string `json:"jwt"`
	ReportURL string `json:"reportUrl,omitempty"`
}

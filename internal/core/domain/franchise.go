package domain

// FranchiseAdmin is the projection of a user shown in a franchise's admin
// list. It is a privileged field: only admin callers ever receive it.
type FranchiseAdmin struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Store is a single location of a franchise. TotalRevenue is only computed
// for privileged listings; stores with no orders report zero, not absence.
type Store struct {
	ID           int64    `json:"id"`
	FranchiseID  int64    `json:"franchiseId,omitempty"`
	Name         string   `json:"name"`
	TotalRevenue *float64 `json:"totalRevenue,omitempty"`
}

// Franchise owns zero or more stores. Admins is populated only on the
// privileged listing shape.
type Franchise struct {
	ID     int64            `json:"id"`
	Name   string           `json:"name"`
	Admins []FranchiseAdmin `json:"admins,omitempty"`
	Stores []Store          `json:"stores"`
}

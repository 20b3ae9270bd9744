package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the core. The HTTP layer maps them to status
// codes; repositories and services must return these rather than driver
// errors whenever the condition is recognisable.
var (
	// ErrUnknownUser covers both a missing email and a wrong password so the
	// two cases cannot be told apart by a caller probing for accounts.
	ErrUnknownUser = errors.New("unknown user")

	// ErrEmailTaken reports a duplicate email on registration.
	ErrEmailTaken = errors.New("email already registered")

	// ErrMenuItemNotFound reports an order line referencing a menu id that
	// does not exist at creation time.
	ErrMenuItemNotFound = errors.New("unknown menu item")

	// ErrFranchiseNotFound reports a franchise id or name that resolves to
	// nothing.
	ErrFranchiseNotFound = errors.New("unknown franchise")

	// ErrFranchiseDelete reports a cascading delete that was rolled back.
	// The whole operation is not applied.
	ErrFranchiseDelete = errors.New("unable to delete franchise")

	// ErrForbidden reports an authorization failure decided by the HTTP
	// layer from role data this core supplies.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized reports a missing or revoked session.
	ErrUnauthorized = errors.New("unauthorized")
)

// UnknownFranchiseAdmin reports a franchise admin email that matches no user.
// It unwraps to ErrUnknownUser.
func UnknownFranchiseAdmin(email string) error {
	return fmt.Errorf("unknown user for franchise admin %s provided: %w", email, ErrUnknownUser)
}

// FactoryError reports that the factory refused an order. The order row was
// already written; the report URL lets the diner follow up.
type FactoryError struct {
	ReportURL string
}

func (e *FactoryError) Error() string { return "failed to fulfill order at factory" }

// Package repositories implements data access over MongoDB.
//
// Every repository receives the database handle at construction; nothing
// here reaches for a global connection. Callers translate the sentinel
// errors below into HTTP responses.
package repositories

import "errors"

var (
	// ErrNotFound means no document matched the given identifier.
	ErrNotFound = errors.New("repositories: not found")

	// ErrDuplicateEmail means the email is already registered.
	ErrDuplicateEmail = errors.New("repositories: email already in use")

	// ErrProductMissing means a line item references a product that no
	// longer exists, so the order total cannot be trusted.
	ErrProductMissing = errors.New("repositories: order line references a missing product")
)

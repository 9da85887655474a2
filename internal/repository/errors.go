// Package repository implements persistence for account records and defines
// the sentinel errors handlers use to map failures onto HTTP statuses.
package repository

import "errors"

// ErrEmailExists is returned when an insert violates the unique email
// index.  Handlers translate it into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when no account matches the given id or email.
// Handlers translate it into 404, or into the generic credentials error on
// the login path where revealing it would enable account enumeration.
var ErrNotFound = errors.New("account not found")

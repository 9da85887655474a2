// Package handler implements the HTTP surface of the service.
package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/aiverse/aiverse-api/internal/model"
	"github.com/aiverse/aiverse-api/internal/repository"
)

// AccountStore is the slice of the persistence layer the handlers depend
// on.  *repository.AccountRepo satisfies it; tests substitute lightweight
// fakes.
type AccountStore interface {
	Create(ctx context.Context, name, email, password string, cost int) (string, error)
	GetByEmail(ctx context.Context, email string) (model.Account, error)
	GetByID(ctx context.Context, id string) (model.Account, error)
	TouchLastLogin(ctx context.Context, id string) error
	UpdateProfile(ctx context.Context, id string, upd repository.ProfileUpdate) error
}

// contextString reads a string the session middleware stored on the
// context, or "" if the key is absent.
func contextString(c echo.Context, key string) string {
	s, _ := c.Get(key).(string)
	return s
}

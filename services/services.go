package services

import (
	"context"

	"github.com/samber/mo"

	"github.com/kayceeDev/altschooltestingBE/models"
)

// UsersService defines the interface for user resource operations.
// Each operation performs exactly one datastore call.
type UsersService interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, fields *models.UserFields) (*models.User, error)
	UpdateUser(ctx context.Context, id string, fields *models.UserFields) (mo.Option[*models.User], error)
	DeleteUser(ctx context.Context, id string) (mo.Option[*models.User], error)
}

// ReadinessChecker reports whether the datastore currently answers pings
type ReadinessChecker interface {
	IsReady() bool
}

package users

import (
	"context"

	"github.com/dmitrijs2005/friendstories/internal/client/models"
)

type Repository interface {
	// Upsert inserts the user or updates username and avatar in place.
	Upsert(ctx context.Context, u *models.User) error
	// GetByID returns common.ErrorNotFound when the user is not cached.
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// GetAll returns every cached user ordered by username, then id.
	GetAll(ctx context.Context) ([]*models.User, error)
}

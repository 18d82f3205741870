package users

import (
	"context"

	"github.com/dmitrijs2005/friendstories/internal/server/models"
)

type Repository interface {
	// List returns every user ordered by id ascending.
	List(ctx context.Context) ([]models.User, error)
	// Exists reports whether a user with id is present.
	Exists(ctx context.Context, id int64) (bool, error)
}

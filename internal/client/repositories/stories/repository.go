package stories

import (
	"context"
	"time"

	"github.com/dmitrijs2005/friendstories/internal/client/models"
)

type Repository interface {
	// Upsert writes the server-owned fields of s. On conflict seen_at and
	// is_liked are left untouched.
	Upsert(ctx context.Context, s *models.Story) error
	// GetByID returns common.ErrorNotFound when the story is not cached.
	GetByID(ctx context.Context, id int64) (*models.Story, error)
	// ListByUser returns a user's stories oldest first.
	ListByUser(ctx context.Context, userID int64) ([]*models.Story, error)
	// ListAll returns every cached story oldest first.
	ListAll(ctx context.Context) ([]*models.Story, error)
	// SetSeenAt records the first time a story was seen. It reports false
	// when the story was already seen or does not exist.
	SetSeenAt(ctx context.Context, id int64, at time.Time) (bool, error)
	// SetLiked stores an explicit like or unlike.
	SetLiked(ctx context.Context, id int64, liked bool) error
	// ResetSeen clears seen_at on every story and returns the number cleared.
	ResetSeen(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int, error)
}

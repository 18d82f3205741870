package stories

import (
	"context"

	"github.com/dmitrijs2005/friendstories/internal/server/models"
)

type Repository interface {
	// PageAuthors returns users that have at least one story, ordered by
	// their most recent story descending.
	PageAuthors(ctx context.Context, limit, offset int) ([]models.User, error)
	// CountAuthors returns the number of users with at least one story.
	CountAuthors(ctx context.Context) (int, error)
	// ListByUser returns a user's stories, newest first.
	ListByUser(ctx context.Context, userID int64) ([]models.FeedStory, error)
	// Create inserts a story and returns the stored row.
	Create(ctx context.Context, userID int64, imageURL string, caption *string) (*models.Story, error)
}

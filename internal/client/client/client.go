package client

import (
	"context"

	"github.com/dmitrijs2005/friendstories/internal/client/models"
)

type Client interface {
	// GetStories fetches one page of the grouped feed.
	GetStories(ctx context.Context, page, limit int) (*models.FeedPage, error)
	GetUsers(ctx context.Context) ([]models.UserDTO, error)
	CreateStory(ctx context.Context, req *models.CreateStoryRequest) (*models.StoryDTO, error)
	Ping(ctx context.Context) error
}

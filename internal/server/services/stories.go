// Package services implements the server use cases on top of the
// repositories: user listing, the grouped story feed and story creation.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/friendstories/internal/common"
	"github.com/dmitrijs2005/friendstories/internal/dbx"
	"github.com/dmitrijs2005/friendstories/internal/server/models"
	"github.com/dmitrijs2005/friendstories/internal/server/repositories/repomanager"
	"github.com/gookit/validate"
)

// Messages returned to API clients for create-story failures.
const (
	MsgStoryFieldsRequired = "user_id and image_url are required"
	MsgUserNotFound        = "User not found"
)

type StoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewStoryService(db *sql.DB, repomanager repomanager.RepositoryManager) *StoryService {
	return &StoryService{db: db, repomanager: repomanager}
}

// Feed returns one page of users-with-stories, each with all of their
// stories newest first. page is floored at 1 and limit clamped to 1..50.
// The count and the page are read in one snapshot so hasMore agrees with
// the returned data.
func (s *StoryService) Feed(ctx context.Context, page, limit int) (*models.FeedPage, error) {
	page = max(common.DefaultPage, page)
	limit = common.ClampLimit(limit)
	offset := (page - 1) * limit

	result := &models.FeedPage{Data: make([]models.FeedGroup, 0), Page: page, Limit: limit}

	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := dbx.WithTx(ctx, s.db, opts, func(ctx context.Context, tx dbx.DBTX) error {
		storyRepo := s.repomanager.Stories(tx)

		authors, err := storyRepo.PageAuthors(ctx, limit, offset)
		if err != nil {
			return err
		}

		total, err := storyRepo.CountAuthors(ctx)
		if err != nil {
			return err
		}
		result.HasMore = offset+limit < total

		for _, u := range authors {
			items, err := storyRepo.ListByUser(ctx, u.ID)
			if err != nil {
				return err
			}
			result.Data = append(result.Data, models.FeedGroup{User: u, Stories: items})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error loading feed: %w", err)
	}

	return result, nil
}

// Create validates the request and stores a new story. An empty caption is
// stored as NULL. Validation problems wrap common.ErrorValidation and an unknown
// user wraps common.ErrorNotFound.
func (s *StoryService) Create(ctx context.Context, req *models.CreateStoryRequest) (*models.Story, error) {
	req.ImageURL = strings.TrimSpace(req.ImageURL)

	v := validate.Struct(req)
	if !v.Validate() {
		return nil, fmt.Errorf("%w: %s", common.ErrorValidation, MsgStoryFieldsRequired)
	}

	caption := req.Caption
	if caption != nil && *caption == "" {
		caption = nil
	}

	var story *models.Story
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		exists, err := s.repomanager.Users(tx).Exists(ctx, req.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: %s", common.ErrorNotFound, MsgUserNotFound)
		}

		story, err = s.repomanager.Stories(tx).Create(ctx, req.UserID, req.ImageURL, caption)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error creating story: %w", err)
	}

	return story, nil
}

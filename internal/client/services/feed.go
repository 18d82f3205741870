package services

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/friendstories/internal/client/models"
	"github.com/dmitrijs2005/friendstories/internal/client/playback"
)

// FeedService builds the viewer's lists from the library and opens playback
// sessions over them.
type FeedService struct {
	library   *Library
	durations playback.DurationSource
}

func NewFeedService(library *Library, durations playback.DurationSource) *FeedService {
	return &FeedService{library: library, durations: durations}
}

// Friends returns users that have at least one story, users with unseen
// stories first, then by username.
func (f *FeedService) Friends(ctx context.Context) ([]*models.User, error) {
	users, err := f.library.Users(ctx)
	if err != nil {
		return nil, err
	}

	friends := make([]*models.User, 0, len(users))
	for _, u := range users {
		if len(u.Stories) > 0 {
			friends = append(friends, u)
		}
	}
	sort.SliceStable(friends, func(i, j int) bool {
		a, b := friends[i].HasUnseen(), friends[j].HasUnseen()
		if a != b {
			return a
		}
		if friends[i].Username != friends[j].Username {
			return friends[i].Username < friends[j].Username
		}
		return friends[i].ID < friends[j].ID
	})
	return friends, nil
}

// Newest returns every cached story, most recent first.
func (f *FeedService) Newest(ctx context.Context) ([]playback.Item, error) {
	users, err := f.library.Users(ctx)
	if err != nil {
		return nil, err
	}
	return playback.NewestFirst(users, nil), nil
}

// Favorites returns liked stories, most recent first.
func (f *FeedService) Favorites(ctx context.Context) ([]playback.Item, error) {
	users, err := f.library.Users(ctx)
	if err != nil {
		return nil, err
	}
	return playback.NewestFirst(users, playback.LikedOnly), nil
}

// OpenUser opens a grouped session over the friends list positioned at the
// given user and story.
func (f *FeedService) OpenUser(ctx context.Context, userIndex, storyIndex int, opts ...playback.Option) (*playback.Session, error) {
	friends, err := f.Friends(ctx)
	if err != nil {
		return nil, err
	}
	o := playback.NewGrouped(friends, userIndex, storyIndex, nil)
	return playback.NewSession(o, f.durations, f.library, opts...), nil
}

// OpenInOrder opens a flattened session over Newest starting at start.
func (f *FeedService) OpenInOrder(ctx context.Context, start int, opts ...playback.Option) (*playback.Session, error) {
	items, err := f.Newest(ctx)
	if err != nil {
		return nil, err
	}
	return playback.NewSession(playback.NewFlattened(items, start), f.durations, f.library, opts...), nil
}

// OpenFavorites opens a grouped session over the friends list restricted to
// liked stories, positioned at storyID. Playback continues through that
// user's liked stories oldest first, then on to the next friend with a liked
// story. An unknown storyID starts at the first liked story.
func (f *FeedService) OpenFavorites(ctx context.Context, storyID int64, opts ...playback.Option) (*playback.Session, error) {
	friends, err := f.Friends(ctx)
	if err != nil {
		return nil, err
	}
	o := playback.NewGrouped(friends, 0, 0, playback.LikedOnly)
	o.Seek(storyID)
	return playback.NewSession(o, f.durations, f.library, opts...), nil
}

func (f *FeedService) ResetSeen(ctx context.Context) (int64, error) {
	return f.library.ResetSeen(ctx)
}

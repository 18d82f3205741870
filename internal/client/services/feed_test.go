package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/friendstories/internal/client/models"
	"github.com/dmitrijs2005/friendstories/internal/client/playback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, e *env) {
	t.Helper()
	e.fc.getStories = staticPage(&models.FeedPage{
		Data: []models.FeedGroupDTO{
			group(1, "carol", story(10, base, nil), story(11, base.Add(3*time.Minute), nil)),
			group(2, "alice", story(20, base.Add(time.Minute), nil)),
			group(3, "bob", story(30, base.Add(2*time.Minute), nil)),
		},
		Page: 1,
	})
	_, _, err := e.sync.Sync(context.Background(), 1)
	require.NoError(t, err)

	_, err = e.db.Exec(`INSERT INTO users (id, username) VALUES (4, 'dave')`)
	require.NoError(t, err)
}

func usernames(users []*models.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Username
	}
	return out
}

func storyIDs(items []playback.Item) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.Story.ID
	}
	return out
}

func TestLibrary_UsersAttachStoriesOldestFirst(t *testing.T) {
	e := newEnv(t, 10)
	seed(t, e)

	users, err := e.lib.Users(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol", "dave"}, usernames(users))
	carol := users[2]
	require.Len(t, carol.Stories, 2)
	assert.Equal(t, int64(10), carol.Stories[0].ID)
	assert.Equal(t, int64(11), carol.Stories[1].ID)
	assert.Empty(t, users[3].Stories)
}

func TestLibrary_MarkSeenOnce(t *testing.T) {
	e := newEnv(t, 10)
	seed(t, e)
	ctx := context.Background()

	first := base.Add(time.Hour)
	require.NoError(t, e.lib.MarkSeen(ctx, 20, first))
	require.NoError(t, e.lib.MarkSeen(ctx, 20, first.Add(time.Hour)))

	s, err := e.repos.Stories(e.db).GetByID(ctx, 20)
	require.NoError(t, err)
	require.NotNil(t, s.SeenAt)
	assert.Equal(t, first, *s.SeenAt)
}

func TestFeed_FriendsUnseenFirst(t *testing.T) {
	e := newEnv(t, 10)
	seed(t, e)
	ctx := context.Background()
	feed := NewFeedService(e.lib, playback.FixedDuration(time.Second))

	friends, err := feed.Friends(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, usernames(friends), "users without stories are hidden")

	require.NoError(t, e.lib.MarkSeen(ctx, 20, base))
	friends, err = feed.Friends(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol", "alice"}, usernames(friends))

	n, err := feed.ResetSeen(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	friends, err = feed.Friends(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, usernames(friends))
}

func TestFeed_NewestAndFavorites(t *testing.T) {
	e := newEnv(t, 10)
	seed(t, e)
	ctx := context.Background()
	feed := NewFeedService(e.lib, playback.FixedDuration(time.Second))

	items, err := feed.Newest(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 30, 20, 10}, storyIDs(items))

	require.NoError(t, e.lib.SetLiked(ctx, 10, true))
	require.NoError(t, e.lib.SetLiked(ctx, 30, true))
	require.NoError(t, e.lib.SetLiked(ctx, 20, false))

	liked, err := feed.Favorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{30, 10}, storyIDs(liked))
	assert.Equal(t, "bob", liked[0].User.Username)
}

func TestFeed_OpenUserPersistsSeenAndLike(t *testing.T) {
	e := newEnv(t, 10)
	seed(t, e)
	ctx := context.Background()
	feed := NewFeedService(e.lib, playback.FixedDuration(time.Second))
	watched := base.Add(5 * time.Hour)

	s, err := feed.OpenUser(ctx, 2, 1, playback.WithClock(func() time.Time { return watched }))
	require.NoError(t, err)
	s.Start()

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, int64(11), cur.Story.ID)
	s.ToggleLike()

	got, err := e.repos.Stories(e.db).GetByID(ctx, 11)
	require.NoError(t, err)
	require.NotNil(t, got.SeenAt)
	assert.Equal(t, watched, *got.SeenAt)
	assert.True(t, got.Liked())
}

func TestFeed_OpenInOrderAndFavorites(t *testing.T) {
	e := newEnv(t, 10)
	seed(t, e)
	ctx := context.Background()
	feed := NewFeedService(e.lib, playback.FixedDuration(time.Second))

	s, err := feed.OpenInOrder(ctx, 1)
	require.NoError(t, err)
	s.Start()
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, int64(30), cur.Story.ID)
	s.Advance()
	cur, _ = s.Current()
	assert.Equal(t, int64(20), cur.Story.ID)

	fav, err := feed.OpenFavorites(ctx, 0)
	require.NoError(t, err)
	fav.Start()
	assert.Equal(t, playback.Dismissed, fav.Phase(), "no liked stories")
}

func TestFeed_OpenFavoritesWalksLikedStoriesByFriend(t *testing.T) {
	e := newEnv(t, 10)
	seed(t, e)
	ctx := context.Background()
	for _, id := range []int64{10, 11, 30} {
		require.NoError(t, e.lib.SetLiked(ctx, id, true))
	}
	feed := NewFeedService(e.lib, playback.FixedDuration(time.Second))

	items, err := feed.Favorites(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{11, 30, 10}, storyIDs(items))

	s, err := feed.OpenFavorites(ctx, items[1].Story.ID)
	require.NoError(t, err)
	var got []int64
	for s.Start(); s.Phase() != playback.Dismissed; s.Advance() {
		cur, _ := s.Current()
		got = append(got, cur.Story.ID)
	}
	assert.Equal(t, []int64{30, 10, 11}, got, "bob's liked story, then carol's oldest first")

	s, err = feed.OpenFavorites(ctx, 999)
	require.NoError(t, err)
	s.Start()
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, int64(30), cur.Story.ID, "unknown id starts at the first friend")
}

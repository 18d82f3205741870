package playback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/friendstories/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func story(id int64, userID int64, minutes int) *models.Story {
	return &models.Story{ID: id, UserID: userID, ImageURL: "img", CreatedAt: t0.Add(time.Duration(minutes) * time.Minute)}
}

func user(id int64, name string, stories ...*models.Story) *models.User {
	return &models.User{ID: id, Username: name, Stories: stories}
}

type fakeRecorder struct {
	seen    map[int64][]time.Time
	liked   []bool
	seenErr error
}

func newRecorder() *fakeRecorder { return &fakeRecorder{seen: map[int64][]time.Time{}} }

func (r *fakeRecorder) MarkSeen(ctx context.Context, id int64, at time.Time) error {
	r.seen[id] = append(r.seen[id], at)
	return r.seenErr
}

func (r *fakeRecorder) SetLiked(ctx context.Context, id int64, liked bool) error {
	r.liked = append(r.liked, liked)
	return nil
}

type switchableDuration struct{ d time.Duration }

func (s *switchableDuration) StoryDuration() time.Duration { return s.d }

func position(t *testing.T, s *Session) (int64, int) {
	t.Helper()
	it, ok := s.Current()
	require.True(t, ok, "expected positioned session, got %s", s.Phase())
	return it.User.ID, s.Ordering().Index()
}

func TestGrouped_TwoUsersAdvanceToDismissed(t *testing.T) {
	users := []*models.User{
		user(1, "u1", story(11, 1, 0), story(12, 1, 1)),
		user(2, "u2", story(21, 2, 2)),
	}
	s := NewSession(NewGrouped(users, 0, 0, nil), FixedDuration(time.Second), nil)
	s.Start()

	uid, idx := position(t, s)
	assert.Equal(t, int64(1), uid)
	assert.Equal(t, 0, idx)

	s.Advance()
	uid, idx = position(t, s)
	assert.Equal(t, int64(1), uid)
	assert.Equal(t, 1, idx)

	s.Advance()
	uid, idx = position(t, s)
	assert.Equal(t, int64(2), uid)
	assert.Equal(t, 0, idx)

	s.Advance()
	assert.Equal(t, Dismissed, s.Phase())
}

func TestFlattened_RetreatNoopAndDismissed(t *testing.T) {
	u1, u2 := user(1, "u1"), user(2, "u2")
	a, b, c := story(1, 1, 0), story(2, 2, 1), story(3, 1, 2)
	u1.Stories = []*models.Story{a, c}
	u2.Stories = []*models.Story{b}

	items := NewestFirst([]*models.User{u1, u2}, nil)
	require.Len(t, items, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{items[0].Story.ID, items[1].Story.ID, items[2].Story.ID})

	s := NewSession(NewFlattened(items, 0), FixedDuration(time.Second), nil)
	s.Start()

	s.Retreat()
	it, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, int64(3), it.Story.ID)

	s.Advance()
	s.Advance()
	it, ok = s.Current()
	require.True(t, ok)
	assert.Equal(t, int64(1), it.Story.ID)
	assert.True(t, s.Ordering().IsAtEnd())

	s.Advance()
	assert.Equal(t, Dismissed, s.Phase())
}

func TestToggleLike_TriStateCycle(t *testing.T) {
	st := story(1, 1, 0)
	rec := newRecorder()
	s := NewSession(NewGrouped([]*models.User{user(1, "u", st)}, 0, 0, nil), nil, rec)
	s.Start()

	require.Nil(t, st.IsLiked)
	var got []bool
	for range 3 {
		s.ToggleLike()
		require.NotNil(t, st.IsLiked)
		got = append(got, *st.IsLiked)
	}
	assert.Equal(t, []bool{true, false, true}, got)
	assert.Equal(t, []bool{true, false, true}, rec.liked)
}

func TestSeenOnce_FirstTimestampPreserved(t *testing.T) {
	a, b := story(1, 1, 0), story(2, 1, 1)
	rec := newRecorder()
	clock := t0
	s := NewSession(NewGrouped([]*models.User{user(1, "u", a, b)}, 0, 0, nil), nil, rec,
		WithClock(func() time.Time { clock = clock.Add(time.Second); return clock }))

	s.Start()
	require.NotNil(t, a.SeenAt)
	firstA := *a.SeenAt

	s.Advance()
	require.NotNil(t, b.SeenAt)
	firstB := *b.SeenAt

	for range 5 {
		s.Retreat()
		s.Advance()
	}

	assert.True(t, firstA.Equal(*a.SeenAt))
	assert.True(t, firstB.Equal(*b.SeenAt))
	assert.Len(t, rec.seen[1], 1)
	assert.Len(t, rec.seen[2], 1)
}

func TestStart_AlreadySeenStoryKeepsTimestamp(t *testing.T) {
	seen := t0.Add(-time.Hour)
	a := story(1, 1, 0)
	a.SeenAt = &seen
	rec := newRecorder()

	s := NewSession(NewGrouped([]*models.User{user(1, "u", a)}, 0, 0, nil), nil, rec)
	s.Start()

	assert.True(t, seen.Equal(*a.SeenAt))
	assert.Empty(t, rec.seen)
}

func TestTick_ProgressMonotonicAndSingleAdvance(t *testing.T) {
	a, b := story(1, 1, 0), story(2, 1, 1)
	advances := 0
	var last *models.Story
	s := NewSession(NewGrouped([]*models.User{user(1, "u", a, b)}, 0, 0, nil), FixedDuration(time.Second), nil,
		WithObserver(func(st State) {
			if last != nil && st.Story != last {
				advances++
			}
			last = st.Story
		}))
	s.Start()

	prev := 0.0
	for i := 0; i < TickRate-1; i++ {
		s.Tick()
		p := s.Progress()
		require.GreaterOrEqual(t, p, prev)
		require.LessOrEqual(t, p, 1.0)
		prev = p
	}
	it, _ := s.Current()
	assert.Equal(t, int64(1), it.Story.ID, "still on first story before the last tick")

	s.Tick()
	it, _ = s.Current()
	assert.Equal(t, int64(2), it.Story.ID)
	assert.Equal(t, 1, advances)
	assert.Zero(t, s.Progress())
	assert.True(t, s.Running())
}

func TestTick_DurationReadEveryTick(t *testing.T) {
	d := &switchableDuration{d: 10 * time.Second}
	s := NewSession(NewGrouped([]*models.User{user(1, "u", story(1, 1, 0), story(2, 1, 1))}, 0, 0, nil), d, nil)
	s.Start()

	s.Tick()
	assert.InDelta(t, 1.0/300, s.Progress(), 1e-9)

	d.d = 2 * time.Second
	s.Tick()
	assert.InDelta(t, 1.0/300+1.0/60, s.Progress(), 1e-9)
}

func TestTick_NonPositiveDurationFallsBack(t *testing.T) {
	s := NewSession(NewGrouped([]*models.User{user(1, "u", story(1, 1, 0))}, 0, 0, nil), FixedDuration(0), nil)
	s.Start()
	s.Tick()
	assert.InDelta(t, 1/(DefaultStoryDuration.Seconds()*TickRate), s.Progress(), 1e-9)
}

func TestPauseResume_KeepsProgress(t *testing.T) {
	s := NewSession(NewGrouped([]*models.User{user(1, "u", story(1, 1, 0))}, 0, 0, nil), FixedDuration(time.Second), nil)
	s.Start()
	for range 10 {
		s.Tick()
	}
	p := s.Progress()

	s.Pause()
	for range 10 {
		s.Tick()
	}
	assert.Equal(t, p, s.Progress(), "paused timer must not move")
	assert.False(t, s.Running())

	s.TogglePause()
	assert.True(t, s.Running())
	assert.Equal(t, p, s.Progress(), "resume continues from current progress")
	s.Tick()
	assert.Greater(t, s.Progress(), p)
}

func TestTerminalReachability(t *testing.T) {
	users := []*models.User{
		user(1, "a", story(1, 1, 0), story(2, 1, 1), story(3, 1, 2)),
		user(2, "b"),
		user(3, "c", story(4, 3, 3)),
		user(4, "d", story(5, 4, 4), story(6, 4, 5)),
	}
	total := 6

	for ui := range users {
		for si := 0; si < 3; si++ {
			s := NewSession(NewGrouped(users, ui, si, nil), nil, nil)
			s.Start()
			calls := 0
			for s.Phase() != Dismissed {
				s.Advance()
				calls++
				require.LessOrEqual(t, calls, total, "start (%d,%d)", ui, si)
			}
		}
	}

	for start := -1; start <= total; start++ {
		s := NewSession(NewFlattened(NewestFirst(users, nil), start), nil, nil)
		s.Start()
		calls := 0
		for s.Phase() != Dismissed {
			s.Advance()
			calls++
			require.LessOrEqual(t, calls, total)
		}
	}
}

func TestGrouped_FilterSkipsUsersWithoutMatches(t *testing.T) {
	liked := true
	a1, b1, c1 := story(1, 1, 0), story(2, 2, 1), story(3, 3, 2)
	a1.IsLiked, c1.IsLiked = &liked, &liked
	users := []*models.User{user(1, "a", a1), user(2, "b", b1), user(3, "c", c1)}

	s := NewSession(NewGrouped(users, 0, 0, LikedOnly), nil, nil)
	s.Start()
	uid, _ := position(t, s)
	assert.Equal(t, int64(1), uid)

	s.Advance()
	uid, _ = position(t, s)
	assert.Equal(t, int64(3), uid, "user without liked stories is skipped")
}

func TestGrouped_StartUserWithoutMatchesScansForward(t *testing.T) {
	liked := true
	b1 := story(2, 2, 1)
	b1.IsLiked = &liked
	users := []*models.User{user(1, "a", story(1, 1, 0)), user(2, "b", b1)}

	g := NewGrouped(users, 0, 0, LikedOnly)
	_, ok := g.Current()
	assert.False(t, ok)

	s := NewSession(g, nil, nil)
	s.Start()
	uid, _ := position(t, s)
	assert.Equal(t, int64(2), uid)
}

func TestGrouped_SeekCrossesUsersFromLikedStory(t *testing.T) {
	liked := true
	c10, c11, a20, b30 := story(10, 1, 0), story(11, 1, 3), story(20, 2, 1), story(30, 3, 2)
	c10.IsLiked, c11.IsLiked, b30.IsLiked = &liked, &liked, &liked
	users := []*models.User{user(3, "bob", b30), user(1, "carol", c11, c10), user(2, "alice", a20)}

	g := NewGrouped(users, 0, 0, LikedOnly)
	require.True(t, g.Seek(30))
	assert.False(t, g.Seek(20), "unliked story is not reachable")

	var got []int64
	s := NewSession(g, nil, nil)
	for s.Start(); s.Phase() != Dismissed; s.Advance() {
		it, _ := s.Current()
		got = append(got, it.Story.ID)
	}
	assert.Equal(t, []int64{30, 10, 11}, got)
}

func TestSession_StateFlagsLastStory(t *testing.T) {
	users := []*models.User{
		user(1, "u1", story(11, 1, 0)),
		user(2, "u2", story(21, 2, 1), story(22, 2, 2)),
	}
	s := NewSession(NewGrouped(users, 0, 0, nil), nil, nil)
	s.Start()
	assert.False(t, s.State().Last)
	s.Advance()
	assert.False(t, s.State().Last, "u1's last story is not the end")
	s.Advance()
	assert.True(t, s.State().Last)
	s.Advance()
	assert.Equal(t, Dismissed, s.Phase())
	assert.False(t, s.State().Last)
}

func TestGrouped_StoriesSortedOldestFirst(t *testing.T) {
	u := user(1, "a", story(3, 1, 5), story(1, 1, 0), story(2, 1, 2))
	g := NewGrouped([]*models.User{u}, 0, 0, nil)

	ids := []int64{}
	for _, s := range g.Stories() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestRetreat_DoesNotCrossUsers(t *testing.T) {
	users := []*models.User{user(1, "a", story(1, 1, 0)), user(2, "b", story(2, 2, 1))}
	s := NewSession(NewGrouped(users, 1, 0, nil), nil, nil)
	s.Start()

	s.Retreat()
	uid, idx := position(t, s)
	assert.Equal(t, int64(2), uid)
	assert.Equal(t, 0, idx)
}

func TestClampedStartPositions(t *testing.T) {
	users := []*models.User{user(1, "a", story(1, 1, 0), story(2, 1, 1)), user(2, "b", story(3, 2, 2))}

	g := NewGrouped(users, -5, -5, nil)
	assert.Equal(t, 0, g.UserIndex())
	assert.Equal(t, 0, g.Index())

	g = NewGrouped(users, 10, 10, nil)
	assert.Equal(t, 1, g.UserIndex())
	assert.Equal(t, 0, g.Index())

	g = NewGrouped(users, 0, 10, nil)
	assert.Equal(t, 1, g.Index())

	f := NewFlattened(NewestFirst(users, nil), 42)
	assert.Equal(t, 2, f.Index())
	f = NewFlattened(nil, 3)
	assert.Equal(t, 0, f.Index())
	_, ok := f.Current()
	assert.False(t, ok)
}

func TestEmptyOrderingDismissesOnStart(t *testing.T) {
	s := NewSession(NewGrouped(nil, 0, 0, nil), nil, nil)
	s.Start()
	assert.Equal(t, Dismissed, s.Phase())

	s = NewSession(NewFlattened(nil, 0), nil, nil)
	s.Start()
	assert.Equal(t, Dismissed, s.Phase())
}

func TestBarFill(t *testing.T) {
	u := user(1, "a", story(1, 1, 0), story(2, 1, 1), story(3, 1, 2))
	s := NewSession(NewGrouped([]*models.User{u}, 0, 1, nil), FixedDuration(time.Second), nil)
	s.Start()
	for range 15 {
		s.Tick()
	}

	assert.Equal(t, 1.0, s.BarFill(0))
	assert.InDelta(t, 0.5, s.BarFill(1), 1e-9)
	assert.Equal(t, 0.0, s.BarFill(2))
}

func TestRecorderFailureIsNotFatal(t *testing.T) {
	rec := newRecorder()
	rec.seenErr = errors.New("disk full")
	a := story(1, 1, 0)

	s := NewSession(NewGrouped([]*models.User{user(1, "u", a)}, 0, 0, nil), nil, rec)
	s.Start()

	assert.Equal(t, Positioned, s.Phase())
	assert.NotNil(t, a.SeenAt)
}

func TestObserverFiredAfterMutations(t *testing.T) {
	var phases []Phase
	s := NewSession(NewGrouped([]*models.User{user(1, "u", story(1, 1, 0))}, 0, 0, nil), FixedDuration(time.Second), nil,
		WithObserver(func(st State) { phases = append(phases, st.Phase) }))

	s.Start()
	s.Tick()
	s.ToggleLike()
	s.Retreat()
	s.Advance()

	assert.Equal(t, []Phase{Positioned, Positioned, Positioned, Positioned, Dismissed}, phases)
}

func TestRun_TicksAndCommands(t *testing.T) {
	u := user(1, "u", story(1, 1, 0), story(2, 1, 1))
	s := NewSession(NewGrouped([]*models.User{u}, 0, 0, nil), FixedDuration(time.Second), nil)

	ticks := make(chan time.Time)
	cmds := make(chan Command)
	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background(), ticks, cmds) }()

	for range TickRate {
		ticks <- time.Now()
	}
	cmds <- CmdLike
	cmds <- CmdNext

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("session did not finish")
	}
	assert.Equal(t, Dismissed, s.Phase())
	require.NotNil(t, u.Stories[1].IsLiked)
	assert.True(t, *u.Stories[1].IsLiked)
}

func TestRun_ContextCancel(t *testing.T) {
	s := NewSession(NewGrouped([]*models.User{user(1, "u", story(1, 1, 0))}, 0, 0, nil), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx, nil, nil)
	require.ErrorIs(t, err, context.Canceled)
}

package playback

import (
	"context"
	"time"

	"github.com/dmitrijs2005/friendstories/internal/client/models"
	"github.com/dmitrijs2005/friendstories/internal/logging"
)

// TickRate is the number of timer ticks per second.
const TickRate = 30

// completion absorbs float rounding so a story ends after exactly
// duration*TickRate ticks.
const completion = 1 - 1e-9

// DefaultStoryDuration is used when a DurationSource reports a non-positive value.
const DefaultStoryDuration = 5 * time.Second

// DurationSource supplies the dwell time of a story. It is consulted on
// every tick so a changed setting applies immediately.
type DurationSource interface {
	StoryDuration() time.Duration
}

// FixedDuration is a constant DurationSource.
type FixedDuration time.Duration

func (d FixedDuration) StoryDuration() time.Duration { return time.Duration(d) }

// Recorder persists local story state. Failures are logged by the Session
// and never change its state.
type Recorder interface {
	MarkSeen(ctx context.Context, storyID int64, at time.Time) error
	SetLiked(ctx context.Context, storyID int64, liked bool) error
}

type Phase int

const (
	Idle Phase = iota
	Positioned
	Dismissed
)

func (p Phase) String() string {
	switch p {
	case Positioned:
		return "positioned"
	case Dismissed:
		return "dismissed"
	default:
		return "idle"
	}
}

// State is a snapshot passed to observers.
type State struct {
	Phase    Phase
	User     *models.User
	Story    *models.Story
	Index    int
	Count    int
	Progress float64
	Running  bool
	// Last is set on the final story of the ordering.
	Last bool
}

type Option func(*Session)

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.logger = l.With("module", "playback") }
}

// WithObserver registers fn to be called after every mutating operation.
func WithObserver(fn func(State)) Option {
	return func(s *Session) { s.observer = fn }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session owns the playback state for one viewer. It is not safe for
// concurrent use; Run serializes ticks and commands on one goroutine.
type Session struct {
	ordering  Ordering
	durations DurationSource
	recorder  Recorder
	logger    logging.Logger
	observer  func(State)
	now       func() time.Time
	ctx       context.Context

	phase    Phase
	progress float64
	running  bool
}

func NewSession(o Ordering, d DurationSource, r Recorder, opts ...Option) *Session {
	s := &Session{
		ordering:  o,
		durations: d,
		recorder:  r,
		logger:    logging.Nop{},
		now:       time.Now,
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Phase() Phase { return s.phase }

func (s *Session) Progress() float64 { return s.progress }

func (s *Session) Running() bool { return s.running }

func (s *Session) Ordering() Ordering { return s.ordering }

// Current returns the story on screen; ok is false unless positioned.
func (s *Session) Current() (Item, bool) {
	if s.phase != Positioned {
		return Item{}, false
	}
	return s.ordering.Current()
}

func (s *Session) State() State {
	st := State{Phase: s.phase, Progress: s.progress, Running: s.running}
	if it, ok := s.Current(); ok {
		st.User, st.Story = it.User, it.Story
		st.Index = s.ordering.Index()
		st.Count = len(s.ordering.Stories())
		st.Last = s.ordering.IsAtEnd()
	}
	return st
}

func (s *Session) notify() {
	if s.observer != nil {
		s.observer(s.State())
	}
}

// Start enters the initial position. When the start position holds no
// story the ordering is advanced once; an empty ordering dismisses at once.
func (s *Session) Start() {
	if s.phase != Idle {
		return
	}
	if _, ok := s.ordering.Current(); ok || s.ordering.Advance() {
		s.enter()
	} else {
		s.dismiss()
	}
	s.notify()
}

func (s *Session) enter() {
	s.phase = Positioned
	s.progress = 0
	s.running = true
	s.markSeen()
}

func (s *Session) dismiss() {
	s.phase = Dismissed
	s.running = false
}

func (s *Session) markSeen() {
	it, ok := s.ordering.Current()
	if !ok || it.Story.SeenAt != nil {
		return
	}
	at := s.now().UTC()
	it.Story.SeenAt = &at
	if s.recorder == nil {
		return
	}
	if err := s.recorder.MarkSeen(s.ctx, it.Story.ID, at); err != nil {
		s.logger.Warn(s.ctx, "mark seen failed", "story_id", it.Story.ID, "error", err)
	}
}

func (s *Session) duration() time.Duration {
	if s.durations == nil {
		return DefaultStoryDuration
	}
	if d := s.durations.StoryDuration(); d > 0 {
		return d
	}
	return DefaultStoryDuration
}

// Tick advances the dwell timer by one tick while running. Reaching the
// end of the story clamps progress to 1 and advances exactly once.
func (s *Session) Tick() {
	if s.phase != Positioned || !s.running {
		return
	}
	step := 1 / (s.duration().Seconds() * TickRate)
	if s.progress+step >= completion {
		s.progress = 1
		s.advance()
	} else {
		s.progress += step
	}
	s.notify()
}

func (s *Session) advance() {
	if s.ordering.Advance() {
		s.enter()
		return
	}
	s.dismiss()
}

// Advance moves to the next story, or dismisses at the end.
func (s *Session) Advance() {
	if s.phase != Positioned {
		return
	}
	s.advance()
	s.notify()
}

// Retreat moves to the previous story. It is a no-op at the first position.
func (s *Session) Retreat() {
	if s.phase != Positioned {
		return
	}
	if s.ordering.Retreat() {
		s.enter()
	}
	s.notify()
}

func (s *Session) Pause() {
	if s.phase != Positioned {
		return
	}
	s.running = false
	s.notify()
}

// Resume continues from the current progress.
func (s *Session) Resume() {
	if s.phase != Positioned {
		return
	}
	s.running = true
	s.notify()
}

func (s *Session) TogglePause() {
	if s.running {
		s.Pause()
	} else {
		s.Resume()
	}
}

// ToggleLike cycles the current story through unset → true → false → true.
func (s *Session) ToggleLike() {
	it, ok := s.Current()
	if !ok {
		return
	}
	liked := !it.Story.Liked()
	it.Story.IsLiked = &liked
	if s.recorder != nil {
		if err := s.recorder.SetLiked(s.ctx, it.Story.ID, liked); err != nil {
			s.logger.Warn(s.ctx, "set liked failed", "story_id", it.Story.ID, "error", err)
		}
	}
	s.notify()
}

// Dismiss closes the viewer.
func (s *Session) Dismiss() {
	if s.phase == Dismissed {
		return
	}
	s.dismiss()
	s.notify()
}

// BarFill is the fill fraction of progress bar i: full before the current
// story, the live progress at it and empty after it.
func (s *Session) BarFill(i int) float64 {
	idx := s.ordering.Index()
	switch {
	case i < idx:
		return 1
	case i == idx:
		return s.progress
	default:
		return 0
	}
}

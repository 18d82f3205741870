package playback

import (
	"context"
	"time"
)

type Command int

const (
	CmdNext Command = iota
	CmdPrev
	CmdLike
	CmdTogglePause
	CmdPause
	CmdResume
	CmdQuit
)

func (s *Session) apply(c Command) {
	switch c {
	case CmdNext:
		s.Advance()
	case CmdPrev:
		s.Retreat()
	case CmdLike:
		s.ToggleLike()
	case CmdTogglePause:
		s.TogglePause()
	case CmdPause:
		s.Pause()
	case CmdResume:
		s.Resume()
	case CmdQuit:
		s.Dismiss()
	}
}

// Run starts the session and applies ticks and commands on the calling
// goroutine until the session is dismissed, commands is closed or ctx ends.
func (s *Session) Run(ctx context.Context, ticks <-chan time.Time, commands <-chan Command) error {
	s.ctx = ctx
	defer func() { s.ctx = context.WithoutCancel(ctx) }()

	s.Start()
	for s.phase != Dismissed {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticks:
			s.Tick()
		case c, ok := <-commands:
			if !ok {
				return nil
			}
			s.apply(c)
		}
	}
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/friendstories/internal/client/playback"
)

const (
	barWidth = 10
	maxBars  = 12
)

// viewer renders one playback session and feeds it line commands.
type viewer struct {
	app     *App
	out     io.Writer
	tty     bool
	session *playback.Session

	lastStory   int64
	lastRunning bool
	lastLiked   bool
}

func (a *App) newViewer() *viewer {
	return &viewer{app: a, out: a.out, tty: a.tty, lastStory: -1}
}

func (v *viewer) options() []playback.Option {
	return []playback.Option{
		playback.WithLogger(v.app.logger),
		playback.WithObserver(v.render),
	}
}

// play runs s until it is dismissed. Ticks come from a TickRate ticker and
// commands from the shared input lines.
func (v *viewer) play(ctx context.Context, s *playback.Session) error {
	v.session = s

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticker := time.NewTicker(time.Second / playback.TickRate)
	defer ticker.Stop()

	commands := make(chan playback.Command)
	pumped := make(chan struct{})
	go func() {
		defer close(pumped)
		pumpCommands(ctx, v.app.lines, commands)
	}()

	fmt.Fprintln(v.out, "n next, p previous, l like, s pause, q close")
	err := s.Run(ctx, ticker.C, commands)
	cancel()
	<-pumped
	if v.tty {
		fmt.Fprintln(v.out)
	}
	fmt.Fprintln(v.out, "Viewer closed")
	return err
}

// pumpCommands translates input lines into commands. EOF closes the viewer.
// A line read after the session stopped listening goes back to lines.
func pumpCommands(ctx context.Context, lines *lineSource, commands chan<- playback.Command) {
	for {
		line, err := lines.next(ctx)
		eof := errors.Is(err, io.EOF)
		switch {
		case eof:
			line = "q"
		case err != nil:
			return
		case ctx.Err() != nil:
			lines.unread(line)
			return
		}

		cmd, ok := parseViewerCommand(line)
		if !ok {
			continue
		}
		select {
		case commands <- cmd:
		case <-ctx.Done():
			if !eof {
				lines.unread(line)
			}
			return
		}
		if cmd == playback.CmdQuit {
			return
		}
	}
}

func parseViewerCommand(line string) (playback.Command, bool) {
	if line != "" && strings.TrimSpace(line) == "" {
		return playback.CmdTogglePause, true
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "n", "next":
		return playback.CmdNext, true
	case "p", "prev":
		return playback.CmdPrev, true
	case "l", "like":
		return playback.CmdLike, true
	case "s", "pause":
		return playback.CmdTogglePause, true
	case "q", "quit", "exit":
		return playback.CmdQuit, true
	}
	return 0, false
}

// render is the session observer. On a terminal the status line is redrawn
// in place on every state; otherwise a line is written only when the story,
// pause or like state changes.
func (v *viewer) render(st playback.State) {
	if st.Phase != playback.Positioned || st.Story == nil {
		return
	}
	changed := st.Story.ID != v.lastStory || st.Running != v.lastRunning || st.Story.Liked() != v.lastLiked
	v.lastStory, v.lastRunning, v.lastLiked = st.Story.ID, st.Running, st.Story.Liked()

	if v.tty {
		fmt.Fprintf(v.out, "\r\033[K%s", v.statusLine(st))
		return
	}
	if changed {
		fmt.Fprintln(v.out, v.statusLine(st))
	}
}

func (v *viewer) statusLine(st playback.State) string {
	var b strings.Builder
	b.WriteString(v.bars(st.Count))
	if st.User != nil {
		fmt.Fprintf(&b, " @%s", st.User.Username)
	}
	fmt.Fprintf(&b, " %d/%d %s", st.Index+1, st.Count, describe(st.Story))
	if st.Last {
		b.WriteString(" (last)")
	}
	if !st.Running {
		b.WriteString(" [paused]")
	}
	return b.String()
}

// bars draws one segment per story. Long flattened sequences collapse to
// the current story's segment.
func (v *viewer) bars(n int) string {
	first, last := 0, n
	if n > maxBars {
		idx := v.session.Ordering().Index()
		first, last = idx, idx+1
	}
	var b strings.Builder
	for i := first; i < last; i++ {
		if i > first {
			b.WriteByte('|')
		}
		filled := int(v.session.BarFill(i)*barWidth + 0.5)
		b.WriteString(strings.Repeat("#", filled))
		b.WriteString(strings.Repeat(".", barWidth-filled))
	}
	return "[" + b.String() + "]"
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Refresh(ctx context.Context) error
	More(ctx context.Context) error
	SyncAll(ctx context.Context) error
	Friends(ctx context.Context) error
	Newest(ctx context.Context) error
	Liked(ctx context.Context) error
	View(ctx context.Context, args []string) error
	ViewNew(ctx context.Context, args []string) error
	ViewLiked(ctx context.Context, args []string) error
	Speed(ctx context.Context, args []string) error
	Post(ctx context.Context, args []string) error
	ResetSeen(ctx context.Context) error
}

const helpText = "Available commands: sync, more, syncall, friends, newest, liked, " +
	"view <user#> [story#], viewnew <#>, viewliked <#>, speed [fast|normal|slow], " +
	"post <user_id> <image_url> [caption], reset-seen, exit"

// readLines pumps r into a channel so the REPL and the viewer can share one
// input stream. The channel is closed on EOF or when ctx ends.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case out <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// lineSource hands input lines to one reader at a time. A reader that takes
// a line it cannot use returns it with unread so the next reader sees it.
type lineSource struct {
	ch <-chan string

	mu      sync.Mutex
	pending []string
}

func newLineSource(ch <-chan string) *lineSource {
	return &lineSource{ch: ch}
}

// next returns the next line, io.EOF once the input is exhausted, or the
// context error.
func (s *lineSource) next(ctx context.Context) (string, error) {
	s.mu.Lock()
	if len(s.pending) > 0 {
		line := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()
		return line, nil
	}
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.ch:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

func (s *lineSource) unread(line string) {
	s.mu.Lock()
	s.pending = append([]string{line}, s.pending...)
	s.mu.Unlock()
}

// runREPL reads commands from lines and dispatches them to a until the
// input ends or the user types "exit" or "quit". Handler errors are
// printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, lines *lineSource) {
	for {
		printlnFn(fmt.Sprintf("stories (%s) > ", statusFn()))

		line, err := lines.next(ctx)
		if err != nil {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)
		case "sync":
			err = a.Refresh(ctx)
		case "more":
			err = a.More(ctx)
		case "syncall":
			err = a.SyncAll(ctx)
		case "friends", "f":
			err = a.Friends(ctx)
		case "newest":
			err = a.Newest(ctx)
		case "liked":
			err = a.Liked(ctx)
		case "view", "v":
			err = a.View(ctx, args)
		case "viewnew":
			err = a.ViewNew(ctx, args)
		case "viewliked":
			err = a.ViewLiked(ctx, args)
		case "speed":
			err = a.Speed(ctx, args)
		case "post":
			err = a.Post(ctx, args)
		case "reset-seen":
			err = a.ResetSeen(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

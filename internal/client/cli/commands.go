package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/friendstories/internal/client/models"
	"github.com/dmitrijs2005/friendstories/internal/client/playback"
	"github.com/dmitrijs2005/friendstories/internal/client/settings"
	"github.com/dmitrijs2005/friendstories/internal/common"
)

func (a *App) Refresh(ctx context.Context) error {
	_, more, err := a.sync.Refresh(ctx)
	if err != nil {
		return syncError(err)
	}
	fmt.Fprintln(a.out, "Synced page 1"+moreSuffix(more))
	return nil
}

func (a *App) More(ctx context.Context) error {
	cp, err := a.sync.Checkpoint(ctx)
	if err != nil {
		return err
	}
	_, more, err := a.sync.SyncNext(ctx)
	if err != nil {
		return syncError(err)
	}
	fmt.Fprintf(a.out, "Synced page %d%s\n", cp.Cursor, moreSuffix(more))
	return nil
}

func (a *App) SyncAll(ctx context.Context) error {
	n, err := a.sync.SyncAll(ctx)
	if err != nil {
		return syncError(err)
	}
	fmt.Fprintf(a.out, "Synced %d page(s)\n", n)
	return nil
}

func syncError(err error) error {
	switch {
	case errors.Is(err, common.ErrSyncInProgress):
		return errors.New("a sync is already running")
	case errors.Is(err, common.ErrTransport):
		return fmt.Errorf("server unreachable, showing cached stories: %w", err)
	}
	return err
}

func moreSuffix(more bool) string {
	if more {
		return " (more available, type 'more')"
	}
	return ""
}

func (a *App) Friends(ctx context.Context) error {
	friends, err := a.feed.Friends(ctx)
	if err != nil {
		return err
	}
	if len(friends) == 0 {
		fmt.Fprintln(a.out, "No stories yet. Try 'sync'.")
		return nil
	}
	for i, u := range friends {
		unseen := 0
		for _, s := range u.Stories {
			if !s.IsSeen() {
				unseen++
			}
		}
		marker := " "
		if unseen > 0 {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s%2d. %-16s %d stories, %d new\n", marker, i+1, u.Username, len(u.Stories), unseen)
	}
	return nil
}

func (a *App) Newest(ctx context.Context) error {
	items, err := a.feed.Newest(ctx)
	if err != nil {
		return err
	}
	a.printItems(items, "No stories yet. Try 'sync'.")
	return nil
}

func (a *App) Liked(ctx context.Context) error {
	items, err := a.feed.Favorites(ctx)
	if err != nil {
		return err
	}
	a.printItems(items, "No liked stories.")
	return nil
}

func (a *App) printItems(items []playback.Item, empty string) {
	if len(items) == 0 {
		fmt.Fprintln(a.out, empty)
		return
	}
	for i, it := range items {
		fmt.Fprintf(a.out, "%3d. %s  %-16s %s\n", i+1, it.Story.CreatedAt.Local().Format(time.DateTime), it.User.Username, describe(it.Story))
	}
}

func describe(s *models.Story) string {
	var b strings.Builder
	if s.Caption != nil {
		b.WriteString(*s.Caption)
	} else {
		b.WriteString(s.ImageURL)
	}
	if s.Liked() {
		b.WriteString(" ♥")
	}
	if !s.IsSeen() {
		b.WriteString(" (new)")
	}
	return b.String()
}

// position parses the 1-based argument at i. A missing argument yields def.
func position(args []string, i, def int) (int, error) {
	if i >= len(args) {
		return def, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid number %q", args[i])
	}
	return n - 1, nil
}

func (a *App) View(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: view <user#> [story#]")
	}
	user, err := position(args, 0, 0)
	if err != nil {
		return err
	}
	story, err := position(args, 1, 0)
	if err != nil {
		return err
	}
	v := a.newViewer()
	s, err := a.feed.OpenUser(ctx, user, story, v.options()...)
	if err != nil {
		return err
	}
	return v.play(ctx, s)
}

func (a *App) ViewNew(ctx context.Context, args []string) error {
	start, err := position(args, 0, 0)
	if err != nil {
		return err
	}
	v := a.newViewer()
	s, err := a.feed.OpenInOrder(ctx, start, v.options()...)
	if err != nil {
		return err
	}
	return v.play(ctx, s)
}

// ViewLiked plays liked stories grouped by friend, starting at the story
// numbered in the liked listing.
func (a *App) ViewLiked(ctx context.Context, args []string) error {
	start, err := position(args, 0, 0)
	if err != nil {
		return err
	}
	items, err := a.feed.Favorites(ctx)
	if err != nil {
		return err
	}
	var storyID int64
	if len(items) > 0 {
		storyID = items[min(start, len(items)-1)].Story.ID
	}
	v := a.newViewer()
	s, err := a.feed.OpenFavorites(ctx, storyID, v.options()...)
	if err != nil {
		return err
	}
	return v.play(ctx, s)
}

func (a *App) Speed(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(a.out, "Story speed: %s (%s per story)\n", a.settings.Speed(), a.settings.StoryDuration())
		return nil
	}
	sp, err := settings.ParseSpeed(args[0])
	if err != nil {
		return err
	}
	if err := a.settings.SetSpeed(sp); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Story speed set to %s (%s per story)\n", sp, sp.Duration())
	return nil
}

func (a *App) Post(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: post <user_id> <image_url> [caption...]")
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user id %q", args[0])
	}
	req := &models.CreateStoryRequest{UserID: userID, ImageURL: args[1]}
	if caption := strings.Join(args[2:], " "); caption != "" {
		req.Caption = &caption
	}

	st, err := a.client.CreateStory(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Posted story %d. Type 'sync' to see it.\n", st.ID)
	return nil
}

func (a *App) ResetSeen(ctx context.Context) error {
	n, err := a.feed.ResetSeen(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Marked %d stories unseen\n", n)
	return nil
}

// Package playback implements the story viewer state machine: an ordering
// strategy that decides which story comes next, and a Session that drives
// the dwell timer, seen marking and likes on top of it.
package playback

import (
	"sort"

	"github.com/dmitrijs2005/friendstories/internal/client/models"
)

// Item is one (user, story) position.
type Item struct {
	User  *models.User
	Story *models.Story
}

// Filter restricts which stories take part in an ordering. nil keeps all.
type Filter func(*models.Story) bool

// LikedOnly keeps explicitly liked stories.
func LikedOnly(s *models.Story) bool { return s.Liked() }

// Ordering is the navigation strategy behind a Session. Advance and Retreat
// report whether the position moved; a failed Advance means the end of the
// ordering was reached.
type Ordering interface {
	Current() (Item, bool)
	Advance() bool
	Retreat() bool
	IsAtEnd() bool
	// Stories is the list the progress bars are drawn for and Index the
	// current position within it.
	Stories() []*models.Story
	Index() int
	User() *models.User
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func filterStories(stories []*models.Story, keep Filter) []*models.Story {
	out := make([]*models.Story, 0, len(stories))
	for _, s := range stories {
		if keep == nil || keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// oldestFirst orders by creation time, then id.
func oldestFirst(stories []*models.Story) {
	sort.SliceStable(stories, func(i, j int) bool {
		a, b := stories[i], stories[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

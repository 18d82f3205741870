package playback

import (
	"sort"

	"github.com/dmitrijs2005/friendstories/internal/client/models"
)

// Flattened walks a pre-built sequence of items one step at a time.
type Flattened struct {
	items   []Item
	stories []*models.Story
	index   int
}

// NewFlattened positions the ordering at start, clamped into range.
func NewFlattened(items []Item, start int) *Flattened {
	stories := make([]*models.Story, len(items))
	for i, it := range items {
		stories[i] = it.Story
	}
	return &Flattened{items: items, stories: stories, index: clamp(start, len(items))}
}

// NewestFirst flattens the matching stories of all users into one sequence,
// most recent first. Ties fall back to the higher id first.
func NewestFirst(users []*models.User, keep Filter) []Item {
	var items []Item
	for _, u := range users {
		for _, s := range filterStories(u.Stories, keep) {
			items = append(items, Item{User: u, Story: s})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Story, items[j].Story
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return items
}

func (f *Flattened) Current() (Item, bool) {
	if f.index >= len(f.items) {
		return Item{}, false
	}
	return f.items[f.index], true
}

func (f *Flattened) Advance() bool {
	if f.index+1 >= len(f.items) {
		return false
	}
	f.index++
	return true
}

func (f *Flattened) Retreat() bool {
	if f.index == 0 {
		return false
	}
	f.index--
	return true
}

func (f *Flattened) IsAtEnd() bool { return f.index+1 >= len(f.items) }

func (f *Flattened) Stories() []*models.Story { return f.stories }

func (f *Flattened) Index() int { return f.index }

func (f *Flattened) User() *models.User {
	if it, ok := f.Current(); ok {
		return it.User
	}
	return nil
}

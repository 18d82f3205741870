package playback

import "github.com/dmitrijs2005/friendstories/internal/client/models"

// Grouped walks users in order and, for each, their matching stories oldest
// first. Advancing past a user's last story jumps to the next user with at
// least one matching story. Retreat never leaves the current user.
type Grouped struct {
	users   []*models.User
	stories [][]*models.Story
	user    int
	story   int
}

// NewGrouped positions the ordering at (userIndex, storyIndex), clamping
// both into range. The start user may have no matching story, in which case
// Current reports false until the first Advance.
func NewGrouped(users []*models.User, userIndex, storyIndex int, keep Filter) *Grouped {
	g := &Grouped{users: users, stories: make([][]*models.Story, len(users))}
	for i, u := range users {
		list := filterStories(u.Stories, keep)
		oldestFirst(list)
		g.stories[i] = list
	}
	g.user = clamp(userIndex, len(users))
	if len(users) > 0 {
		g.story = clamp(storyIndex, len(g.stories[g.user]))
	}
	return g
}

// Seek moves to the matching story with the given id. It reports false and
// leaves the position unchanged when no user holds it.
func (g *Grouped) Seek(storyID int64) bool {
	for u, list := range g.stories {
		for i, st := range list {
			if st.ID == storyID {
				g.user, g.story = u, i
				return true
			}
		}
	}
	return false
}

func (g *Grouped) current() []*models.Story {
	if len(g.users) == 0 {
		return nil
	}
	return g.stories[g.user]
}

func (g *Grouped) Current() (Item, bool) {
	list := g.current()
	if g.story >= len(list) {
		return Item{}, false
	}
	return Item{User: g.users[g.user], Story: list[g.story]}, true
}

// nextUser returns the first user after the current one with a matching
// story, or -1.
func (g *Grouped) nextUser() int {
	for u := g.user + 1; u < len(g.users); u++ {
		if len(g.stories[u]) > 0 {
			return u
		}
	}
	return -1
}

func (g *Grouped) Advance() bool {
	if g.story+1 < len(g.current()) {
		g.story++
		return true
	}
	if u := g.nextUser(); u >= 0 {
		g.user, g.story = u, 0
		return true
	}
	return false
}

func (g *Grouped) Retreat() bool {
	if g.story == 0 || g.story >= len(g.current()) {
		return false
	}
	g.story--
	return true
}

func (g *Grouped) IsAtEnd() bool {
	return g.story+1 >= len(g.current()) && g.nextUser() < 0
}

func (g *Grouped) Stories() []*models.Story { return g.current() }

func (g *Grouped) Index() int { return g.story }

// UserIndex is the position of the current user in the ordering.
func (g *Grouped) UserIndex() int { return g.user }

func (g *Grouped) User() *models.User {
	if len(g.users) == 0 {
		return nil
	}
	return g.users[g.user]
}

// Package models defines the client-side story types and the wire DTOs
// exchanged with the stories API.
package models

import "time"

// User is a friend whose stories are cached locally. Stories is the owning
// collection, filled by the library loader.
type User struct {
	ID        int64
	Username  string
	AvatarURL *string
	Stories   []*Story
}

// Story is a cached story. SeenAt and IsLiked are local state and are never
// overwritten by a sync. IsLiked is nil until the viewer first reacts.
type Story struct {
	ID        int64
	UserID    int64
	ImageURL  string
	Caption   *string
	CreatedAt time.Time
	SeenAt    *time.Time
	IsLiked   *bool
}

func (s *Story) IsSeen() bool {
	return s.SeenAt != nil
}

// Liked reports whether the story is explicitly liked.
func (s *Story) Liked() bool {
	return s.IsLiked != nil && *s.IsLiked
}

// HasUnseen reports whether any of the user's stories is unseen.
func (u *User) HasUnseen() bool {
	for _, s := range u.Stories {
		if !s.IsSeen() {
			return true
		}
	}
	return false
}

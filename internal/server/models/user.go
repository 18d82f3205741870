// Package models defines the server-side persistence and feed types.
package models

// User is a story author. AvatarURL is nullable.
type User struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

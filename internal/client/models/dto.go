package models

import "time"

type UserDTO struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

type StoryDTO struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id,omitempty"`
	ImageURL  string    `json:"image_url"`
	Caption   *string   `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

type FeedGroupDTO struct {
	User    UserDTO    `json:"user"`
	Stories []StoryDTO `json:"stories"`
}

// FeedPage is one page of GET /api/stories.
type FeedPage struct {
	Data    []FeedGroupDTO `json:"data"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	HasMore bool           `json:"hasMore"`
}

type CreateStoryRequest struct {
	UserID   int64   `json:"user_id"`
	ImageURL string  `json:"image_url"`
	Caption  *string `json:"caption,omitempty"`
}

func (d UserDTO) ToModel() *User {
	return &User{ID: d.ID, Username: d.Username, AvatarURL: d.AvatarURL}
}

// ToModel converts the wire story into a local story owned by userID. Local
// fields are left unset.
func (d StoryDTO) ToModel(userID int64) *Story {
	return &Story{
		ID:        d.ID,
		UserID:    userID,
		ImageURL:  d.ImageURL,
		Caption:   d.Caption,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

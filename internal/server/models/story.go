package models

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Story is a single image post. CreatedAt is assigned by the database.
type Story struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ImageURL  string    `json:"image_url"`
	Caption   *string   `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedStory is the story shape embedded in feed groups; it omits the owner
// because the group already carries it.
type FeedStory struct {
	ID        int64     `json:"id"`
	ImageURL  string    `json:"image_url"`
	Caption   *string   `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedGroup bundles one user with their stories, newest first.
type FeedGroup struct {
	User    User        `json:"user"`
	Stories []FeedStory `json:"stories"`
}

// FeedPage is one page of the grouped feed.
type FeedPage struct {
	Data    []FeedGroup `json:"data"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
	HasMore bool        `json:"hasMore"`
}

// CreateStoryRequest is the POST /api/stories payload.
type CreateStoryRequest struct {
	UserID   int64   `json:"user_id" validate:"required|min:1"`
	ImageURL string  `json:"image_url" validate:"required"`
	Caption  *string `json:"caption"`
}

// UnmarshalJSON accepts user_id as a number or a numeric string. Any other
// value leaves UserID zero so validation rejects it.
func (r *CreateStoryRequest) UnmarshalJSON(b []byte) error {
	type plain CreateStoryRequest
	aux := struct {
		*plain
		UserID json.RawMessage `json:"user_id"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.UserID = parseUserID(aux.UserID)
	return nil
}

func parseUserID(raw json.RawMessage) int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		raw = []byte(strings.TrimSpace(s))
	}
	if id, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
		return id
	}
	if f, err := strconv.ParseFloat(string(raw), 64); err == nil && f == float64(int64(f)) {
		return int64(f)
	}
	return 0
}

package domain

import "time"

type VoteValue string

const (
	VoteUp   VoteValue = "up"
	VoteDown VoteValue = "down"
)

// Vote records a user's reaction to a piece of dashboard content.
// One vote per (user, content) pair; re-voting overwrites the value.
type Vote struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ContentID string    `json:"content_id"`
	Vote      VoteValue `json:"vote"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

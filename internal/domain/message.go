package domain

import (
	"time"
)

type Message struct {
	ID         int64      `json:"id"`
	AuthorID   int64      `json:"user_id"`
	GroupID    *int64     `json:"group_id"`
	ReceiverID *int64     `json:"receiver_id"`
	Content    Content    `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
	Edited     bool       `json:"edited"`
	Pinned     bool       `json:"pinned"`
	ReplyTo    *int64     `json:"reply_to,omitempty"`
	Mentions   *string    `json:"mentions,omitempty"`
	// Joined fields
	AuthorUsername string `json:"username,omitempty"`
}

// Audience derives the message's visibility scope from its addressing
// columns. The columns are immutable after creation, so this never changes
// over a message's lifetime.
func (m *Message) Audience() Audience {
	switch {
	case m.GroupID != nil:
		return GroupAudience(*m.GroupID)
	case m.ReceiverID != nil:
		return PrivateAudience(m.AuthorID, *m.ReceiverID)
	default:
		return GeneralAudience()
	}
}

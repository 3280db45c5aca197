package types

import (
	"time"
)

// Message is the wire form of a chat message as returned by the polling
// endpoints. UserId is nil for anonymous or legacy senders and omitted
// on the legacy feed.
type Message struct {
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	UserId    *int      `json:"user_id,omitempty"`
}

type User struct {
	Id       int    `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
	IsOnline bool   `json:"is_online"`
}

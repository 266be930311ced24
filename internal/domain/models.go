package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated account. Email is the natural key.
type User struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is a titled conversation owned by exactly one user.
type Session struct {
	SessionID    string    `json:"session_id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	Category     string    `json:"category,omitempty"`
	LastMessage  string    `json:"last_message,omitempty"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Message is one persisted utterance. Only Feedback changes after insert.
type Message struct {
	MessageID string    `json:"message_id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Category  string    `json:"category,omitempty"`
	Feedback  string    `json:"feedback,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionDetail is a session with its messages in timestamp order.
type SessionDetail struct {
	Session
	Messages []Message `json:"messages"`
}

// SessionPage is one page of a user's sessions.
type SessionPage struct {
	Sessions []Session `json:"sessions"`
	Page     int       `json:"page"`
	Size     int       `json:"size"`
	Total    int       `json:"total"`
}

// NewUserID generates a user identifier.
func NewUserID() string {
	return "usr_" + uuid.New().String()
}

// NewSessionID generates a session identifier.
func NewSessionID() string {
	return "sess_" + uuid.New().String()
}

// NewMessageID generates a message identifier.
func NewMessageID() string {
	return "msg_" + uuid.New().String()
}

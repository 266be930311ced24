package domain

import "time"

// TurnRequest is a user message submitted for a response.
type TurnRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	Category  string `json:"category,omitempty"`
}

// TurnResult is returned after a turn has been persisted.
type TurnResult struct {
	MessageID string    `json:"message_id"`
	Response  string    `json:"response"`
	Category  string    `json:"category,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
}

// FeedbackRequest annotates an assistant message.
type FeedbackRequest struct {
	MessageID string `json:"message_id"`
	Feedback  string `json:"feedback"`
}

// UpsertUserRequest provisions a user profile from the auth service.
type UpsertUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ExportFile is a rendered export ready for download.
type ExportFile struct {
	Format      ExportFormat
	Filename    string
	ContentType string
	Data        []byte
}

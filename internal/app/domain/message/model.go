// Package message holds advisory message records and the template-based
// selection logic.
package message

import "time"

// Message is a persisted advisory message shown to a participant.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	GameType  string    `json:"game_type"`
	Round     int       `json:"round"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

// Feedback records whether a participant found a message helpful.
type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MessageID string    `json:"message_id"`
	Helpful   bool      `json:"helpful"`
	Timestamp time.Time `json:"timestamp"`
}

// RoleAssistant is the role stored on generated messages.
const RoleAssistant = "assistant"

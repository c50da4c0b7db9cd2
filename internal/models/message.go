// Package models contains data types and constants for the ragchat client.
package models

import "time"

// Sender identifies who produced a message.
type Sender string

const (
	// SenderUser marks a message typed by the user
	SenderUser Sender = "user"
	// SenderBot marks an answer produced by the backend
	SenderBot Sender = "bot"
)

// Message represents a single message in a conversation.
// The trailing bot message is mutated in place while an answer streams in;
// every other message is immutable once appended.
type Message struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// QueryRequest is the JSON body sent to the backend.
type QueryRequest struct {
	Query string `json:"query"`
}

// AnswerResponse is the structured (non-streaming) response body.
type AnswerResponse struct {
	Answer string `json:"answer"`
}

package api

import (
	"strings"
	"sync"
	"time"

	apierrors "github.com/diogo/ragchat/internal/errors"
	"github.com/diogo/ragchat/internal/models"
)

// ChatSession holds the conversation state and drives the request/response
// cycle against the backend.
//
// The session is the single writer of its message list. While an exchange is
// in flight the loading flag is set and further submissions are rejected, so
// at most one in-flight bot message exists at any time: the trailing element
// while streaming is true.
type ChatSession struct {
	client ClientInterface

	mu        sync.RWMutex
	messages  []models.Message
	loading   bool
	streaming bool
}

// NewChatSession creates a session bound to a backend client
func NewChatSession(client ClientInterface) *ChatSession {
	return &ChatSession{client: client}
}

// Submit sends a query to the backend and folds the response into the
// message list.
//
// Empty or whitespace-only input returns ErrEmptyQuery without touching the
// session. A submission while another exchange is in flight returns ErrBusy
// without touching the session. Otherwise a user message and an empty bot
// message are appended, and the bot message is filled in as the answer
// arrives: chunk by chunk for a streamed response, in one step for a
// structured one. On any failure the bot message is replaced with a fixed
// apology and the error returned.
//
// onUpdate, when non-nil, is invoked after every visible mutation of the
// message list so callers can re-render.
func (s *ChatSession) Submit(query string, onUpdate func()) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return apierrors.ErrEmptyQuery
	}

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return apierrors.ErrBusy
	}
	s.loading = true
	now := time.Now()
	s.messages = append(s.messages,
		models.Message{Sender: models.SenderUser, Text: query, Timestamp: now},
		models.Message{Sender: models.SenderBot, Timestamp: now},
	)
	s.mu.Unlock()
	notify(onUpdate)

	answer, err := s.client.Ask(query, func(chunk string) {
		s.appendChunk(chunk)
		notify(onUpdate)
	})

	s.mu.Lock()
	last := len(s.messages) - 1
	if err != nil {
		s.messages[last].Text = models.ApologyText
	} else {
		// On the streaming path the text already equals the accumulated
		// chunks; on the JSON path this is the only assignment.
		s.messages[last].Text = answer
	}
	s.streaming = false
	s.loading = false
	s.mu.Unlock()
	notify(onUpdate)

	return err
}

// appendChunk appends a streamed chunk to the trailing bot message
func (s *ChatSession) appendChunk(chunk string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.streaming = true
	last := len(s.messages) - 1
	s.messages[last].Text += chunk
}

// Messages returns a copy of the message list
func (s *ChatSession) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Message, len(s.messages))
	copy(result, s.messages)
	return result
}

// Loading reports whether an exchange is in flight
func (s *ChatSession) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Streaming reports whether a streamed answer is currently arriving
func (s *ChatSession) Streaming() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.streaming
}

// LastAnswer returns the text of the trailing bot message, or "" when the
// conversation is empty
func (s *ChatSession) LastAnswer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Sender == models.SenderBot {
			return s.messages[i].Text
		}
	}
	return ""
}

// Reset clears the conversation. It is a no-op while an exchange is in flight.
func (s *ChatSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return
	}
	s.messages = nil
}

// SetMessages replaces the conversation, used when resuming a saved chat.
// It is a no-op while an exchange is in flight.
func (s *ChatSession) SetMessages(messages []models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return
	}
	s.messages = make([]models.Message, len(messages))
	copy(s.messages, messages)
}

func notify(onUpdate func()) {
	if onUpdate != nil {
		onUpdate()
	}
}

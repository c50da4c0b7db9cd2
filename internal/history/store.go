// Package history provides local conversation history storage.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/diogo/ragchat/internal/models"
)

// Conversation represents a saved chat conversation
type Conversation struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Endpoint  string           `json:"endpoint,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Messages  []models.Message `json:"messages"`
}

// Store manages conversation history persistence
type Store struct {
	baseDir string
	mu      sync.RWMutex
}

// NewStore creates a new history store rooted at baseDir
func NewStore(baseDir string) (*Store, error) {
	historyDir := filepath.Join(baseDir, "history")
	if err := os.MkdirAll(historyDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	return &Store{
		baseDir: historyDir,
	}, nil
}

// CreateConversation creates a new conversation
func (s *Store) CreateConversation(endpoint string) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	conv := &Conversation{
		ID:        uuid.NewString(),
		Title:     fmt.Sprintf("Chat %s", now.Format("2006-01-02 15:04")),
		Endpoint:  endpoint,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []models.Message{},
	}

	if err := s.saveConversation(conv); err != nil {
		return nil, err
	}

	return conv, nil
}

// GetConversation retrieves a conversation by ID
func (s *Store) GetConversation(id string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadConversation(id)
}

// ListConversations returns all conversations, sorted by most recent
func (s *Store) ListConversations() ([]*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read history directory: %w", err)
	}

	var conversations []*Conversation
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		id := entry.Name()[:len(entry.Name())-5] // Remove .json
		conv, err := s.loadConversation(id)
		if err != nil {
			continue // Skip corrupted files
		}
		conversations = append(conversations, conv)
	}

	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].UpdatedAt.After(conversations[j].UpdatedAt)
	})

	return conversations, nil
}

// AddMessage appends a message to a conversation
func (s *Store) AddMessage(id string, msg models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.loadConversation(id)
	if err != nil {
		return err
	}

	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	conv.Messages = append(conv.Messages, msg)
	conv.UpdatedAt = time.Now()

	// Derive title from the first user message while still default
	if msg.Sender == models.SenderUser && len(conv.Messages) == 1 {
		title := msg.Text
		if len(title) > 50 {
			title = title[:50] + "..."
		}
		conv.Title = title
	}

	return s.saveConversation(conv)
}

// SetMessages replaces a conversation's message list
func (s *Store) SetMessages(id string, messages []models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.loadConversation(id)
	if err != nil {
		return err
	}

	conv.Messages = make([]models.Message, len(messages))
	copy(conv.Messages, messages)
	conv.UpdatedAt = time.Now()

	if len(conv.Messages) > 0 && conv.Messages[0].Sender == models.SenderUser {
		title := conv.Messages[0].Text
		if len(title) > 50 {
			title = title[:50] + "..."
		}
		conv.Title = title
	}

	return s.saveConversation(conv)
}

// UpdateTitle updates the title of a conversation
func (s *Store) UpdateTitle(id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.loadConversation(id)
	if err != nil {
		return err
	}

	conv.Title = title
	conv.UpdatedAt = time.Now()

	return s.saveConversation(conv)
}

// DeleteConversation removes a conversation
func (s *Store) DeleteConversation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.conversationPath(id)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("conversation not found: %s", id)
		}
		return fmt.Errorf("failed to delete conversation: %w", err)
	}

	return nil
}

// ClearAll deletes all conversations
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to read history directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		path := filepath.Join(s.baseDir, entry.Name())
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// Internal methods

func (s *Store) conversationPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *Store) loadConversation(id string) (*Conversation, error) {
	path := s.conversationPath(id)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("conversation not found: %s", id)
		}
		return nil, fmt.Errorf("failed to read conversation: %w", err)
	}

	var conv Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("failed to parse conversation: %w", err)
	}

	return &conv, nil
}

func (s *Store) saveConversation(conv *Conversation) error {
	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}

	path := s.conversationPath(conv.ID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write conversation: %w", err)
	}

	return nil
}

// GetHistoryDir returns the default history directory path
func GetHistoryDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".ragchat"), nil
}

// DefaultStore creates a store using the default location
func DefaultStore() (*Store, error) {
	dir, err := GetHistoryDir()
	if err != nil {
		return nil, err
	}
	return NewStore(dir)
}

package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diogo/ragchat/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store
}

func TestCreateAndGetConversation(t *testing.T) {
	store := newTestStore(t)

	conv, err := store.CreateConversation("http://localhost:8080")
	if err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}
	if conv.ID == "" {
		t.Error("conversation ID is empty")
	}
	if conv.Endpoint != "http://localhost:8080" {
		t.Errorf("endpoint = %q", conv.Endpoint)
	}

	loaded, err := store.GetConversation(conv.ID)
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if loaded.ID != conv.ID {
		t.Errorf("loaded ID = %q, want %q", loaded.ID, conv.ID)
	}
	if len(loaded.Messages) != 0 {
		t.Errorf("new conversation has %d messages", len(loaded.Messages))
	}
}

func TestGetConversationNotFound(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.GetConversation("missing"); err == nil {
		t.Error("expected error for missing conversation")
	}
}

func TestAddMessage(t *testing.T) {
	store := newTestStore(t)

	conv, err := store.CreateConversation("")
	if err != nil {
		t.Fatal(err)
	}

	err = store.AddMessage(conv.ID, models.Message{
		Sender: models.SenderUser,
		Text:   "what is retrieval augmented generation?",
	})
	if err != nil {
		t.Fatalf("AddMessage failed: %v", err)
	}
	err = store.AddMessage(conv.ID, models.Message{
		Sender: models.SenderBot,
		Text:   "It combines search with generation.",
	})
	if err != nil {
		t.Fatalf("AddMessage failed: %v", err)
	}

	loaded, err := store.GetConversation(conv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(loaded.Messages))
	}
	if loaded.Messages[0].Timestamp.IsZero() {
		t.Error("message timestamp not set")
	}

	// Title derived from first user message
	if loaded.Title != "what is retrieval augmented generation?" {
		t.Errorf("title = %q", loaded.Title)
	}
}

func TestAddMessageTruncatesLongTitle(t *testing.T) {
	store := newTestStore(t)

	conv, err := store.CreateConversation("")
	if err != nil {
		t.Fatal(err)
	}

	long := strings.Repeat("q", 80)
	if err := store.AddMessage(conv.ID, models.Message{Sender: models.SenderUser, Text: long}); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.GetConversation(conv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Title) != 53 || !strings.HasSuffix(loaded.Title, "...") {
		t.Errorf("title = %q, want 50 chars plus ellipsis", loaded.Title)
	}
}

func TestSetMessages(t *testing.T) {
	store := newTestStore(t)

	conv, err := store.CreateConversation("")
	if err != nil {
		t.Fatal(err)
	}

	messages := []models.Message{
		{Sender: models.SenderUser, Text: "q1", Timestamp: time.Now()},
		{Sender: models.SenderBot, Text: "a1", Timestamp: time.Now()},
		{Sender: models.SenderUser, Text: "q2", Timestamp: time.Now()},
		{Sender: models.SenderBot, Text: "a2", Timestamp: time.Now()},
	}
	if err := store.SetMessages(conv.ID, messages); err != nil {
		t.Fatalf("SetMessages failed: %v", err)
	}

	loaded, err := store.GetConversation(conv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Messages) != 4 {
		t.Errorf("expected 4 messages, got %d", len(loaded.Messages))
	}
	if loaded.Title != "q1" {
		t.Errorf("title = %q, want %q", loaded.Title, "q1")
	}
}

func TestListConversations(t *testing.T) {
	store := newTestStore(t)

	first, err := store.CreateConversation("")
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.CreateConversation("")
	if err != nil {
		t.Fatal(err)
	}

	// Touch the first conversation so it becomes the most recent
	time.Sleep(10 * time.Millisecond)
	if err := store.AddMessage(first.ID, models.Message{Sender: models.SenderUser, Text: "hi"}); err != nil {
		t.Fatal(err)
	}

	conversations, err := store.ListConversations()
	if err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if len(conversations) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(conversations))
	}
	if conversations[0].ID != first.ID {
		t.Error("conversations not sorted by most recent")
	}
	_ = second
}

func TestListSkipsCorruptedFiles(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.CreateConversation(""); err != nil {
		t.Fatal(err)
	}

	// Drop a broken file into the history directory
	broken := filepath.Join(store.baseDir, "broken.json")
	if err := os.WriteFile(broken, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	conversations, err := store.ListConversations()
	if err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if len(conversations) != 1 {
		t.Errorf("expected corrupted file to be skipped, got %d conversations", len(conversations))
	}
}

func TestDeleteConversation(t *testing.T) {
	store := newTestStore(t)

	conv, err := store.CreateConversation("")
	if err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteConversation(conv.ID); err != nil {
		t.Fatalf("DeleteConversation failed: %v", err)
	}
	if _, err := store.GetConversation(conv.ID); err == nil {
		t.Error("conversation still readable after delete")
	}
	if err := store.DeleteConversation(conv.ID); err == nil {
		t.Error("expected error deleting a missing conversation")
	}
}

func TestClearAll(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := store.CreateConversation(""); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	conversations, err := store.ListConversations()
	if err != nil {
		t.Fatal(err)
	}
	if len(conversations) != 0 {
		t.Errorf("expected no conversations after clear, got %d", len(conversations))
	}
}

func TestUpdateTitle(t *testing.T) {
	store := newTestStore(t)

	conv, err := store.CreateConversation("")
	if err != nil {
		t.Fatal(err)
	}

	if err := store.UpdateTitle(conv.ID, "renamed"); err != nil {
		t.Fatalf("UpdateTitle failed: %v", err)
	}

	loaded, err := store.GetConversation(conv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Title != "renamed" {
		t.Errorf("title = %q, want renamed", loaded.Title)
	}
}

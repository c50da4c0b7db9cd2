package commands

import (
	"strings"
	"testing"
	"time"

	"github.com/diogo/ragchat/internal/history"
	"github.com/diogo/ragchat/internal/models"
)

func seedConversation(t *testing.T) *history.Conversation {
	t.Helper()

	store, err := history.DefaultStore()
	if err != nil {
		t.Fatalf("DefaultStore failed: %v", err)
	}

	conv, err := store.CreateConversation("http://localhost:8080")
	if err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	msgs := []models.Message{
		{Sender: models.SenderUser, Text: "What is a vector index?", Timestamp: time.Now()},
		{Sender: models.SenderBot, Text: "A data structure for similarity search.", Timestamp: time.Now()},
	}
	for _, msg := range msgs {
		if err := store.AddMessage(conv.ID, msg); err != nil {
			t.Fatalf("AddMessage failed: %v", err)
		}
	}

	return conv
}

func TestHistoryList_Empty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out := captureStdout(t, func() {
		if err := runHistoryList(historyListCmd, nil); err != nil {
			t.Errorf("runHistoryList failed: %v", err)
		}
	})

	if !strings.Contains(out, "No conversations found") {
		t.Errorf("Expected empty message, got: %s", out)
	}
}

func TestHistoryList_WithConversations(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	conv := seedConversation(t)

	out := captureStdout(t, func() {
		if err := runHistoryList(historyListCmd, nil); err != nil {
			t.Errorf("runHistoryList failed: %v", err)
		}
	})

	if !strings.Contains(out, conv.ID) {
		t.Errorf("Expected conversation ID in listing, got: %s", out)
	}
	if !strings.Contains(out, "What is a vector index?") {
		t.Errorf("Expected title in listing, got: %s", out)
	}
}

func TestHistoryShow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	conv := seedConversation(t)

	out := captureStdout(t, func() {
		if err := runHistoryShow(historyShowCmd, []string{conv.ID}); err != nil {
			t.Errorf("runHistoryShow failed: %v", err)
		}
	})

	if !strings.Contains(out, "Assistant") {
		t.Errorf("Expected assistant turn in output, got: %s", out)
	}
	if !strings.Contains(out, "similarity search") {
		t.Errorf("Expected answer text in output, got: %s", out)
	}
}

func TestHistoryShow_NotFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := runHistoryShow(historyShowCmd, []string{"missing-id"}); err == nil {
		t.Error("Expected error for missing conversation")
	}
}

func TestHistoryExport_Markdown(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	conv := seedConversation(t)

	oldFormat := exportFormatFlag
	exportFormatFlag = "markdown"
	defer func() { exportFormatFlag = oldFormat }()

	out := captureStdout(t, func() {
		if err := runHistoryExport(historyExportCmd, []string{conv.ID}); err != nil {
			t.Errorf("runHistoryExport failed: %v", err)
		}
	})

	if !strings.Contains(out, "## You") {
		t.Errorf("Expected markdown sections in export, got: %s", out)
	}
}

func TestHistoryDelete(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	conv := seedConversation(t)

	out := captureStdout(t, func() {
		if err := runHistoryDelete(historyDeleteCmd, []string{conv.ID}); err != nil {
			t.Errorf("runHistoryDelete failed: %v", err)
		}
	})

	if !strings.Contains(out, "Deleted") {
		t.Errorf("Expected delete confirmation, got: %s", out)
	}

	store, _ := history.DefaultStore()
	if _, err := store.GetConversation(conv.ID); err == nil {
		t.Error("Expected conversation to be gone after delete")
	}
}

func TestHistoryClear(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	seedConversation(t)
	seedConversation(t)

	captureStdout(t, func() {
		if err := runHistoryClear(historyClearCmd, nil); err != nil {
			t.Errorf("runHistoryClear failed: %v", err)
		}
	})

	store, _ := history.DefaultStore()
	convs, err := store.ListConversations()
	if err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if len(convs) != 0 {
		t.Errorf("Expected no conversations after clear, got %d", len(convs))
	}
}

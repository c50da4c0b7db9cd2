package history

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/diogo/ragchat/internal/models"
)

// ExportFormat represents the format for exporting conversations
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// ExportToMarkdown exports a conversation to Markdown format
func (s *Store) ExportToMarkdown(id string) (string, error) {
	conv, err := s.GetConversation(id)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(conv.Title)
	sb.WriteString("\n\n")

	if conv.Endpoint != "" {
		sb.WriteString("**Backend:** ")
		sb.WriteString(conv.Endpoint)
		sb.WriteString("\n")
	}
	sb.WriteString("**Created:** ")
	sb.WriteString(conv.CreatedAt.Format("2006-01-02 15:04:05"))
	sb.WriteString("\n")
	sb.WriteString("**Updated:** ")
	sb.WriteString(conv.UpdatedAt.Format("2006-01-02 15:04:05"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("**Messages:** %d", len(conv.Messages)))
	sb.WriteString("\n\n---\n\n")

	for i, msg := range conv.Messages {
		role := "You"
		if msg.Sender == models.SenderBot {
			role = "Assistant"
		}

		sb.WriteString("## ")
		sb.WriteString(role)
		if !msg.Timestamp.IsZero() {
			sb.WriteString(" (")
			sb.WriteString(msg.Timestamp.Format("15:04:05"))
			sb.WriteString(")")
		}
		sb.WriteString("\n\n")

		sb.WriteString(msg.Text)
		sb.WriteString("\n")

		if i < len(conv.Messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String(), nil
}

// ExportToJSON exports a conversation as indented JSON
func (s *Store) ExportToJSON(id string) (string, error) {
	conv, err := s.GetConversation(id)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal conversation: %w", err)
	}

	return string(data), nil
}

// Export exports a conversation in the given format
func (s *Store) Export(id string, format ExportFormat) (string, error) {
	switch format {
	case ExportFormatMarkdown:
		return s.ExportToMarkdown(id)
	case ExportFormatJSON:
		return s.ExportToJSON(id)
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/ragchat/internal/api"
	"github.com/diogo/ragchat/internal/history"
	"github.com/diogo/ragchat/internal/tui"
)

var (
	resumeFlag    string
	noHistoryFlag bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with the backend.

Conversations are saved locally and can be resumed later with --resume.
Type 'exit', 'quit', or press Ctrl+C to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func init() {
	chatCmd.Flags().StringVar(&resumeFlag, "resume", "", "resume a saved conversation by ID")
	chatCmd.Flags().BoolVar(&noHistoryFlag, "no-history", false, "do not save this conversation")
}

func runChat() error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	session := api.NewChatSession(client)

	if noHistoryFlag {
		if resumeFlag != "" {
			return fmt.Errorf("--resume cannot be combined with --no-history")
		}
		return tui.RunChat(session, client.BaseURL())
	}

	store, err := history.DefaultStore()
	if err != nil {
		// History is best effort, chat still works without it
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return tui.RunChat(session, client.BaseURL())
	}

	var conv *history.Conversation
	if resumeFlag != "" {
		conv, err = store.GetConversation(resumeFlag)
		if err != nil {
			return fmt.Errorf("conversation not found: %w", err)
		}
	} else {
		conv, err = store.CreateConversation(client.BaseURL())
		if err != nil {
			return fmt.Errorf("failed to create conversation: %w", err)
		}
	}

	return tui.RunChatWithConversation(session, client.BaseURL(), conv, store)
}

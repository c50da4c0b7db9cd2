// Package commands provides CLI commands for ragchat.
package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogo/ragchat/internal/api"
	"github.com/diogo/ragchat/internal/config"
)

var (
	// Global flags
	endpointFlag string
	outputFlag   string
	fileFlag     string
	rawFlag      bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ragchat [question]",
	Short: "Chat with your RAG backend from the terminal",
	Long: `ragchat is a command-line client for a retrieval-augmented generation
backend. It sends questions to the backend's query endpoint and renders
the answer, streaming it to the terminal as it arrives.

Examples:
  ragchat chat                          Start interactive chat
  ragchat "What is a vector index?"     Ask a single question
  ragchat -f question.md                Read the question from a file
  cat question.md | ragchat             Read the question from stdin
  ragchat "Hello" -o answer.md          Save the answer to a file
  ragchat config show                   Show current configuration`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("ragchat %s (built %s)\n", Version, BuildTime)
			return nil
		}

		// Check for stdin input
		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(string(data), rawFlag || !isStdoutTTY())
		}

		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(string(data), rawFlag || !isStdoutTTY())
		}

		if len(args) > 0 {
			return runQuery(args[0], rawFlag || !isStdoutTTY())
		}

		// No input - show help
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&endpointFlag, "endpoint", "e", "", "backend base URL (overrides config)")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "write the answer to a file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "read the question from a file")
	rootCmd.Flags().BoolVar(&rawFlag, "raw", false, "print the raw answer without decoration")
	rootCmd.Flags().BoolP("version", "v", false, "print version information")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// newClient builds a backend client from config and flags
func newClient() (*api.Client, config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to load config: %w", err)
	}

	endpoint := cfg.Endpoint
	if endpointFlag != "" {
		endpoint = endpointFlag
	}

	opts := []api.ClientOption{
		api.WithBaseURL(endpoint),
	}
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, api.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	}
	if cfg.APIKey != "" {
		opts = append(opts, api.WithAPIKey(cfg.APIKey))
	}

	return api.NewClient(opts...), cfg, nil
}

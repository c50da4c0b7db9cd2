package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/diogo/ragchat/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and change ragchat settings stored in ~/.ragchat/config.json.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save it.

Available keys:
  endpoint    Backend base URL
  api_key     Bearer token sent with each request
  timeout     Request timeout in seconds
  verbose     Print request details (true/false)
  clipboard   Copy answers to the clipboard (true/false)
  style       Markdown render style (auto, dark, light, ...)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("endpoint:   %s\n", cfg.Endpoint)
	if cfg.APIKey != "" {
		fmt.Printf("api_key:    %s\n", maskKey(cfg.APIKey))
	} else {
		fmt.Printf("api_key:    (not set)\n")
	}
	fmt.Printf("timeout:    %ds\n", cfg.TimeoutSeconds)
	fmt.Printf("verbose:    %t\n", cfg.Verbose)
	fmt.Printf("clipboard:  %t\n", cfg.CopyToClipboard)
	fmt.Printf("style:      %s\n", cfg.Markdown.Style)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch key {
	case "endpoint":
		cfg.Endpoint = value
	case "api_key":
		cfg.APIKey = value
	case "timeout":
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds <= 0 {
			return fmt.Errorf("timeout must be a positive number of seconds")
		}
		cfg.TimeoutSeconds = seconds
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("verbose must be true or false")
		}
		cfg.Verbose = b
	case "clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("clipboard must be true or false")
		}
		cfg.CopyToClipboard = b
	case "style":
		cfg.Markdown.Style = value
	default:
		return fmt.Errorf("unknown key: %s", key)
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Set %s\n", key)
	return nil
}

// maskKey hides all but the last 4 characters of a key
func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

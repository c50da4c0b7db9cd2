package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Endpoint != "http://localhost:8080" {
		t.Errorf("default endpoint = %q", cfg.Endpoint)
	}
	if cfg.TimeoutSeconds != 300 {
		t.Errorf("default timeout = %d, want 300", cfg.TimeoutSeconds)
	}
	if cfg.Markdown.Style != "dark" {
		t.Errorf("default markdown style = %q, want dark", cfg.Markdown.Style)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Endpoint = "https://rag.internal:9000"
	cfg.TimeoutSeconds = 60
	cfg.CopyToClipboard = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Endpoint != cfg.Endpoint {
		t.Errorf("endpoint = %q, want %q", loaded.Endpoint, cfg.Endpoint)
	}
	if loaded.TimeoutSeconds != cfg.TimeoutSeconds {
		t.Errorf("timeout = %d, want %d", loaded.TimeoutSeconds, cfg.TimeoutSeconds)
	}
	if !loaded.CopyToClipboard {
		t.Error("copy_to_clipboard not persisted")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Endpoint != DefaultConfig().Endpoint {
		t.Error("missing config file should yield defaults")
	}
}

func TestLoadConfigCorruptFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".ragchat")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{broken"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Error("expected error for corrupt config file")
	}
	if cfg.Endpoint != DefaultConfig().Endpoint {
		t.Error("corrupt config should fall back to defaults")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RAGCHAT_ENDPOINT", "https://override.example.com")
	t.Setenv("RAGCHAT_API_KEY", "env-key")
	t.Setenv("RAGCHAT_TIMEOUT", "42")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Endpoint != "https://override.example.com" {
		t.Errorf("endpoint = %q, env override not applied", cfg.Endpoint)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("api key = %q, env override not applied", cfg.APIKey)
	}
	if cfg.TimeoutSeconds != 42 {
		t.Errorf("timeout = %d, env override not applied", cfg.TimeoutSeconds)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Endpoint = "https://from-file.example.com"
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	t.Setenv("RAGCHAT_ENDPOINT", "https://from-env.example.com")

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Endpoint != "https://from-env.example.com" {
		t.Errorf("endpoint = %q, environment must take precedence over file", loaded.Endpoint)
	}
}

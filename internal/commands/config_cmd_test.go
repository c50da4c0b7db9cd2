package commands

import (
	"strings"
	"testing"

	"github.com/diogo/ragchat/internal/config"
)

func TestConfigSet_Endpoint(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := runConfigSet(configSetCmd, []string{"endpoint", "http://other:9999"}); err != nil {
		t.Fatalf("runConfigSet failed: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Endpoint != "http://other:9999" {
		t.Errorf("Expected saved endpoint, got %s", cfg.Endpoint)
	}
}

func TestConfigSet_Timeout(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "60", false},
		{"zero", "0", true},
		{"negative", "-5", true},
		{"not a number", "abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runConfigSet(configSetCmd, []string{"timeout", tt.value})
			if (err != nil) != tt.wantErr {
				t.Errorf("runConfigSet(timeout, %s) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestConfigSet_Booleans(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := runConfigSet(configSetCmd, []string{"verbose", "true"}); err != nil {
		t.Fatalf("runConfigSet verbose failed: %v", err)
	}
	if err := runConfigSet(configSetCmd, []string{"clipboard", "true"}); err != nil {
		t.Fatalf("runConfigSet clipboard failed: %v", err)
	}
	if err := runConfigSet(configSetCmd, []string{"verbose", "maybe"}); err == nil {
		t.Error("Expected error for invalid boolean")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.Verbose || !cfg.CopyToClipboard {
		t.Errorf("Expected verbose and clipboard true, got %+v", cfg)
	}
}

func TestConfigSet_UnknownKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := runConfigSet(configSetCmd, []string{"bogus", "value"})
	if err == nil {
		t.Fatal("Expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown key") {
		t.Errorf("Expected 'unknown key' in error, got: %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out := captureStdout(t, func() {
		if err := runConfigShow(configShowCmd, nil); err != nil {
			t.Errorf("runConfigShow failed: %v", err)
		}
	})

	if !strings.Contains(out, "endpoint:") {
		t.Errorf("Expected endpoint in output, got: %s", out)
	}
	if !strings.Contains(out, "http://localhost:8080") {
		t.Errorf("Expected default endpoint in output, got: %s", out)
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", "****"},
		{"ab", "****"},
		{"secret-token-1234", "****1234"},
	}

	for _, tt := range tests {
		if got := maskKey(tt.key); got != tt.want {
			t.Errorf("maskKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

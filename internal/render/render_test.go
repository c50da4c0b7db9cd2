package render

import (
	"strings"
	"testing"
)

func TestMarkdown(t *testing.T) {
	out, err := Markdown("# Title\n\nSome **bold** text.", DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}
	if !strings.Contains(out, "Title") {
		t.Error("rendered output missing heading text")
	}
}

func TestMarkdownWithWidth(t *testing.T) {
	long := strings.Repeat("word ", 50)
	out, err := MarkdownWithWidth(long, 40)
	if err != nil {
		t.Fatalf("MarkdownWithWidth failed: %v", err)
	}

	for _, line := range strings.Split(out, "\n") {
		// Allow slack for ANSI escapes and padding
		if len(stripANSI(line)) > 60 {
			t.Errorf("line exceeds width budget: %d chars", len(stripANSI(line)))
		}
	}
}

func TestRendererPoolReuse(t *testing.T) {
	ClearCache()

	opts := DefaultOptions()
	if _, err := Markdown("one", opts); err != nil {
		t.Fatal(err)
	}
	if _, err := Markdown("two", opts); err != nil {
		t.Fatal(err)
	}
	if CacheSize() != 1 {
		t.Errorf("expected a single pool for identical options, got %d", CacheSize())
	}

	if _, err := Markdown("three", opts.WithWidth(40)); err != nil {
		t.Fatal(err)
	}
	if CacheSize() != 2 {
		t.Errorf("expected a second pool for new options, got %d", CacheSize())
	}
}

// stripANSI removes ANSI escape sequences for width assertions
func stripANSI(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

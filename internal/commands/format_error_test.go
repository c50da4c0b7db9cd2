package commands

import (
	"errors"
	"strings"
	"testing"

	apierrors "github.com/diogo/ragchat/internal/errors"
)

func TestFormatErrorMessage_Nil(t *testing.T) {
	if got := formatErrorMessage(nil, "ctx"); got != "" {
		t.Fatalf("expected empty for nil error, got %s", got)
	}
}

func TestFormatErrorMessage_APIError(t *testing.T) {
	e := apierrors.NewAPIErrorWithBody(500, "/api/rag", "failure", "detailed body")
	out := formatErrorMessage(e, "Query failed")
	if out == "" {
		t.Fatalf("expected non-empty message")
	}
	if !strings.Contains(out, "HTTP Status: 500") {
		t.Fatalf("expected HTTP status in message, got: %s", out)
	}
	if !strings.Contains(out, "/api/rag") {
		t.Fatalf("expected endpoint in message, got: %s", out)
	}
	if !strings.Contains(out, "detailed body") {
		t.Fatalf("expected response body in message, got: %s", out)
	}
}

func TestFormatErrorMessage_NetworkHint(t *testing.T) {
	netErr := apierrors.NewNetworkError("post", "/api/rag", errors.New("connection refused"))
	out := formatErrorMessage(netErr, "Query failed")
	if !strings.Contains(out, "Hint") {
		t.Fatalf("expected hint in network error message, got: %s", out)
	}
}

func TestFormatErrorMessage_ContentTypeHint(t *testing.T) {
	ctErr := apierrors.NewContentTypeError("text/html", "/api/rag")
	out := formatErrorMessage(ctErr, "Query failed")
	if !strings.Contains(out, "Hint") {
		t.Fatalf("expected hint in content type error message, got: %s", out)
	}
}

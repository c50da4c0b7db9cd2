package models

// Backend endpoint defaults
const (
	// DefaultBaseURL is used when no endpoint is configured
	DefaultBaseURL = "http://localhost:8080"

	// QueryPath is the query endpoint on the backend
	QueryPath = "/api/rag"
)

// Content type markers used to classify responses. Matching is substring-based
// because servers commonly append charset parameters.
const (
	ContentTypeStream = "text/plain"
	ContentTypeJSON   = "application/json"
)

// User-visible fallback strings
const (
	// FallbackAnswer replaces a structured response whose answer field is missing
	FallbackAnswer = "I couldn't find an answer to that."

	// ApologyText replaces the trailing bot message after any failed exchange
	ApologyText = "Sorry, something went wrong while answering. Please try again."
)

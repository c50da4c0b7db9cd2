// Package api implements the HTTP client for the ragchat backend.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/diogo/ragchat/internal/models"
)

// ClientInterface defines the backend operations needed by the TUI and commands
type ClientInterface interface {
	Ask(query string, onChunk func(chunk string)) (string, error)
	BaseURL() string
}

// Client is the HTTP client for the ragchat backend
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithBaseURL sets the backend base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the request timeout for the whole exchange, including
// the time spent consuming a streamed body
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithAPIKey sets a bearer token sent with every request
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new backend client
func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		baseURL:    models.DefaultBaseURL,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the configured backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// queryEndpoint returns the full URL of the query endpoint
func (c *Client) queryEndpoint() string {
	return c.baseURL + models.QueryPath
}

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/ragchat/internal/errors"
	"github.com/diogo/ragchat/internal/models"
)

// errorBodyLimit caps how much of an error response is read for diagnostics
const errorBodyLimit = 4096

// streamBufferSize is the read buffer used when consuming a streamed body
const streamBufferSize = 4096

// Ask sends a query to the backend and returns the complete answer text.
//
// The response is consumed according to its declared content type: a
// text/plain response is read incrementally and each decoded chunk is passed
// to onChunk as it arrives; an application/json response is read in full and
// its answer field extracted, falling back to models.FallbackAnswer when the
// field is missing. Any other content type or a non-200 status is an error.
//
// onChunk may be nil when the caller does not need incremental delivery.
func (c *Client) Ask(query string, onChunk func(chunk string)) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", apierrors.ErrEmptyQuery
	}

	endpoint := c.queryEndpoint()

	payload, err := json.Marshal(models.QueryRequest{Query: query})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/plain, application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierrors.NewNetworkError("ask", endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body := readLimited(resp.Body, errorBodyLimit)
		return "", apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, "query failed", string(body))
	}

	contentType := resp.Header.Get("Content-Type")
	switch {
	case strings.Contains(contentType, models.ContentTypeStream):
		return c.readStream(resp.Body, endpoint, onChunk)
	case strings.Contains(contentType, models.ContentTypeJSON):
		return c.readAnswer(resp.Body, endpoint)
	default:
		return "", apierrors.NewContentTypeError(contentType, endpoint)
	}
}

// readStream consumes a text/plain body incrementally. Each read that yields
// data becomes one chunk; the concatenation of all chunks is the answer.
func (c *Client) readStream(body io.Reader, endpoint string, onChunk func(chunk string)) (string, error) {
	var answer strings.Builder
	buf := make([]byte, streamBufferSize)

	for {
		n, err := body.Read(buf)
		if n > 0 {
			chunk := string(buf[:n])
			answer.WriteString(chunk)
			if onChunk != nil {
				onChunk(chunk)
			}
		}
		if err == io.EOF {
			return answer.String(), nil
		}
		if err != nil {
			return "", apierrors.NewNetworkError("read stream", endpoint, err)
		}
	}
}

// readAnswer reads a structured response in full and extracts the answer field
func (c *Client) readAnswer(body io.Reader, endpoint string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", apierrors.NewNetworkError("read response", endpoint, err)
	}

	answer := gjson.GetBytes(data, "answer")
	if !answer.Exists() || answer.String() == "" {
		return models.FallbackAnswer, nil
	}

	return answer.String(), nil
}

// readLimited reads at most limit bytes from r, ignoring read errors
func readLimited(r io.Reader, limit int) []byte {
	body := make([]byte, 0, limit)
	buf := make([]byte, 1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			body = append(body, buf[:n]...)
			if len(body) >= limit {
				return body[:limit]
			}
		}
		if err != nil {
			return body
		}
	}
}

// Package gateway is the client's single path to the second brain REST API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// TokenSource yields the current session token, or "" when there is none.
type TokenSource interface {
	Token() string
}

// Request describes one API call.
type Request struct {
	Path   string
	Method string // defaults to GET
	Body   any
	// Header is applied after the defaults and may override them.
	Header http.Header
	// Anonymous skips the Authorization header.
	Anonymous bool
	// Fallback is the error message used when the backend sends none.
	Fallback string
}

// Client issues JSON requests against a fixed base URL.
type Client struct {
	http    *http.Client
	baseURL string
	tokens  TokenSource
	logger  *slog.Logger
}

// New creates a client for baseURL. Requests carry the token from tokens.
func New(baseURL string, tokens TokenSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:    &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		logger:  logger,
	}
}

// BaseURL returns the API root requests are issued against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes req and decodes a successful body into out, which may be nil.
// Any non-2xx status becomes an *Error carrying the backend's message.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	fallback := req.Fallback
	if fallback == "" {
		fallback = DefaultFailureMessage
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return &Error{Message: fallback, Err: fmt.Errorf("encode body: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+req.Path, body)
	if err != nil {
		return &Error{Message: fallback, Err: fmt.Errorf("create request: %w", err)}
	}

	if !req.Anonymous && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set("Authorization", token)
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	c.logger.Debug("api request", "method", method, "path", req.Path)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn("api request failed", "method", method, "path", req.Path, "error", err)
		return &Error{Message: fallback, Err: fmt.Errorf("%w: %w", ErrTransport, err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: resp.StatusCode, Message: fallback, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fallback
		var envelope struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &envelope) == nil && envelope.Message != "" {
			msg = envelope.Message
		}
		c.logger.Debug("api request rejected", "method", method, "path", req.Path, "status", resp.StatusCode, "message", msg)
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Status: resp.StatusCode, Message: fallback, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

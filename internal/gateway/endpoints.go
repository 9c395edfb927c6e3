package gateway

import (
	"context"
	"net/http"

	"github.com/secondbrain/brain-client/internal/domain"
)

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, creds domain.Credentials) (domain.MessageResult, error) {
	var out domain.MessageResult
	err := c.Do(ctx, Request{
		Path:      "/signup",
		Method:    http.MethodPost,
		Body:      creds,
		Anonymous: true,
		Fallback:  SignupFailureMessage,
	}, &out)
	return out, err
}

// Signin exchanges credentials for a token. The token may be absent even on
// a 2xx response; callers decide what that means.
func (c *Client) Signin(ctx context.Context, creds domain.Credentials) (domain.SigninResult, error) {
	var out domain.SigninResult
	err := c.Do(ctx, Request{
		Path:      "/signin",
		Method:    http.MethodPost,
		Body:      creds,
		Anonymous: true,
		Fallback:  SigninFailureMessage,
	}, &out)
	return out, err
}

// ListContent fetches the caller's whole collection.
func (c *Client) ListContent(ctx context.Context) ([]domain.ContentItem, error) {
	var out domain.ContentList
	if err := c.Do(ctx, Request{Path: "/content"}, &out); err != nil {
		return nil, err
	}
	if out.Content == nil {
		return []domain.ContentItem{}, nil
	}
	return out.Content, nil
}

// CreateContent posts a draft. Any 2xx is success; the response body is not
// read, since backends echo the created item in differing shapes.
func (c *Client) CreateContent(ctx context.Context, draft domain.Draft) error {
	return c.Do(ctx, Request{
		Path:   "/content",
		Method: http.MethodPost,
		Body:   draft,
	}, nil)
}

// SetShare turns public sharing on or off.
func (c *Client) SetShare(ctx context.Context, enabled bool) (domain.ShareResult, error) {
	var out domain.ShareResult
	err := c.Do(ctx, Request{
		Path:   "/brain/share",
		Method: http.MethodPost,
		Body:   domain.ShareRequest{Share: enabled},
	}, &out)
	return out, err
}

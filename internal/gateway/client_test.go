package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondbrain/brain-client/internal/domain"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(server.URL+"/api/v1", staticToken(token), slog.New(slog.NewTextHandler(io.Discard, nil)))
	client.http = server.Client()
	return client
}

func TestDo_AttachesRawToken(t *testing.T) {
	var got http.Header
	client := newTestClient(t, "abc", func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		assert.Equal(t, "/api/v1/content", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(`{"content":[]}`))
	})

	var out domain.ContentList
	require.NoError(t, client.Do(context.Background(), Request{Path: "/content"}, &out))

	assert.Equal(t, "abc", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
}

func TestDo_NoTokenNoHeader(t *testing.T) {
	var present bool
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	})

	require.NoError(t, client.Do(context.Background(), Request{Path: "/content"}, nil))
	assert.False(t, present)
}

func TestDo_CallerHeadersOverrideDefaults(t *testing.T) {
	var got http.Header
	client := newTestClient(t, "abc", func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	})

	err := client.Do(context.Background(), Request{
		Path: "/content",
		Header: http.Header{
			"Content-Type":  []string{"text/plain"},
			"Authorization": []string{"other"},
			"X-Trace":       []string{"1"},
		},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "text/plain", got.Get("Content-Type"))
	assert.Equal(t, "other", got.Get("Authorization"))
	assert.Equal(t, "1", got.Get("X-Trace"))
}

func TestDo_ErrorStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		fallback string
		wantMsg  string
	}{
		{"server message", http.StatusForbidden, `{"message":"Invalid token"}`, "", "Invalid token"},
		{"empty message uses default", http.StatusInternalServerError, `{"message":""}`, "", DefaultFailureMessage},
		{"non-json body uses default", http.StatusBadGateway, `<html>oops</html>`, "", DefaultFailureMessage},
		{"per-call fallback", http.StatusBadRequest, `{}`, SignupFailureMessage, SignupFailureMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, "abc", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			err := client.Do(context.Background(), Request{Path: "/content", Fallback: tt.fallback}, nil)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.status, StatusOf(err))
		})
	}
}

func TestDo_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client := New(url, staticToken("abc"), nil)
	err := client.Do(context.Background(), Request{Path: "/content"}, nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, DefaultFailureMessage, apiErr.Message)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestDo_CanceledContext(t *testing.T) {
	client := newTestClient(t, "abc", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Do(ctx, Request{Path: "/content"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSignup_IsAnonymous(t *testing.T) {
	var auth string
	var body domain.Credentials
	client := newTestClient(t, "abc", func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/signup", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"message":"User created"}`))
	})

	res, err := client.Signup(context.Background(), domain.Credentials{Username: "ana", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, "User created", res.Message)
	assert.Empty(t, auth)
	assert.Equal(t, "ana", body.Username)
	assert.Equal(t, "pw", body.Password)
}

func TestSignin_FailureFallback(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{}`))
	})

	_, err := client.Signin(context.Background(), domain.Credentials{Username: "ana", Password: "bad"})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, SigninFailureMessage, apiErr.Message)
}

func TestListContent(t *testing.T) {
	client := newTestClient(t, "abc", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[{"_id":"1","title":"Go talk","type":"youtube","tags":["Go"],"description":"","link":"https://youtu.be/x"}]}`))
	})

	items, err := client.ListContent(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, domain.TypeYouTube, items[0].Type)
	assert.Equal(t, []string{"Go"}, items[0].Tags)
}

func TestListContent_MissingArrayIsEmpty(t *testing.T) {
	client := newTestClient(t, "abc", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	items, err := client.ListContent(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCreateContent_PostsDraft(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, "abc", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/content", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"message":"Content added"}`))
	})

	draft := domain.NewDraft()
	draft.Title = "T"
	require.NoError(t, client.CreateContent(context.Background(), draft))

	assert.Equal(t, "T", got["title"])
	assert.Equal(t, "other", got["type"])
	assert.Equal(t, []any{}, got["tags"])
}

func TestCreateContent_IgnoresResponseShape(t *testing.T) {
	bodies := []string{
		`{"message":"Content added","_id":"1","tags":[{"_id":"t1","title":"go"}]}`,
		`{"_id":"2","createdAt":1767225600}`,
		`Created`,
		``,
	}
	for _, body := range bodies {
		client := newTestClient(t, "abc", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})

		draft := domain.NewDraft()
		draft.Title = "T"
		assert.NoError(t, client.CreateContent(context.Background(), draft), body)
	}
}

func TestSetShare(t *testing.T) {
	var got domain.ShareRequest
	client := newTestClient(t, "abc", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/brain/share", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"message":"Shared","hash":"h4sh"}`))
	})

	res, err := client.SetShare(context.Background(), true)
	require.NoError(t, err)

	assert.True(t, got.Share)
	assert.Equal(t, "h4sh", res.Hash)
	assert.Equal(t, "Shared", res.Message)
}

package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs_MatchesByCode(t *testing.T) {
	err := fmt.Errorf("submit: %w", Busy("A submission is already in progress"))

	assert.True(t, Is(err, ErrBusy))
	assert.False(t, Is(err, ErrValidation))
}

func TestWithCause_Unwraps(t *testing.T) {
	cause := New("connection refused")
	err := API("Failed to load content").WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to load content: connection refused", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validation("x"), http.StatusBadRequest},
		{Unauthorized("x"), http.StatusUnauthorized},
		{NotFound("x"), http.StatusNotFound},
		{Busy("x"), http.StatusConflict},
		{RateLimited("x"), http.StatusTooManyRequests},
		{NotImplemented("x"), http.StatusNotImplemented},
		{API("x"), http.StatusBadGateway},
		{Storage(nil, "x"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "fallback", Message(nil, "fallback"))
	assert.Equal(t, "Sign in failed", Message(Unauthorized("Sign in failed").WithCause(New("boom")), "fallback"))
	assert.Equal(t, "plain", Message(New("plain"), "fallback"))
	assert.Equal(t, "fallback", Message(New(""), "fallback"))
}

func TestWithDetails_Copies(t *testing.T) {
	base := Validation("bad input")
	detailed := base.WithDetails(map[string]string{"title": "is required"})

	assert.Nil(t, base.Details)
	assert.NotNil(t, detailed.Details)
	assert.True(t, Is(detailed, ErrValidation))
}

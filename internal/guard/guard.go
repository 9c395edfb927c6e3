// Package guard keeps anonymous visitors out of views that need a session.
package guard

import (
	"log/slog"
	"net/http"

	"github.com/secondbrain/brain-client/internal/http/response"
)

// DefaultRedirect is where anonymous visitors are sent.
const DefaultRedirect = "/login"

// Authenticator reports whether a usable session exists.
type Authenticator interface {
	IsAuthenticated() bool
}

// Allowed reports whether a protected view may be shown.
func Allowed(auth Authenticator) bool {
	return auth != nil && auth.IsAuthenticated()
}

// Require redirects anonymous requests to redirectTo and serves everyone else
// unchanged. The check runs on every request.
func Require(auth Authenticator, redirectTo string) func(http.Handler) http.Handler {
	if redirectTo == "" {
		redirectTo = DefaultRedirect
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !Allowed(auth) {
				http.Redirect(w, r, redirectTo, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireJSON is Require for API routes: it answers 401 instead of redirecting.
func RequireJSON(auth Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !Allowed(auth) {
				response.Unauthorized(w, "Not signed in", logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

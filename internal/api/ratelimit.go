package api

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/secondbrain/brain-client/internal/ratelimit"
)

// AuthThrottledMessage is shown when sign-in or sign-up attempts come too fast.
const AuthThrottledMessage = "Too many attempts. Please wait a minute and try again."

// RateLimiter wraps KeyedRateLimiter for handler use.
type RateLimiter = ratelimit.KeyedRateLimiter

// NewRateLimiter creates a limiter allowing ratePerInterval requests per
// interval with the given burst.
func NewRateLimiter(ratePerInterval int, interval time.Duration, burst int) *RateLimiter {
	rps := float64(ratePerInterval) / interval.Seconds()
	return ratelimit.New(rps, burst)
}

// throttleAuth limits posts to an auth form per client and path. Over the
// limit, the form is re-rendered with a 429 and the username kept.
func (s *Server) throttleAuth(page, title string) func(http.Handler) http.Handler {
	n := s.opts.AuthRatePerMinute
	retryAfter := strconv.Itoa((60 + n - 1) / n)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientHost(r)
			if s.authRateLimiter.Allow(client + " " + r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			s.logger.Warn("auth attempt throttled", "client", client, "path", r.URL.Path)
			w.Header().Set("Retry-After", retryAfter)
			s.render(w, http.StatusTooManyRequests, page, pageData{
				Title:    title,
				Username: r.PostFormValue("username"),
				Error:    AuthThrottledMessage,
			})
		})
	}
}

// clientHost is the peer address without its port. middleware.RealIP runs
// first, so proxy headers are already folded into RemoteAddr.
func clientHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

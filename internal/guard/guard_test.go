package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/secondbrain/brain-client/internal/authstore"
)

type flag bool

func (f flag) IsAuthenticated() bool { return bool(f) }

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("dashboard"))
	})
}

func TestRequire_RedirectsAnonymous(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	Require(flag(false), "")(okHandler()).ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "dashboard")
}

func TestRequire_CustomRedirect(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	Require(flag(false), "/welcome")(okHandler()).ServeHTTP(w, r)

	assert.Equal(t, "/welcome", w.Header().Get("Location"))
}

func TestRequire_ServesAuthenticated(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	Require(flag(true), "")(okHandler()).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dashboard", w.Body.String())
}

func TestRequire_ReevaluatesEachRequest(t *testing.T) {
	store := authstore.New(authstore.NewMemoryBackend(), nil)
	h := Require(store, "")(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)

	assert.NoError(t, store.Set("abc"))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	store.Clear()
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestRequire_WhitespaceTokenIsAnonymous(t *testing.T) {
	store := authstore.New(authstore.NewMemoryBackend(), nil)
	assert.NoError(t, store.Set("   "))

	w := httptest.NewRecorder()
	Require(store, "")(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestRequireJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RequireJSON(flag(false), nil)(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ui/api/dashboard", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"UNAUTHORIZED"`)

	w = httptest.NewRecorder()
	RequireJSON(flag(true), nil)(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ui/api/dashboard", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed(flag(true)))
	assert.False(t, Allowed(flag(false)))
	assert.False(t, Allowed(nil))
}

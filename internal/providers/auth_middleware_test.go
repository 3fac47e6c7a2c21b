package providers

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fishdata/internal/models"
	"fishdata/internal/structures"
)

type fakeKeys struct {
	keys map[string]*models.KeyConfig
}

func (f *fakeKeys) Get(key string) (*models.KeyConfig, bool) {
	cfg, ok := f.keys[key]
	return cfg, ok
}

type recordingEvents struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (r *recordingEvents) AuthSuccess(keyName, _, _, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, keyName)
}

func (r *recordingEvents) AuthFailure(_, _, errorMessage string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, errorMessage)
}

func authConfig() *structures.Config {
	return &structures.Config{
		Auth: structures.AuthConfig{HeaderName: "X-API-Key"},
	}
}

func newAuthMiddleware(keys map[string]*models.KeyConfig, events *recordingEvents, metrics *countingMetrics, next http.Handler) http.Handler {
	return AuthMiddleware(authConfig(), &fakeKeys{keys: keys}, events, metrics, nopLogger{}, next)
}

func TestAuthMiddleware_MissingKey(t *testing.T) {
	events := &recordingEvents{}
	metrics := &countingMetrics{}
	handler := newAuthMiddleware(nil, events, metrics, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a key")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/data/landings", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing API key")
	assert.Equal(t, []string{"Missing API key header"}, events.failures)
	assert.Equal(t, 1, metrics.authFailures)
}

func TestAuthMiddleware_UnknownKey(t *testing.T) {
	events := &recordingEvents{}
	metrics := &countingMetrics{}
	handler := newAuthMiddleware(nil, events, metrics, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an unknown key")
	}))

	req := httptest.NewRequest("GET", "/api/v1/data/landings", nil)
	req.Header.Set("X-API-Key", "nope")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid API key")
	assert.Equal(t, []string{"Invalid API key"}, events.failures)
}

func TestAuthMiddleware_DisabledKey(t *testing.T) {
	events := &recordingEvents{}
	metrics := &countingMetrics{}
	keys := map[string]*models.KeyConfig{
		"revoked-key": {Name: "Former Partner", Enabled: false},
	}
	handler := newAuthMiddleware(keys, events, metrics, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a disabled key")
	}))

	req := httptest.NewRequest("GET", "/api/v1/data/landings", nil)
	req.Header.Set("X-API-Key", "revoked-key")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "API key is disabled")
	assert.Equal(t, []string{"Disabled API key: Former Partner"}, events.failures)
}

func TestAuthMiddleware_ValidKeyPassesAuthInfo(t *testing.T) {
	events := &recordingEvents{}
	metrics := &countingMetrics{}
	keys := map[string]*models.KeyConfig{
		"valid-key-12345": {Name: "Partner", Enabled: true},
	}

	var seen *AuthInfo
	handler := newAuthMiddleware(keys, events, metrics, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info, ok := AuthFromContext(r.Context())
		require.True(t, ok)
		seen = info
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/data/landings", nil)
	req.Header.Set("X-API-Key", "valid-key-12345")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "Partner", seen.Name)
	assert.Equal(t, "valid-ke...", seen.KeyID)
	assert.Equal(t, []string{"Partner"}, events.successes)
	assert.Equal(t, 0, metrics.authFailures)
}

func TestTruncateKey(t *testing.T) {
	assert.Equal(t, "abcdefgh...", TruncateKey("abcdefghijkl"))
	assert.Equal(t, "short", TruncateKey("short"))
	assert.Equal(t, "12345678", TruncateKey("12345678"))
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.7:52114"
	assert.Equal(t, "10.0.0.7", ClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", ClientIP(r))
}

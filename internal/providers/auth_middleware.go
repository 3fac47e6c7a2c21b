package providers

import (
	"context"
	"net"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"fishdata/internal/models"
	"fishdata/internal/structures"
)

// KeyLookup resolves a raw API key to its configuration.
type KeyLookup interface {
	Get(key string) (*models.KeyConfig, bool)
}

// AuthEvents receives authentication outcomes for audit logging.
type AuthEvents interface {
	AuthSuccess(keyName, keyID, endpoint, clientIP string)
	AuthFailure(clientIP, endpoint, errorMessage string)
}

// AuthInfo carries the authenticated key through the request context.
type AuthInfo struct {
	KeyID  string // truncated, safe to log
	Name   string
	Config *models.KeyConfig
}

type authCtxKey struct{}

func AuthFromContext(ctx context.Context) (*AuthInfo, bool) {
	info, ok := ctx.Value(authCtxKey{}).(*AuthInfo)
	return info, ok
}

// ContextWithAuth is exposed for tests that exercise handlers directly.
func ContextWithAuth(ctx context.Context, info *AuthInfo) context.Context {
	return context.WithValue(ctx, authCtxKey{}, info)
}

// TruncateKey returns the loggable form of an API key: first 8
// characters followed by an ellipsis. Full keys never appear in logs
// or audit records.
func TruncateKey(key string) string {
	if len(key) > 8 {
		return key[:8] + "..."
	}
	return key
}

// ClientIP extracts the originating address, preferring the first
// X-Forwarded-For entry set by the load balancer.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeAuthError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body, _ := json.Marshal(map[string]string{"detail": detail})
	_, _ = w.Write(body)
}

// AuthMiddleware validates the API key header before any data handler
// runs. Missing key yields 401, unknown or disabled key yields 403.
func AuthMiddleware(conf *structures.Config, keys KeyLookup, events AuthEvents, metrics MetricsProviderInterface, logger Logger, next http.Handler) http.Handler {
	headerName := conf.Auth.HeaderName
	if headerName == "" {
		headerName = "X-API-Key"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := ClientIP(r)
		endpoint := r.URL.Path

		rawKey := r.Header.Get(headerName)
		if rawKey == "" {
			events.AuthFailure(clientIP, endpoint, "Missing API key header")
			metrics.IncAuthFailures()
			writeAuthError(w, http.StatusUnauthorized, "Missing API key. Include "+headerName+" header.")
			return
		}

		keyConfig, ok := keys.Get(rawKey)
		if !ok {
			events.AuthFailure(clientIP, endpoint, "Invalid API key")
			metrics.IncAuthFailures()
			writeAuthError(w, http.StatusForbidden, "Invalid API key.")
			return
		}

		if !keyConfig.Enabled {
			events.AuthFailure(clientIP, endpoint, "Disabled API key: "+keyConfig.Name)
			metrics.IncAuthFailures()
			writeAuthError(w, http.StatusForbidden, "API key is disabled.")
			return
		}

		keyID := TruncateKey(rawKey)
		events.AuthSuccess(keyConfig.Name, keyID, endpoint, clientIP)
		logger.Infof(TypeApp, "API key authenticated: %s (key_id: %s)", keyConfig.Name, keyID)

		info := &AuthInfo{
			KeyID:  keyID,
			Name:   keyConfig.Name,
			Config: keyConfig,
		}
		next.ServeHTTP(w, r.WithContext(ContextWithAuth(r.Context(), info)))
	})
}

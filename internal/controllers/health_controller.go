package controllers

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"fishdata/internal/services"
	"fishdata/internal/structures"
)

// HealthController reports liveness. It sits outside the auth
// middleware so load balancers can probe it without a key.
type HealthController struct {
	conf    *structures.Config
	keys    services.KeyringServiceInterface
	started time.Time
}

func NewHealthController(conf *structures.Config, keys services.KeyringServiceInterface) *HealthController {
	return &HealthController{
		conf:    conf,
		keys:    keys,
		started: time.Now(),
	}
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	body, _ := json.Marshal(map[string]any{
		"status":         "ok",
		"version":        hc.conf.Version,
		"uptime_seconds": int64(time.Since(hc.started).Seconds()),
		"api_keys":       hc.keys.Count(),
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

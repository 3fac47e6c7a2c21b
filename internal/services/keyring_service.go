package services

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"fishdata/internal/models"
	"fishdata/internal/providers"
	"fishdata/internal/structures"
)

type KeyringServiceInterface interface {
	Get(key string) (*models.KeyConfig, bool)
	Count() int
	Reload() error
}

// KeyringService holds the API key registry loaded from the YAML
// keys file. Reload swaps the registry atomically, so SIGHUP-driven
// reloads never disturb in-flight requests.
type KeyringService struct {
	path   string
	logger providers.Logger

	mu       sync.RWMutex
	registry *models.KeyRegistry
}

func NewKeyringService(conf *structures.Config, logger providers.Logger) (KeyringServiceInterface, error) {
	ks := &KeyringService{
		path:     conf.Auth.KeysFile,
		logger:   logger,
		registry: &models.KeyRegistry{},
	}
	if err := ks.Reload(); err != nil {
		return nil, err
	}
	return ks, nil
}

func (ks *KeyringService) Reload() error {
	raw, err := os.ReadFile(ks.path)
	if err != nil {
		if os.IsNotExist(err) {
			ks.logger.Warnf(providers.TypeApp, "API keys file not found: %s, all requests will be rejected", ks.path)
			ks.swap(&models.KeyRegistry{})
			return nil
		}
		return fmt.Errorf("read keys file %s: %w", ks.path, err)
	}

	var registry models.KeyRegistry
	if err := yaml.Unmarshal(raw, &registry); err != nil {
		return fmt.Errorf("invalid API keys configuration: %w", err)
	}

	for _, cfg := range registry.APIKeys {
		cfg.Permissions.Normalize()
	}

	ks.swap(&registry)
	ks.logger.Infof(providers.TypeApp, "Loaded %d API keys from %s", len(registry.APIKeys), ks.path)
	return nil
}

func (ks *KeyringService) swap(registry *models.KeyRegistry) {
	ks.mu.Lock()
	ks.registry = registry
	ks.mu.Unlock()
}

func (ks *KeyringService) Get(key string) (*models.KeyConfig, bool) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	cfg := ks.registry.Get(key)
	return cfg, cfg != nil
}

func (ks *KeyringService) Count() int {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	return len(ks.registry.APIKeys)
}

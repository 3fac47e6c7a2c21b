package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fishdata/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Auth: structures.AuthConfig{
			HeaderName: "X-API-Key",
			KeysFile:   "/tmp/api_keys.yaml",
		},
		Storage: structures.StorageConfig{
			Bucket:   "fishdata-snapshots",
			CacheDir: "/tmp/fishdata-cache",
		},
		Query: structures.QueryConfig{
			DefaultLimit: 10000,
			MaxLimit:     1000000,
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_MissingBucket(t *testing.T) {
	c := validConfig()
	c.Storage.Bucket = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroMaxLimit(t *testing.T) {
	c := validConfig()
	c.Query.MaxLimit = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_MissingKeysFile(t *testing.T) {
	c := validConfig()
	c.Auth.KeysFile = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

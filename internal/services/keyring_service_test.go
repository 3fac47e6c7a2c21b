package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fishdata/internal/structures"
	"fishdata/internal/testutil"
)

const keysYAML = `api_keys:
  admin-key:
    name: "Admin"
    description: "Full access"
    permissions:
      allow_all: true
  partner-key:
    name: "Partner"
    permissions:
      countries: ["Zanzibar"]
      statuses: ["validated"]
  disabled-key:
    name: "Disabled"
    enabled: false
    permissions:
      allow_all: true
`

func writeKeysFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api_keys.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func keyringConfig(keysFile string) *structures.Config {
	return &structures.Config{
		Auth: structures.AuthConfig{KeysFile: keysFile},
	}
}

func TestNewKeyringService_LoadsKeys(t *testing.T) {
	path := writeKeysFile(t, keysYAML)
	ks, err := NewKeyringService(keyringConfig(path), &testutil.MockLogger{})
	require.NoError(t, err)

	assert.Equal(t, 3, ks.Count())

	cfg, ok := ks.Get("admin-key")
	require.True(t, ok)
	assert.Equal(t, "Admin", cfg.Name)
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.Permissions.AllowAll)
}

func TestKeyringService_EnabledDefaultsTrue(t *testing.T) {
	path := writeKeysFile(t, keysYAML)
	ks, err := NewKeyringService(keyringConfig(path), &testutil.MockLogger{})
	require.NoError(t, err)

	partner, ok := ks.Get("partner-key")
	require.True(t, ok)
	assert.True(t, partner.Enabled)

	disabled, ok := ks.Get("disabled-key")
	require.True(t, ok)
	assert.False(t, disabled.Enabled)
}

func TestKeyringService_PermissionsNormalizedOnLoad(t *testing.T) {
	path := writeKeysFile(t, keysYAML)
	ks, err := NewKeyringService(keyringConfig(path), &testutil.MockLogger{})
	require.NoError(t, err)

	partner, ok := ks.Get("partner-key")
	require.True(t, ok)
	// whitelist matching is case-insensitive after Normalize
	assert.True(t, partner.Permissions.Countries.Contains("zanzibar"))
}

func TestKeyringService_UnknownKey(t *testing.T) {
	path := writeKeysFile(t, keysYAML)
	ks, err := NewKeyringService(keyringConfig(path), &testutil.MockLogger{})
	require.NoError(t, err)

	cfg, ok := ks.Get("no-such-key")
	assert.False(t, ok)
	assert.Nil(t, cfg)
}

func TestKeyringService_MissingFileRejectsEverything(t *testing.T) {
	logger := &testutil.MockLogger{}
	conf := keyringConfig(filepath.Join(t.TempDir(), "absent.yaml"))

	ks, err := NewKeyringService(conf, logger)
	require.NoError(t, err)

	assert.Equal(t, 0, ks.Count())
	assert.True(t, logger.HasLevel("warn"))
}

func TestKeyringService_InvalidYAML(t *testing.T) {
	path := writeKeysFile(t, "api_keys: [not a map")

	_, err := NewKeyringService(keyringConfig(path), &testutil.MockLogger{})
	assert.Error(t, err)
}

func TestKeyringService_ReloadSwapsRegistry(t *testing.T) {
	path := writeKeysFile(t, keysYAML)
	ks, err := NewKeyringService(keyringConfig(path), &testutil.MockLogger{})
	require.NoError(t, err)
	require.Equal(t, 3, ks.Count())

	updated := `api_keys:
  new-key:
    name: "New"
    permissions:
      allow_all: true
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))
	require.NoError(t, ks.Reload())

	assert.Equal(t, 1, ks.Count())
	_, ok := ks.Get("admin-key")
	assert.False(t, ok)
	_, ok = ks.Get("new-key")
	assert.True(t, ok)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEndpointPattern_Exact(t *testing.T) {
	p := ParseEndpointPattern("/api/v1/data/landings")
	assert.True(t, p.Matches("/api/v1/data/landings"))
	assert.False(t, p.Matches("/api/v1/data/landings/extra"))
	assert.False(t, p.Matches("/api/v1/metadata"))
}

func TestEndpointPattern_Prefix(t *testing.T) {
	p := ParseEndpointPattern("/api/v1/metadata*")
	assert.True(t, p.Matches("/api/v1/metadata"))
	assert.True(t, p.Matches("/api/v1/metadata/landings"))
	assert.False(t, p.Matches("/api/v1/data/landings"))
}

func TestStringSet_NilVsEmpty(t *testing.T) {
	var unrestricted StringSet
	assert.False(t, unrestricted.Restricted())

	empty := StringSet{}
	assert.True(t, empty.Restricted())
	assert.False(t, empty.Contains("zanzibar"))
}

func TestStringSet_ContainsLowercases(t *testing.T) {
	s := StringSet{"zanzibar", "kenya"}
	assert.True(t, s.Contains("Zanzibar"))
	assert.True(t, s.Contains("KENYA"))
	assert.False(t, s.Contains("tls"))
}

func TestStringSet_Join(t *testing.T) {
	s := StringSet{"zanzibar", "kenya"}
	assert.Equal(t, "zanzibar, kenya", s.Join(", "))
	assert.Equal(t, "", StringSet{}.Join(", "))
}

func TestPermissions_Normalize(t *testing.T) {
	p := &Permissions{
		Countries: StringSet{"Zanzibar", "KENYA"},
		Endpoints: []string{"/api/v1/metadata*", "/api/v1/data/landings"},
	}
	p.Normalize()

	assert.Equal(t, StringSet{"zanzibar", "kenya"}, p.Countries)
	assert.True(t, p.EndpointAllowed("/api/v1/metadata/landings"))
	assert.True(t, p.EndpointAllowed("/api/v1/data/landings"))
	assert.False(t, p.EndpointAllowed("/api/v1/data/other"))
}

func TestPermissions_NoEndpointRestriction(t *testing.T) {
	p := &Permissions{}
	p.Normalize()
	assert.True(t, p.EndpointAllowed("/anything"))
}

func TestKeyConfig_DefaultEnabled(t *testing.T) {
	var cfg KeyConfig
	err := yaml.Unmarshal([]byte("name: Test\npermissions:\n  allow_all: true\n"), &cfg)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.Permissions.AllowAll)
}

func TestKeyConfig_ExplicitDisabled(t *testing.T) {
	var cfg KeyConfig
	err := yaml.Unmarshal([]byte("name: Test\nenabled: false\n"), &cfg)
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
}

func TestKeyRegistry_Parse(t *testing.T) {
	raw := `
api_keys:
  secret-key-1:
    name: Partner
    permissions:
      allow_all: false
      countries: [zanzibar]
      date_from: 2024-01-01
      max_limit: 100000
`
	var registry KeyRegistry
	err := yaml.Unmarshal([]byte(raw), &registry)
	require.NoError(t, err)

	cfg := registry.Get("secret-key-1")
	require.NotNil(t, cfg)
	assert.Equal(t, "Partner", cfg.Name)
	assert.Equal(t, StringSet{"zanzibar"}, cfg.Permissions.Countries)
	require.NotNil(t, cfg.Permissions.DateFrom)
	assert.Equal(t, "2024-01-01", cfg.Permissions.DateFrom.String())
	require.NotNil(t, cfg.Permissions.MaxLimit)
	assert.Equal(t, 100000, *cfg.Permissions.MaxLimit)

	assert.Nil(t, registry.Get("unknown"))
}

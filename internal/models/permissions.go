package models

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// StringSet is a whitelist of lowercase values. A nil set leaves the
// dimension unrestricted; an empty non-nil set allows nothing.
type StringSet []string

func (s StringSet) Restricted() bool { return s != nil }

func (s StringSet) Contains(v string) bool {
	v = strings.ToLower(v)
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

func (s StringSet) Join(sep string) string { return strings.Join(s, sep) }

type matchKind int

const (
	matchExact matchKind = iota
	matchPrefix
)

// EndpointPattern matches a request path exactly, or by prefix when
// the configured pattern ends with "*".
type EndpointPattern struct {
	kind  matchKind
	value string
}

func ParseEndpointPattern(p string) EndpointPattern {
	if strings.HasSuffix(p, "*") {
		return EndpointPattern{kind: matchPrefix, value: strings.TrimSuffix(p, "*")}
	}
	return EndpointPattern{kind: matchExact, value: p}
}

func (p EndpointPattern) Matches(path string) bool {
	if p.kind == matchPrefix {
		return strings.HasPrefix(path, p.value)
	}
	return path == p.value
}

// Permissions holds the allowed query shape for one API key. Absent
// (nil) fields leave that dimension unrestricted.
type Permissions struct {
	AllowAll   bool      `yaml:"allow_all"`
	Countries  StringSet `yaml:"countries"`
	Statuses   StringSet `yaml:"statuses"`
	DateFrom   *Date     `yaml:"date_from"`
	DateTo     *Date     `yaml:"date_to"`
	Gaul1      StringSet `yaml:"gaul_1"`
	Gaul2      StringSet `yaml:"gaul_2"`
	CatchTaxon StringSet `yaml:"catch_taxon"`
	SurveyID   StringSet `yaml:"survey_id"`
	Endpoints  []string  `yaml:"endpoints"`
	MaxLimit   *int      `yaml:"max_limit"`

	patterns []EndpointPattern
}

// Normalize lowercases all whitelists and compiles endpoint patterns.
// Called once when the registry is loaded.
func (p *Permissions) Normalize() {
	for _, set := range []StringSet{p.Countries, p.Statuses, p.Gaul1, p.Gaul2, p.CatchTaxon, p.SurveyID} {
		for i, v := range set {
			set[i] = strings.ToLower(v)
		}
	}
	if p.Endpoints != nil {
		p.patterns = make([]EndpointPattern, 0, len(p.Endpoints))
		for _, raw := range p.Endpoints {
			p.patterns = append(p.patterns, ParseEndpointPattern(raw))
		}
	}
}

// EndpointAllowed reports whether path matches any configured pattern.
// Without an endpoint restriction every path is allowed.
func (p *Permissions) EndpointAllowed(path string) bool {
	if p.Endpoints == nil {
		return true
	}
	for _, pat := range p.patterns {
		if pat.Matches(path) {
			return true
		}
	}
	return false
}

// KeyConfig describes a single API key. Keys are enabled unless the
// registry says otherwise.
type KeyConfig struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Permissions Permissions `yaml:"permissions"`
	Enabled     bool        `yaml:"enabled"`
}

func (k *KeyConfig) UnmarshalYAML(value *yaml.Node) error {
	type rawKeyConfig KeyConfig
	aux := rawKeyConfig{Enabled: true}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	*k = KeyConfig(aux)
	return nil
}

// KeyRegistry maps opaque API keys to their configuration.
type KeyRegistry struct {
	APIKeys map[string]*KeyConfig `yaml:"api_keys"`
}

func (r *KeyRegistry) Get(apiKey string) *KeyConfig {
	if r == nil {
		return nil
	}
	return r.APIKeys[apiKey]
}

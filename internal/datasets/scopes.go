package datasets

import "sort"

// Scope definitions per dataset type. A scope is a named, pre-agreed
// ordered subset of columns returned instead of the full row shape.
var scopeDefinitions = map[string]map[string][]string{
	"landings": {
		"trip_info": {
			"survey_id",
			"trip_id",
			"landing_date",
			"gaul_1_code",
			"gaul_1_name",
			"gaul_2_code",
			"gaul_2_name",
			"n_fishers",
			"trip_duration_hrs",
			"gear",
			"vessel_type",
			"catch_habitat",
			"catch_outcome",
		},
		"catch_info": {
			"survey_id",
			"trip_id",
			"catch_taxon",
			"length_cm",
			"catch_kg",
			"catch_price",
		},
	},
}

// ScopeColumns returns the configured column list for a named scope,
// in the configured order.
func ScopeColumns(scope, datasetType string) ([]string, bool) {
	cols, ok := scopeDefinitions[datasetType][scope]
	if !ok {
		return nil, false
	}
	out := make([]string, len(cols))
	copy(out, cols)
	return out, true
}

// AvailableScopes lists the valid scope names for a dataset type so a
// caller with a bad scope can self-correct.
func AvailableScopes(datasetType string) []string {
	scopes := scopeDefinitions[datasetType]
	names := make([]string, 0, len(scopes))
	for name := range scopes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

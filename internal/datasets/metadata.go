package datasets

// FieldMetadata describes one data column for the metadata endpoints.
// Ontology URLs keep the definitions machine-readable and
// interoperable (FAIR data).
type FieldMetadata struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	DataType       string   `json:"data_type"`
	Unit           string   `json:"unit,omitempty"`
	PossibleValues []string `json:"possible_values,omitempty"`
	Min            *float64 `json:"min,omitempty"`
	Max            *float64 `json:"max,omitempty"`
	Examples       []any    `json:"examples,omitempty"`
	Required       bool     `json:"required"`
	OntologyURL    string   `json:"ontology_url,omitempty"`
	URL            string   `json:"url,omitempty"`
}

func fmin(v float64) *float64 { return &v }

const (
	gaul1URL = "https://data.apps.fao.org/catalog/dataset/34f97afc-6218-459a-971d-5af1162d318a/resource/d472b55c-a1e0-4c9c-9ccb-8bf10c8bf0a3"
	gaul2URL = "https://data.apps.fao.org/catalog/dataset/60b23906-f21a-49ef-8424-f3645e70264e/resource/a4d23085-c6be-4924-b4be-1df45cec4168"
	asfisURL = "https://www.fao.org/fishery/en/collection/asfis"
)

var fieldMetadata = map[string]map[string]FieldMetadata{
	"landings": {
		"survey_id": {
			Name:        "survey_id",
			Description: "Unique identifier for the survey from which this record was collected",
			DataType:    "string",
			Examples:    []any{"survey_1", "survey_2", "survey_001"},
		},
		"trip_id": {
			Name:        "trip_id",
			Description: "Unique identifier for the fishing trip",
			DataType:    "string",
			Examples:    []any{"trip_1", "trip_2", "trip_001"},
		},
		"landing_date": {
			Name:        "landing_date",
			Description: "Date when the catch was landed (brought to shore)",
			DataType:    "date",
			Unit:        "ISO 8601 date format (YYYY-MM-DD)",
			Examples:    []any{"2025-02-19", "2024-02-19"},
		},
		"gaul_1_code": {
			Name:        "gaul_1_code",
			Description: "GAUL (Global Administrative Unit Layers) level 1 administrative code. Level 1 distinguishes States, Provinces, Departments and equivalent",
			DataType:    "string",
			Examples:    []any{"1696", "1697"},
			URL:         gaul1URL,
		},
		"gaul_1_name": {
			Name:        "gaul_1_name",
			Description: "Human-readable name of the GAUL level 1 administrative unit",
			DataType:    "string",
			Examples:    []any{"Unguja North", "Pemba North", "Unguja South"},
			URL:         gaul1URL,
		},
		"gaul_2_code": {
			Name:        "gaul_2_code",
			Description: "GAUL (Global Administrative Unit Layers) level 2 administrative code. Level 2 distinguishes Districts and equivalent",
			DataType:    "string",
			Examples:    []any{"16961", "16971"},
			URL:         gaul2URL,
		},
		"gaul_2_name": {
			Name:        "gaul_2_name",
			Description: "Human-readable name of the GAUL level 2 administrative unit",
			DataType:    "string",
			Examples:    []any{"District A", "District B"},
			URL:         gaul2URL,
		},
		"n_fishers": {
			Name:        "n_fishers",
			Description: "The total number of people actively fishing on a fishing trip",
			DataType:    "integer",
			Min:         fmin(1),
			Examples:    []any{1, 2, 3, 4, 5},
			OntologyURL: "http://w3id.org/aqfo/aqfo_00000022",
		},
		"trip_duration_hrs": {
			Name:        "trip_duration_hrs",
			Description: "Duration of fishing, measured between departure and return time and date",
			DataType:    "float",
			Unit:        "hours",
			Min:         fmin(0),
			Examples:    []any{4.5, 6.0, 8.5, 12.0},
			OntologyURL: "http://w3id.org/aqfo/aqfo_00002011",
		},
		"gear": {
			Name:        "gear",
			Description: "Tool or method used to catch fish, such as hook-and-line, trawl net, gillnet, pot, trap, spear or manual collection",
			DataType:    "string",
			PossibleValues: []string{
				"hand_line", "net", "trap", "spear", "longline", "trawl",
			},
			Examples:    []any{"hand_line", "net", "trap"},
			OntologyURL: "http://w3id.org/aqfo/aqfo_00002220",
		},
		"vessel_type": {
			Name:           "vessel_type",
			Description:    "Water vehicle that operates above or under the water surface with or without an engine or other form of propulsion",
			DataType:       "string",
			PossibleValues: []string{"outrigger", "dhow", "canoe"},
			Examples:       []any{"outrigger", "dhow", "canoe"},
			OntologyURL:    "http://w3id.org/aqfo/aqfo_00001013",
		},
		"catch_habitat": {
			Name:           "catch_habitat",
			Description:    "The place where an organism lives or the place one would go to find it",
			DataType:       "string",
			PossibleValues: []string{"reef", "pelagic", "demersal", "coastal", "offshore"},
			Examples:       []any{"reef", "pelagic", "mangroves"},
			OntologyURL:    "http://w3id.org/aqfo/aqfo_00000023",
		},
		"catch_outcome": {
			Name:           "catch_outcome",
			Description:    "Binary indicator of whether the fishing trip resulted in any catch: 1 when at least one catch was recorded, 0 otherwise",
			DataType:       "integer",
			PossibleValues: []string{"0", "1"},
			Examples:       []any{1, 0},
		},
		"n_catch": {
			Name:        "n_catch",
			Description: "Number of distinct catch records reported for the trip; a catch record is a unique combination of taxon and length class",
			DataType:    "integer",
			Min:         fmin(0),
			Examples:    []any{0, 1, 3, 10},
		},
		"catch_taxon": {
			Name:           "catch_taxon",
			Description:    "3-alpha code identifying the species or taxonomic group according to the FAO ASFIS List of Species for Fishery Statistics Purposes",
			DataType:       "string",
			PossibleValues: []string{"MZZ", "SKJ", "IAX", "TUN", "YFT", "BET"},
			Examples:       []any{"MZZ", "SKJ", "IAX"},
			URL:            asfisURL,
		},
		"length_cm": {
			Name:        "length_cm",
			Description: "Length class associated with the catch record; fish over one meter carry the measured length in cm instead of a range label",
			DataType:    "float",
			Unit:        "cm",
			Min:         fmin(0),
			Examples:    []any{10.0, 15.0, 30.0, 90.0, 110.0, 145.0, 200.0},
			OntologyURL: "http://w3id.org/aqfo/aqfo_00002073",
		},
		"catch_kg": {
			Name:        "catch_kg",
			Description: "Weight of the catch in kilograms",
			DataType:    "float",
			Unit:        "kg",
			Min:         fmin(0),
			Examples:    []any{15.5, 45.2, 120.0, 250.5},
		},
		"catch_price": {
			Name:        "catch_price",
			Description: "Price of the catch in local currency. Currency unit depends on the country",
			DataType:    "float",
			Unit:        "local_currency",
			Min:         fmin(0),
			Examples:    []any{30000, 50000, 200000},
			OntologyURL: "http://w3id.org/aqfo/aqfo_00002015",
		},
	},
}

// Field returns metadata for a single field of a dataset type.
func Field(fieldName, datasetType string) (FieldMetadata, bool) {
	md, ok := fieldMetadata[datasetType][fieldName]
	return md, ok
}

// Fields returns metadata for every field of a dataset type.
func Fields(datasetType string) map[string]FieldMetadata {
	src := fieldMetadata[datasetType]
	out := make(map[string]FieldMetadata, len(src))
	for name, md := range src {
		out[name] = md
	}
	return out
}

// FieldsForScope returns metadata for the fields of one scope, false
// when the scope does not exist for the dataset type.
func FieldsForScope(scope, datasetType string) (map[string]FieldMetadata, bool) {
	columns, ok := ScopeColumns(scope, datasetType)
	if !ok {
		return nil, false
	}
	all := fieldMetadata[datasetType]
	out := make(map[string]FieldMetadata, len(columns))
	for _, col := range columns {
		if md, found := all[col]; found {
			out[col] = md
		}
	}
	return out, true
}

// FieldNames lists all documented field names for a dataset type.
func FieldNames(datasetType string) []string {
	src := fieldMetadata[datasetType]
	names := make([]string, 0, len(src))
	for name := range src {
		names = append(names, name)
	}
	return names
}

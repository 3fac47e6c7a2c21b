// Package datasets holds the compiled-in dataset descriptors, column
// scopes and field metadata. Adding a dataset type means adding an
// entry here; data routes are registered from this registry at startup.
package datasets

// Type describes one logical dataset.
type Type struct {
	Name        string
	Endpoint    string
	Description string
	DateColumn  string
}

// Trip data is part of the landings dataset (wide format), so there is
// a single dataset type for now.
var registry = []Type{
	{
		Name:        "landings",
		Endpoint:    "landings",
		Description: "Fish landing records with catch and trip information",
		DateColumn:  "landing_date",
	},
}

func All() []Type {
	out := make([]Type, len(registry))
	copy(out, registry)
	return out
}

func Get(name string) (Type, bool) {
	for _, t := range registry {
		if t.Name == name {
			return t, true
		}
	}
	return Type{}, false
}

// Names lists all registered dataset type names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, t := range registry {
		names = append(names, t.Name)
	}
	return names
}

package rules

import "github.com/dmitrymomot/formguard"

// Option configures the catalog returned by All.
type Option func(*catalog)

type catalog struct {
	store SetStore
}

// WithSetStore enables the remote rules backed by store.
func WithSetStore(store SetStore) Option {
	return func(c *catalog) {
		c.store = store
	}
}

// All returns every built-in rule as one ordered set. Family order decides
// which failing rule reports first: alpha, compare, date, file, select,
// native, number, required, string, then remote.
func All(opts ...Option) formguard.RuleSet {
	var c catalog
	for _, opt := range opts {
		opt(&c)
	}

	families := []formguard.RuleSet{
		Alpha(),
		Compare(),
		Date(),
		File(),
		Select(),
		Native(),
		Number(),
		Required(),
		String(),
	}
	if c.store != nil {
		families = append(families, Remote(c.store))
	}

	var out formguard.RuleSet
	for _, set := range families {
		out = append(out, set...)
	}
	return out
}

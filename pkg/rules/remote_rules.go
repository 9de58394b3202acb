package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrymomot/formguard"
	"github.com/dmitrymomot/formguard/pkg/async"
)

// SetStore answers set membership lookups. redis.SetStore implements it.
type SetStore interface {
	Contains(ctx context.Context, set, member string) (bool, error)
}

// Remote returns rules that look the value up in store. The attribute
// value names the set: unique="emails". Lookup errors are resolved by the
// engine failure policy.
func Remote(store SetStore) formguard.RuleSet {
	return formguard.RuleSet{
		{
			Name:          "unique",
			ValidateAsync: lookup(store, false),
			Message:       "This {field} is already taken.",
		},
		{
			Name:          "exists",
			ValidateAsync: lookup(store, true),
			Message:       "The selected {field} does not exist.",
		},
	}
}

func lookup(store SetStore, want bool) formguard.AsyncPredicate {
	return func(ctx context.Context, rc *formguard.RuleContext) *async.Future[formguard.Outcome] {
		set := strings.TrimSpace(rc.AttrValue)
		if set == "" {
			return async.Resolve(formguard.Pass())
		}
		member := rc.Value.String()
		return async.Go(ctx, func(ctx context.Context) (formguard.Outcome, error) {
			found, err := store.Contains(ctx, set, member)
			if err != nil {
				return formguard.Outcome{}, fmt.Errorf("lookup %q in %q: %w", member, set, err)
			}
			return formguard.Bool(found == want), nil
		})
	}
}

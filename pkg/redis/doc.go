// Package redis connects to Redis and provides the set-membership store used
// by formguard's remote rules.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := redis.NewSetStore(client, cfg.KeyPrefix)
//
//	engine.DefineRules(rules.Remote(store))
//
// Connect parses the URL, pings the server and retries according to Config.
//
// SetStore.Contains uses SISMEMBER on "<prefix><set>"; Add and Remove keep the
// sets up to date.
package redis

package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// SetStore answers membership questions against Redis sets. It backs the
// remote "unique" and "exists" rules.
type SetStore struct {
	db     redis.UniversalClient
	prefix string
}

// NewSetStore wraps client. Set names are prefixed with prefix.
func NewSetStore(client redis.UniversalClient, prefix string) *SetStore {
	return &SetStore{db: client, prefix: prefix}
}

// Key returns the Redis key of a set.
func (s *SetStore) Key(set string) string {
	return s.prefix + set
}

// Contains reports whether member belongs to set.
func (s *SetStore) Contains(ctx context.Context, set, member string) (bool, error) {
	ok, err := s.db.SIsMember(ctx, s.Key(set), member).Result()
	if err != nil {
		return false, errors.Join(ErrLookup, err)
	}
	return ok, nil
}

// Add inserts members into set.
func (s *SetStore) Add(ctx context.Context, set string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]any, len(members))
	for i, m := range members {
		args[i] = m
	}
	return s.db.SAdd(ctx, s.Key(set), args...).Err()
}

// Remove deletes members from set.
func (s *SetStore) Remove(ctx context.Context, set string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]any, len(members))
	for i, m := range members {
		args[i] = m
	}
	return s.db.SRem(ctx, s.Key(set), args...).Err()
}

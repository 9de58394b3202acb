package redis

import "errors"

var (
	ErrEmptyURL   = errors.New("redis: empty connection url")
	ErrInvalidURL = errors.New("redis: invalid connection url")
	ErrNotReady   = errors.New("redis: server not ready before deadline")
	ErrLookup     = errors.New("redis: set lookup failed")
)

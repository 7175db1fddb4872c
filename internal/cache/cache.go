package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCorruptEntry is returned by GetJSON when a stored value no longer decodes into the
// requested type. The entry has already been evicted; callers treat it as a miss.
var ErrCorruptEntry = errors.New("cache: corrupt entry evicted")

// Cache holds derived personalization results (recommendations, career insights) keyed
// per user. Values are JSON so any replica can read what another wrote.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// InvalidateUser drops every entry derived from userID's profile.
func InvalidateUser(ctx context.Context, c Cache, userID string) error {
	if c == nil {
		return nil
	}
	return c.Del(ctx, UserKeys(userID)...)
}

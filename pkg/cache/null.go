package cache

import (
	"context"
	"time"
)

// NullCache discards every write and reports every read as a miss. It
// backs the --no-cache flag and stands in when a configured backend is
// unavailable, so callers never need a nil check.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)

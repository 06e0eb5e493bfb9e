package cache

import (
	"encoding/json"
	"time"
)

// BytesCache is a minimal cache API storing raw bytes with TTL.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}

// GetJSON reads key and unmarshals it into out. A decode failure is
// treated as a miss so a stale or corrupt entry never poisons reads.
func GetJSON(c BytesCache, key string, out any) bool {
	b, ok, err := c.GetBytes(key)
	if err != nil || !ok {
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false
	}
	return true
}

// SetJSON marshals v and stores it under key.
func SetJSON(c BytesCache, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.SetBytes(key, b, ttl)
}

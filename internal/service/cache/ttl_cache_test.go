package cache

import (
	"testing"
	"time"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache()
	c.Set("k", "v", time.Minute)
	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Fatalf("got %v ok=%v", got, ok)
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache()
	c.Set("k", "v", time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected expired entry")
	}
}

func TestTTLCacheNoExpiry(t *testing.T) {
	c := NewTTLCache()
	c.Set("k", "v", 0)
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("zero ttl should not expire")
	}
}

func TestGetBytesNonByteValue(t *testing.T) {
	c := NewTTLCache()
	c.Set("k", 42, time.Minute)
	if _, ok, _ := c.GetBytes("k"); ok {
		t.Fatalf("non-byte value should read as miss")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	c := NewTTLCache()
	in := map[string]int{"a": 1, "b": 2}
	if err := SetJSON(c, "k", in, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out map[string]int
	if !GetJSON(c, "k", &out) {
		t.Fatalf("expected hit")
	}
	if out["a"] != 1 || out["b"] != 2 {
		t.Fatalf("got %v", out)
	}
}

func TestJSONMissOnCorruptEntry(t *testing.T) {
	c := NewTTLCache()
	_ = c.SetBytes("k", []byte("not json"), time.Minute)

	var out map[string]int
	if GetJSON(c, "k", &out) {
		t.Fatalf("corrupt entry should read as miss")
	}
}

package cache

import (
	"testing"
	"time"
)

func TestLRU_GetSet(t *testing.T) {
	c := NewLRU[string](2, time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")

	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v; want 1, true", v, ok)
	}

	// "b" is now least recently used.
	c.Set("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("expected a to survive eviction")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLRU_Overwrite(t *testing.T) {
	c := NewLRU[int](2, time.Minute)
	c.Set("k", 1)
	c.Set("k", 2)

	if v, _ := c.Get("k"); v != 2 {
		t.Errorf("Get(k) = %d, want 2", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRU_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRU[int](10, time.Minute)
	c.now = func() time.Time { return now }

	c.Set("a", 1)
	c.Set("b", 2)

	now = now.Add(2 * time.Minute)
	c.Set("c", 3)

	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be expired")
	}
	if removed := c.PurgeExpired(); removed != 1 {
		t.Errorf("PurgeExpired() = %d, want 1", removed)
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("Get(c) = %d, %v; want 3, true", v, ok)
	}
}

func TestLRU_ExpiryIsAbsoluteByDefault(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRU[int](10, time.Minute)
	c.now = func() time.Time { return now }

	c.Set("a", 1)
	now = now.Add(40 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a before its TTL")
	}
	now = now.Add(40 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to expire a TTL after Set despite the read")
	}
}

func TestIdleLRU_HitsExtendExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewIdleLRU[int](10, time.Minute)
	c.now = func() time.Time { return now }

	c.Set("a", 1)
	for i := 0; i < 5; i++ {
		now = now.Add(40 * time.Second)
		if _, ok := c.Get("a"); !ok {
			t.Fatalf("read %d: expected a to stay cached while in use", i)
		}
	}

	now = now.Add(61 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to expire after a full idle TTL")
	}
}

package cache

import (
	"testing"
	"time"
)

func TestLRUCacheEviction(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	if _, ok := c.Get("a"); !ok { // a becomes most recent
		t.Fatal("expected a")
	}
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("b should have been evicted as least recently used")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected a=1, got %d (%v)", v, ok)
	}
	if c.Size() != 2 {
		t.Fatalf("expected size 2, got %d", c.Size())
	}
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("a should be deleted")
	}
}

func TestLRUCacheTTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewLRUCache[string](10, time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k1", "v1")
	c.Set("k2", "v2")
	now = now.Add(30 * time.Second)
	c.Set("k2", "fresh")
	if v, ok := c.Get("k1"); !ok || v != "v1" {
		t.Fatalf("k1 should still be cached, got %q (%v)", v, ok)
	}

	now = now.Add(45 * time.Second)
	if removed := c.CleanExpired(); removed != 1 {
		t.Fatalf("expected 1 expired entry, got %d", removed)
	}
	if v, ok := c.Get("k2"); !ok || v != "fresh" {
		t.Fatalf("k2 should survive, got %q (%v)", v, ok)
	}

	now = now.Add(time.Hour)
	if _, ok := c.Get("k2"); ok {
		t.Fatal("k2 should expire on read")
	}
}

type countingCleaner struct{ calls chan struct{} }

func (c *countingCleaner) CleanExpired() int {
	select {
	case c.calls <- struct{}{}:
	default:
	}
	return 0
}

func TestManagerSweeps(t *testing.T) {
	m := NewManager()
	cl := &countingCleaner{calls: make(chan struct{}, 1)}
	m.Register(cl)
	m.StartCleanup(5 * time.Millisecond)
	defer m.Stop()

	select {
	case <-cl.calls:
	case <-time.After(time.Second):
		t.Fatal("cleaner was never called")
	}
}

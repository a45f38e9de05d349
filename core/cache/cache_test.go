package cache_test

import (
	"testing"
	"time"

	"magiccards.GO/core/cache"
)

func TestCache_SetGet(t *testing.T) {
	c := cache.NewCache()
	c.Set("k", 42, 0)
	v, ok := c.Get("k")
	if !ok {
		t.Fatal("Get: not found")
	}
	if v.(int) != 42 {
		t.Errorf("Get = %v, want 42", v)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing): found, want miss")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := cache.NewCache()
	c.Set("k", "v", 1)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("value expired too early")
	}
	time.Sleep(1100 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("value did not expire")
	}
}

func TestCache_Delete(t *testing.T) {
	c := cache.NewCache()
	c.Set("k", "v", 0)
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Delete: value still present")
	}
}

func TestKey(t *testing.T) {
	if got := cache.Key("cat", 2, "Wilds of Eldraine"); got != "cat|2|Wilds of Eldraine" {
		t.Errorf("Key = %q", got)
	}
}

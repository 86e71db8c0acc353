package routing

import (
	"fmt"
	"testing"

	"tether/scene"
)

func TestCacheGetPut(t *testing.T) {
	cache := NewCache(10)
	key := NewRouteKey(scene.Point{X: 0, Y: 0}, scene.Point{X: 100, Y: 0}, "a", "b", 42)

	if _, found := cache.Get(key); found {
		t.Error("empty cache should miss")
	}

	path := []scene.Point{{}, {X: 100, Y: 0}}
	cache.Put(key, path)

	got, found := cache.Get(key)
	if !found {
		t.Fatal("stored path should hit")
	}
	if len(got) != 2 || got[1] != path[1] {
		t.Errorf("got %v, want %v", got, path)
	}

	hits, misses, _, size := cache.Stats()
	if hits != 1 || misses != 1 || size != 1 {
		t.Errorf("stats hits=%d misses=%d size=%d, want 1/1/1", hits, misses, size)
	}
}

func TestCacheEviction(t *testing.T) {
	cache := NewCache(3)
	for i := 0; i < 5; i++ {
		key := NewRouteKey(scene.Point{X: float64(i * 10)}, scene.Point{X: 100}, "", "", 0)
		cache.Put(key, []scene.Point{{}})
	}

	_, _, evictions, size := cache.Stats()
	if size > 3 {
		t.Errorf("size %d exceeds the limit", size)
	}
	if evictions != 2 {
		t.Errorf("evictions = %d, want 2", evictions)
	}
}

func TestCacheClear(t *testing.T) {
	cache := NewCache(10)
	key := NewRouteKey(scene.Point{}, scene.Point{X: 1}, "", "", 0)
	cache.Put(key, []scene.Point{{}})
	cache.Get(key)
	cache.Clear()

	hits, misses, _, size := cache.Stats()
	if size != 0 || hits != 0 || misses != 0 {
		t.Errorf("clear left hits=%d misses=%d size=%d", hits, misses, size)
	}
}

func TestRouteKeyRounding(t *testing.T) {
	base := NewRouteKey(scene.Point{X: 10, Y: 20}, scene.Point{X: 30, Y: 40}, "a", "b", 7)

	// Sub-quarter-unit jitter rounds to the same key.
	jittered := NewRouteKey(scene.Point{X: 10.1, Y: 19.9}, scene.Point{X: 30.2, Y: 40.1}, "a", "b", 7)
	if base != jittered {
		t.Errorf("jittered key %+v differs from %+v", jittered, base)
	}

	// A real move, a different binding or a different obstacle fingerprint
	// each produce a distinct key.
	distinct := []RouteKey{
		NewRouteKey(scene.Point{X: 11, Y: 20}, scene.Point{X: 30, Y: 40}, "a", "b", 7),
		NewRouteKey(scene.Point{X: 10, Y: 20}, scene.Point{X: 30, Y: 40}, "c", "b", 7),
		NewRouteKey(scene.Point{X: 10, Y: 20}, scene.Point{X: 30, Y: 40}, "a", "b", 8),
	}
	for i, k := range distinct {
		if k == base {
			t.Errorf("key %d should differ from the base key", i)
		}
	}
}

func TestCacheString(t *testing.T) {
	cache := NewCache(4)
	key := NewRouteKey(scene.Point{}, scene.Point{X: 1}, "", "", 0)
	cache.Put(key, []scene.Point{{}})
	cache.Get(key)
	cache.Get(NewRouteKey(scene.Point{X: 9}, scene.Point{X: 1}, "", "", 0))

	want := "Cache[size=1/4, hits=1, misses=1, hitRate=50.0%, evictions=0]"
	if got := fmt.Sprint(cache); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

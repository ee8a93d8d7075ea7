package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if _, ok, _ := c.Get(ctx, "weather:Hyderabad"); ok {
		t.Fatal("expected miss on empty cache")
	}

	if err := c.Set(ctx, "weather:Hyderabad", []byte(`{"temp":31}`), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := c.Get(ctx, "weather:Hyderabad")
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff(`{"temp":31}`, string(got)); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.SetClock(func() time.Time { return now })

	_ = c.Set(ctx, "aqi:Guntur", []byte("3"), 30*time.Minute)

	now = now.Add(29 * time.Minute)
	if _, ok, _ := c.Get(ctx, "aqi:Guntur"); !ok {
		t.Fatal("entry expired before its TTL")
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "aqi:Guntur"); ok {
		t.Fatal("entry survived past its TTL")
	}

	// Lazy eviction removed the key entirely.
	c.mu.Lock()
	_, present := c.data["aqi:Guntur"]
	c.mu.Unlock()
	if present {
		t.Error("expired entry was not evicted on access")
	}
}

func TestMemoryIndependentKeys(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	_ = c.Set(ctx, "weather:Guntur", []byte("a"), time.Minute)
	_ = c.Set(ctx, "forecast:Guntur", []byte("b"), time.Minute)

	got, _, _ := c.Get(ctx, "forecast:Guntur")
	if diff := cmp.Diff("b", string(got)); diff != "" {
		t.Errorf("key collision (-want +got):\n%s", diff)
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = c.Set(ctx, "weather:Hyderabad", []byte("x"), time.Minute)
				_, _, _ = c.Get(ctx, "weather:Hyderabad")
			}
		}()
	}
	wg.Wait()

	if _, ok, _ := c.Get(ctx, "weather:Hyderabad"); !ok {
		t.Fatal("expected hit after concurrent writes")
	}
}

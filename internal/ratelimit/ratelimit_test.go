package ratelimit

import (
	"sync"
	"testing"
)

func TestAllowWithinBurst(t *testing.T) {
	krl := New(1, 3)

	for i := 0; i < 3; i++ {
		if !krl.Allow("client-a") {
			t.Fatalf("request %d within burst should be allowed", i)
		}
	}
	if krl.Allow("client-a") {
		t.Error("request beyond burst should be denied")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	krl := New(1, 1)

	if !krl.Allow("client-a") {
		t.Fatal("first request for client-a should be allowed")
	}
	if krl.Allow("client-a") {
		t.Error("second request for client-a should be denied")
	}
	// A different key has its own bucket.
	if !krl.Allow("client-b") {
		t.Error("first request for client-b should be allowed")
	}
}

func TestConcurrentAccess(t *testing.T) {
	krl := New(1000, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := string(rune('a' + i%4))
			for j := 0; j < 50; j++ {
				krl.Allow(key)
			}
		}()
	}
	wg.Wait()

	if len(krl.limiters) != 4 {
		t.Errorf("expected 4 limiters, got %d", len(krl.limiters))
	}
}

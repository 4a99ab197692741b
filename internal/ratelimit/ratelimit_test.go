package ratelimit

import (
	"fmt"
	"testing"
	"time"
)

func TestNilLimiterAllows(t *testing.T) {
	if l := New(0, 5); l != nil {
		t.Fatalf("New(0, 5) = %v, want nil", l)
	}
	var l *KeyedLimiter
	for i := 0; i < 100; i++ {
		if !l.Allow("client") {
			t.Fatalf("nil limiter rejected request %d", i)
		}
	}
}

func TestBurstThenReject(t *testing.T) {
	l := New(0.001, 2)
	if !l.Allow("a") || !l.Allow("a") {
		t.Fatalf("first two requests within burst were rejected")
	}
	if l.Allow("a") {
		t.Fatalf("third request allowed, want rejection after burst")
	}
	if !l.Allow("b") {
		t.Fatalf("independent key b rejected")
	}
}

func TestGetReusesLimiter(t *testing.T) {
	l := New(1, 1)
	if l.Get("x") != l.Get("x") {
		t.Fatalf("Get returned different limiters for the same key")
	}
}

func TestBurstFloor(t *testing.T) {
	l := New(1, 0)
	if got := l.Get("x").Burst(); got != 1 {
		t.Fatalf("burst = %d, want 1", got)
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newClocked(rps float64, burst, maxKeys int) (*KeyedLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := New(rps, burst)
	l.maxKeys = maxKeys
	l.now = clock.now
	return l, clock
}

func TestFullTableEvictsRefilledClients(t *testing.T) {
	l, clock := newClocked(1, 1, 2)

	l.Allow("idle")
	clock.t = clock.t.Add(2 * time.Second) // idle's bucket refills
	l.Allow("busy")                        // busy's bucket is now empty

	if !l.Allow("new") {
		t.Fatalf("new client rejected")
	}
	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
	if l.Allow("busy") {
		t.Fatalf("busy client regained budget after eviction, want its bucket kept")
	}
}

func TestFullTableEvictsLeastRecentlySeen(t *testing.T) {
	l, clock := newClocked(0.001, 1, 2)

	l.Allow("first")
	clock.t = clock.t.Add(time.Second)
	l.Allow("second")
	clock.t = clock.t.Add(time.Second)
	l.Allow("third")

	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
	if l.Allow("second") {
		t.Fatalf("second admitted again, want its exhausted bucket kept")
	}
	l.mu.Lock()
	_, firstKept := l.limiters["first"]
	l.mu.Unlock()
	if firstKept {
		t.Fatalf("least recently seen client was not evicted")
	}
}

func TestOverflowKeepsOtherClientsBudgets(t *testing.T) {
	l, clock := newClocked(0.001, 1, 8)

	keys := make([]string, 8)
	for i := range keys {
		keys[i] = fmt.Sprintf("client-%d", i)
		if !l.Allow(keys[i]) {
			t.Fatalf("first request from %s rejected", keys[i])
		}
		clock.t = clock.t.Add(time.Millisecond)
	}

	if !l.Allow("newcomer") {
		t.Fatalf("newcomer rejected")
	}
	if l.Len() != 8 {
		t.Fatalf("Len = %d, want 8", l.Len())
	}
	for _, key := range keys[1:] {
		if l.Allow(key) {
			t.Fatalf("%s admitted after overflow, want its exhausted bucket kept", key)
		}
	}
}

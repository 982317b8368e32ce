package rate

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func TestFixedWindow_Allow(t *testing.T) {
	clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	lim := NewFixedWindow(5, time.Minute, clk)

	for i := 0; i < 5; i++ {
		if err := lim.Allow("1.2.3.4"); err != nil {
			t.Fatalf("request %d: unexpected error: %v", i+1, err)
		}
	}

	if err := lim.Allow("1.2.3.4"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("6th request: got %v, want ErrRateLimited", err)
	}

	// other keys are unaffected
	if err := lim.Allow("5.6.7.8"); err != nil {
		t.Fatalf("other key: unexpected error: %v", err)
	}

	// window rolls over
	clk.advance(time.Minute)
	if err := lim.Allow("1.2.3.4"); err != nil {
		t.Fatalf("after window: unexpected error: %v", err)
	}
}

func TestFixedWindow_PartialWindowStillLimited(t *testing.T) {
	clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	lim := NewFixedWindow(2, time.Minute, clk)

	if err := lim.Allow("k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clk.advance(30 * time.Second)
	if err := lim.Allow("k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := lim.Allow("k"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("got %v, want ErrRateLimited", err)
	}
}

func TestTokenBucket_BurstThenRefill(t *testing.T) {
	clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	lim := NewTokenBucket(10, time.Minute, clk)

	for i := 0; i < 10; i++ {
		if err := lim.Allow("1.2.3.4"); err != nil {
			t.Fatalf("request %d: unexpected error: %v", i+1, err)
		}
	}

	if err := lim.Allow("1.2.3.4"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("drained bucket: got %v, want ErrRateLimited", err)
	}

	// no partial refill before the period elapses
	clk.advance(59 * time.Second)
	if err := lim.Allow("1.2.3.4"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("before refill: got %v, want ErrRateLimited", err)
	}

	clk.advance(time.Second)
	for i := 0; i < 10; i++ {
		if err := lim.Allow("1.2.3.4"); err != nil {
			t.Fatalf("after refill, request %d: unexpected error: %v", i+1, err)
		}
	}
}

func TestTokenBucket_SinglePermit(t *testing.T) {
	clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	lim := NewTokenBucket(1, time.Minute, clk)

	if err := lim.Allow("k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := lim.Allow("k"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("got %v, want ErrRateLimited", err)
	}

	clk.advance(time.Minute)
	if err := lim.Allow("k"); err != nil {
		t.Fatalf("after refill: unexpected error: %v", err)
	}
}

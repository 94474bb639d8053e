// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Unix(1_700_000_000, 0)

func TestFakeClockNow(t *testing.T) {
	clock := Fake(epoch)
	if got := clock.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	clock.Advance(5 * time.Second)
	if got, want := clock.Now(), epoch.Add(5*time.Second); !got.Equal(want) {
		t.Fatalf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestFakeClockAfter(t *testing.T) {
	clock := Fake(epoch)
	channel := clock.After(10 * time.Second)

	clock.Advance(9 * time.Second)
	select {
	case <-channel:
		t.Fatal("After fired before its deadline")
	default:
	}

	clock.Advance(time.Second)
	select {
	case fired := <-channel:
		if want := epoch.Add(10 * time.Second); !fired.Equal(want) {
			t.Errorf("fired at %v, want %v", fired, want)
		}
	default:
		t.Fatal("After did not fire at its deadline")
	}

	if clock.PendingCount() != 0 {
		t.Errorf("PendingCount = %d after one-shot fired, want 0", clock.PendingCount())
	}
}

func TestFakeClockAfterNonPositive(t *testing.T) {
	clock := Fake(epoch)
	for _, d := range []time.Duration{0, -time.Second} {
		select {
		case <-clock.After(d):
		default:
			t.Errorf("After(%v) not immediately ready", d)
		}
	}
	if clock.PendingCount() != 0 {
		t.Errorf("immediate After registered a waiter")
	}
}

func TestFakeClockTicker(t *testing.T) {
	clock := Fake(epoch)
	ticker := clock.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for tick := 1; tick <= 3; tick++ {
		clock.Advance(5 * time.Second)
		select {
		case <-ticker.C:
		default:
			t.Fatalf("tick %d not delivered", tick)
		}
	}
}

func TestFakeClockTickerDropsTicks(t *testing.T) {
	clock := Fake(epoch)
	ticker := clock.NewTicker(time.Second)
	defer ticker.Stop()

	clock.Advance(10 * time.Second)

	select {
	case <-ticker.C:
	default:
		t.Fatal("expected one buffered tick")
	}
	select {
	case <-ticker.C:
		t.Fatal("ticks beyond the buffer should be dropped")
	default:
	}
}

func TestFakeClockTickerStop(t *testing.T) {
	clock := Fake(epoch)
	ticker := clock.NewTicker(time.Second)
	ticker.Stop()

	clock.Advance(5 * time.Second)
	select {
	case <-ticker.C:
		t.Fatal("stopped ticker delivered a tick")
	default:
	}
	if clock.PendingCount() != 0 {
		t.Errorf("PendingCount = %d, want 0 for stopped ticker", clock.PendingCount())
	}
}

func TestFakeClockTickerPanicsOnNonPositive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewTicker(0) did not panic")
		}
	}()
	Fake(epoch).NewTicker(0)
}

func TestFakeClockWaitForTimers(t *testing.T) {
	clock := Fake(epoch)
	registered := make(chan struct{})
	go func() {
		clock.WaitForTimers(1)
		close(registered)
	}()

	ticker := clock.NewTicker(time.Second)
	defer ticker.Stop()
	<-registered
}

func TestClocksImplementClock(t *testing.T) {
	var _ Clock = Fake(epoch)
	var _ Clock = Real()
}

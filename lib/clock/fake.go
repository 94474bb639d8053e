// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake returns a FakeClock frozen at initial. It is safe for
// concurrent use.
func Fake(initial time.Time) *FakeClock {
	clock := &FakeClock{current: initial}
	clock.waitersChanged = sync.NewCond(&clock.mu)
	return clock
}

// FakeClock is a deterministic Clock. Time only moves on Advance, and
// every After channel and Ticker whose deadline is crossed fires
// during that call, in deadline order.
type FakeClock struct {
	mu             sync.Mutex
	current        time.Time
	waiters        []*fakeWaiter
	waitersChanged *sync.Cond
}

type fakeWaiter struct {
	deadline time.Time
	channel  chan time.Time

	// interval is non-zero for tickers, which are rescheduled at
	// deadline+interval after firing.
	interval time.Duration
	stopped  bool
}

// Now returns the fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// After returns a channel that fires once the clock has been advanced
// by at least d.
func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	channel := make(chan time.Time, 1)
	if d <= 0 {
		channel <- c.current
		return channel
	}
	c.addWaiterLocked(&fakeWaiter{deadline: c.current.Add(d), channel: channel})
	return channel
}

// NewTicker registers a ticker that fires every d of fake time.
func (c *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	channel := make(chan time.Time, 1)
	waiter := &fakeWaiter{deadline: c.current.Add(d), channel: channel, interval: d}
	c.addWaiterLocked(waiter)

	return &Ticker{
		C: channel,
		stopFunc: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			waiter.stopped = true
		},
	}
}

func (c *FakeClock) addWaiterLocked(waiter *fakeWaiter) {
	c.waiters = append(c.waiters, waiter)
	c.waitersChanged.Broadcast()
}

// Advance moves the clock forward by d and fires every waiter whose
// deadline is now due. A ticker crossed several times fires once per
// interval, but since its channel holds one value the extra ticks are
// dropped, as with time.Ticker.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	target := c.current
	c.mu.Unlock()

	for {
		due := c.collectDue(target)
		if len(due) == 0 {
			return
		}
		sort.Slice(due, func(i, j int) bool {
			return due[i].deadline.Before(due[j].deadline)
		})
		for _, waiter := range due {
			select {
			case waiter.channel <- target:
			default:
			}
		}
	}
}

// collectDue pops due waiters and reschedules tickers.
func (c *FakeClock) collectDue(target time.Time) []*fakeWaiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	var due, remaining []*fakeWaiter
	for _, waiter := range c.waiters {
		switch {
		case waiter.stopped:
		case waiter.deadline.After(target):
			remaining = append(remaining, waiter)
		default:
			due = append(due, waiter)
			if waiter.interval > 0 {
				waiter.deadline = waiter.deadline.Add(waiter.interval)
				remaining = append(remaining, waiter)
			}
		}
	}
	c.waiters = remaining
	return due
}

// WaitForTimers blocks until at least n After channels or tickers are
// pending.
func (c *FakeClock) WaitForTimers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.pendingLocked() < n {
		c.waitersChanged.Wait()
	}
}

// PendingCount returns the number of live waiters.
func (c *FakeClock) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingLocked()
}

func (c *FakeClock) pendingLocked() int {
	count := 0
	for _, waiter := range c.waiters {
		if !waiter.stopped {
			count++
		}
	}
	return count
}

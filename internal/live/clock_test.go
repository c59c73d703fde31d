package live

import (
	"sync"
	"time"
)

// fakeClock only moves when Advance is called. Timer callbacks and ticks fire
// on the goroutine calling Advance, in time order.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	timers  []*fakeTimer
	tickers []*fakeTicker
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

type fakeTimer struct {
	c      *fakeClock
	at     time.Time
	fn     func()
	done   bool
	active bool
}

func (t *fakeTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	wasActive := t.active
	t.active = false
	t.done = true
	return wasActive
}

type fakeTicker struct {
	c       *fakeClock
	every   time.Duration
	next    time.Time
	ch      chan time.Time
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }

func (t *fakeTicker) Stop() {
	t.c.mu.Lock()
	t.stopped = true
	t.c.mu.Unlock()
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{c: c, at: c.now.Add(d), fn: f, active: true}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) NewTicker(d time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{c: c, every: d, next: c.now.Add(d), ch: make(chan time.Time, 1)}
	c.tickers = append(c.tickers, t)
	return t
}

// Advance moves time forward by d, firing everything that falls due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var (
			nextAt time.Time
			timer  *fakeTimer
			ticker *fakeTicker
		)
		for _, t := range c.timers {
			if t.active && !t.at.After(target) && (timer == nil || t.at.Before(nextAt)) {
				timer, nextAt = t, t.at
			}
		}
		for _, t := range c.tickers {
			if !t.stopped && !t.next.After(target) && ((timer == nil && ticker == nil) || t.next.Before(nextAt)) {
				timer, ticker, nextAt = nil, t, t.next
			}
		}
		if timer == nil && ticker == nil {
			c.now = target
			c.mu.Unlock()
			return
		}

		c.now = nextAt
		if timer != nil {
			timer.active = false
			timer.done = true
			c.mu.Unlock()
			timer.fn()
			continue
		}

		ticker.next = ticker.next.Add(ticker.every)
		c.mu.Unlock()
		select {
		case ticker.ch <- nextAt:
		default:
		}
	}
}

// pendingTimers counts timers that have not fired or been stopped.
func (c *fakeClock) pendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if t.active {
			n++
		}
	}
	return n
}

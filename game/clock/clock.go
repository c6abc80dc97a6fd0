// Package clock provides the time source that drives the game loop. The real
// clock wraps the time package; Mock lets tests advance time by hand.
package clock

import (
	"sync"
	"time"
)

// Clock provides the current time and periodic tickers
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers ticks on C until stopped
type Ticker interface {
	C() <-chan time.Time
	Stop()
	Reset(d time.Duration)
}

// Real is the system clock with monotonic readings
type Real struct{}

func NewReal() Real {
	return Real{}
}

func (Real) Now() time.Time {
	return time.Now()
}

func (Real) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) C() <-chan time.Time {
	return r.t.C
}

func (r *realTicker) Stop() {
	r.t.Stop()
}

func (r *realTicker) Reset(d time.Duration) {
	r.t.Reset(d)
}

// Mock is a manually advanced clock for tests
type Mock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*mockTicker
}

// NewMock creates a mock clock starting at start
func NewMock(start time.Time) *Mock {
	return &Mock{now: start}
}

func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Mock) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &mockTicker{
		clock:  m,
		c:      make(chan time.Time, 1),
		period: d,
		next:   m.now.Add(d),
		active: true,
	}
	m.tickers = append(m.tickers, t)
	return t
}

// Advance moves the clock forward by d, firing every ticker that comes due.
// Like time.Ticker, a tick is dropped when the previous one was not consumed.
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = m.now.Add(d)
	for _, t := range m.tickers {
		if !t.active {
			continue
		}
		for !t.next.After(m.now) {
			select {
			case t.c <- t.next:
			default:
			}
			t.next = t.next.Add(t.period)
		}
	}
}

// Active returns the number of running tickers
func (m *Mock) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.tickers {
		if t.active {
			n++
		}
	}
	return n
}

type mockTicker struct {
	clock  *Mock
	c      chan time.Time
	period time.Duration
	next   time.Time
	active bool
}

func (t *mockTicker) C() <-chan time.Time {
	return t.c
}

func (t *mockTicker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	t.active = false
}

func (t *mockTicker) Reset(d time.Duration) {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	t.period = d
	t.next = t.clock.now.Add(d)
	t.active = true
}

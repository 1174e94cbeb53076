package engine

import "time"

// Clock supplies wall time and a once-per-second tick while subscribed.
type Clock interface {
	Now() time.Time
	OnTick(fn func()) (cancel func())
}

// LoopClock is a wall clock whose ticks are fired by the owner's event loop,
// so subscribers always run on the same goroutine as every other mutation.
type LoopClock struct {
	now  func() time.Time
	subs map[int]func()
	next int
}

// NewLoopClock returns a LoopClock reading time from now (time.Now when nil).
func NewLoopClock(now func() time.Time) *LoopClock {
	if now == nil {
		now = time.Now
	}
	return &LoopClock{now: now, subs: make(map[int]func())}
}

func (c *LoopClock) Now() time.Time { return c.now() }

func (c *LoopClock) OnTick(fn func()) func() {
	id := c.next
	c.next++
	c.subs[id] = fn
	return func() { delete(c.subs, id) }
}

// Fire delivers one tick to every current subscriber.
func (c *LoopClock) Fire() {
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn()
	}
}

// Subscribed reports whether anyone is waiting for ticks.
func (c *LoopClock) Subscribed() bool { return len(c.subs) > 0 }

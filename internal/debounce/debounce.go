// Package debounce collapses bursts of calls into one delayed call carrying
// the most recent argument.
package debounce

import (
	"sync"
	"time"
)

// Func delays fn until no Call has happened for the configured delay.
// At most one timer is live per Func.
type Func[T any] struct {
	delay time.Duration
	fn    func(T)

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// New wraps fn. A non-positive delay still defers fn to a timer goroutine.
func New[T any](delay time.Duration, fn func(T)) *Func[T] {
	return &Func[T]{delay: delay, fn: fn}
}

// Call (re)arms the timer with arg. Any earlier pending argument is dropped.
func (d *Func[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen, arg) })
}

// Cancel drops the pending invocation, if any.
func (d *Func[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Pending reports whether an invocation is scheduled.
func (d *Func[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Func[T]) fire(gen uint64, arg T) {
	d.mu.Lock()
	// A timer that fired after being superseded must not deliver.
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn(arg)
}

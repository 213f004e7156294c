package field

import "time"

// Timer is a cancellable scheduled callback
type Timer interface {
	Stop() bool
}

// Clock abstracts time so timers can be driven deterministically in tests
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock schedules callbacks on the runtime timer
// Recover, when set, receives panics raised by callbacks
type RealClock struct {
	Recover func(any)
}

// Now returns the current wall time
func (c RealClock) Now() time.Time {
	return time.Now()
}

// AfterFunc runs f on its own goroutine after d
func (c RealClock) AfterFunc(d time.Duration, f func()) Timer {
	if c.Recover == nil {
		return time.AfterFunc(d, f)
	}
	return time.AfterFunc(d, func() {
		defer func() {
			if r := recover(); r != nil {
				c.Recover(r)
			}
		}()
		f()
	})
}

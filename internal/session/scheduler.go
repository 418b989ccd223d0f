// internal/session/scheduler.go
//
// Timer boundary: single-shot delayed callbacks that can be cancelled
// before they fire. Behind an interface so tests can drive time by hand.

package session

import "time"

// CancelFunc stops a scheduled callback if it has not fired yet.
type CancelFunc func()

// Scheduler schedules a single-shot callback after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) CancelFunc
}

type clockScheduler struct{}

// NewScheduler returns the production Scheduler backed by time.AfterFunc.
func NewScheduler() Scheduler { return clockScheduler{} }

func (clockScheduler) AfterFunc(d time.Duration, f func()) CancelFunc {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

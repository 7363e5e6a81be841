package event

import (
	"context"
	"time"
)

// Flag is a sticky, single-slot event signal. Set marks the event as having
// occurred; Wait blocks until the flag is set or the timeout elapses and
// consumes the signal. Multiple Sets before a Wait collapse into a single
// wakeup, so waiters must re-check whatever condition the flag guards in a
// loop rather than assuming one wakeup per producer event.
//
// Set and Clear never block and are safe to call from completion callbacks
// and receive loops.
type Flag struct {
	ch chan struct{}
}

// NewFlag returns a cleared flag.
func NewFlag() *Flag {
	return &Flag{ch: make(chan struct{}, 1)}
}

// Set marks the event as having occurred. No-op if already set.
func (f *Flag) Set() {
	select {
	case f.ch <- struct{}{}:
	default:
	}
}

// Clear discards a pending signal, if any.
func (f *Flag) Clear() {
	select {
	case <-f.ch:
	default:
	}
}

// Wait blocks until the flag is set or the timeout elapses. It returns true
// if the flag was consumed and false on timeout. A negative timeout waits
// forever.
func (f *Flag) Wait(timeout time.Duration) bool {
	if timeout < 0 {
		<-f.ch
		return true
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-f.ch:
		return true
	case <-t.C:
		return false
	}
}

// WaitContext blocks until the flag is set or the context is done, returning
// the context error in the latter case.
func (f *Flag) WaitContext(ctx context.Context) error {
	select {
	case <-f.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

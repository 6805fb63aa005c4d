// Package resilience provides reliability patterns for upstream service calls.
package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned when the circuit breaker is open and rejecting calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type state int

const (
	stateClosed state = iota
	stateOpen
	stateHalfOpen
)

// Breaker implements a circuit breaker for the upstream maintenance API.
// Consecutive failures past the threshold open the circuit; calls are then
// rejected until the cool-off elapses, after which one trial call decides
// whether to close it again. There is deliberately no retry anywhere: the
// dashboard surfaces the failure and the user decides.
type Breaker struct {
	mu          sync.Mutex
	state       state
	failures    int
	maxFailures int
	coolOff     time.Duration
	openedAt    time.Time
	now         func() time.Time // for testing
}

// NewBreaker creates a circuit breaker that opens after maxFailures
// consecutive failures and stays open for coolOff before probing.
func NewBreaker(maxFailures int, coolOff time.Duration) *Breaker {
	return &Breaker{
		maxFailures: maxFailures,
		coolOff:     coolOff,
		now:         time.Now,
	}
}

// expectedError carries an error that should not count against the breaker.
type expectedError struct {
	err error
}

func (e *expectedError) Error() string { return e.err.Error() }
func (e *expectedError) Unwrap() error { return e.err }

// Expected wraps an error so Execute treats it like a success for breaker
// accounting. Use it for responses that prove the upstream is reachable but
// rejected this particular request, such as a lookup of an unknown ID. The
// wrapper is removed before the error reaches the caller.
func Expected(err error) error {
	if err == nil {
		return nil
	}
	return &expectedError{err: err}
}

// Execute runs fn if the circuit is closed or half-open.
// Returns ErrCircuitOpen if the circuit is open.
func (b *Breaker) Execute(fn func() error) error {
	if !b.allow() {
		return ErrCircuitOpen
	}

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()

	var expected *expectedError
	if errors.As(err, &expected) {
		// The upstream answered, so the circuit state resets even though
		// the call itself failed.
		b.failures = 0
		b.state = stateClosed
		return expected.err
	}

	if err != nil {
		b.failures++
		if b.state == stateHalfOpen || b.failures >= b.maxFailures {
			b.state = stateOpen
			b.openedAt = b.now()
		}
		return err
	}

	b.failures = 0
	b.state = stateClosed
	return nil
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateOpen:
		if b.now().Sub(b.openedAt) >= b.coolOff {
			b.state = stateHalfOpen
			return true
		}
		return false
	default: // closed or half-open
		return true
	}
}

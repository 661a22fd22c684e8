// Package deadline implements the cooperative wall-clock budget used by the
// time-limited searches. A Budget never interrupts work: loops call Expired
// once per worklist pop and unwind with whatever they have collected.
package deadline

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeLimit is returned when a time limit is zero or negative.
var ErrInvalidTimeLimit = errors.New("deadline: time limit must be positive")

// Budget is a polling deadline. The zero value never expires.
type Budget struct {
	at  time.Time
	now func() time.Time
}

// Unlimited returns a Budget that never expires.
func Unlimited() Budget { return Budget{} }

// New starts a budget of length limit measured from now.
func New(limit time.Duration) (Budget, error) {
	return NewWithClock(limit, time.Now)
}

// NewWithClock is New with an injectable clock.
func NewWithClock(limit time.Duration, now func() time.Time) (Budget, error) {
	if limit <= 0 {
		return Budget{}, fmt.Errorf("limit=%s: %w", limit, ErrInvalidTimeLimit)
	}
	if now == nil {
		now = time.Now
	}

	return Budget{at: now().Add(limit), now: now}, nil
}

// Limited reports whether b can expire.
func (b Budget) Limited() bool { return b.now != nil }

// Expired reports whether the budget has run out.
func (b Budget) Expired() bool {
	if b.now == nil {
		return false
	}

	return !b.now().Before(b.at)
}

// Remaining returns the time left, or a negative value once expired.
// Unlimited budgets report the maximum duration.
func (b Budget) Remaining() time.Duration {
	if b.now == nil {
		return time.Duration(1<<63 - 1)
	}

	return b.at.Sub(b.now())
}

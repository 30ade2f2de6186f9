package engine

import "time"

// Interval gates a phase: it fires once every Period of accumulated time.
// It is advanced explicitly by the session tick; nothing runs in the
// background.
type Interval struct {
	Period  time.Duration
	elapsed time.Duration
}

// NewInterval creates an interval with the given period.
func NewInterval(period time.Duration) Interval {
	return Interval{Period: period}
}

// Advance adds delta and reports whether the interval elapsed. At most one
// firing is reported per call; the remainder carries over. A non-positive
// period fires on every call.
func (iv *Interval) Advance(delta time.Duration) bool {
	if iv.Period <= 0 {
		return true
	}
	iv.elapsed += delta
	if iv.elapsed < iv.Period {
		return false
	}
	iv.elapsed -= iv.Period
	if iv.elapsed >= iv.Period {
		iv.elapsed = iv.elapsed % iv.Period
	}
	return true
}

// Elapsed returns the time accumulated toward the next firing.
func (iv *Interval) Elapsed() time.Duration {
	return iv.elapsed
}

// Reset clears accumulated time.
func (iv *Interval) Reset() {
	iv.elapsed = 0
}

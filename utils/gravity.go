package utils

import "time"

// Gravity decay: every tick the interval shrinks by interval/(3000-10*level),
// an exponential decay whose rate grows with the level. The floor keeps the
// game playable at absurd levels instead of letting the interval collapse
// toward zero.
const (
	gravityDecayBase     = 3000
	gravityDecayPerLevel = 10
)

// NextGravityInterval returns the tick interval that follows current at the
// given level, clamped to floor. The result never grows.
func NextGravityInterval(current time.Duration, level int, floor time.Duration) time.Duration {
	div := gravityDecayBase - gravityDecayPerLevel*level
	if div < 1 {
		div = 1
	}
	next := current - current/time.Duration(div)
	if next < floor {
		next = floor
	}
	return next
}

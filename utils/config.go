package utils

import (
	"fmt"
	"time"
)

// KeyCount is the number of key bindings a binding string must supply, in
// order: left, rotate back, rotate, right, drop, pause, quit, restart.
const KeyCount = 8

// Config holds all configurable game parameters. Board dimensions are
// deliberately not here: the grid is fixed.
type Config struct {
	// Keys is the binding string, one byte per command in the order
	// documented on KeyCount. The default is the classic "hjkl pqr".
	Keys string `json:"keys"`

	// GravityStart is the tick interval at level 1.
	GravityStart time.Duration `json:"gravityStart"`

	// GravityFloor is the smallest interval the decay can reach.
	GravityFloor time.Duration `json:"gravityFloor"`
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	return Config{
		Keys:         "hjkl pqr",
		GravityStart: 500 * time.Millisecond,
		GravityFloor: 16 * time.Millisecond,
	}
}

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	if len(c.Keys) != KeyCount {
		return fmt.Errorf("key binding string must be %d characters, got %q", KeyCount, c.Keys)
	}
	seen := map[byte]bool{}
	for i := 0; i < len(c.Keys); i++ {
		if seen[c.Keys[i]] {
			return fmt.Errorf("duplicate key binding %q", c.Keys[i])
		}
		seen[c.Keys[i]] = true
	}
	if c.GravityStart <= 0 {
		return fmt.Errorf("gravity start interval must be positive, got %v", c.GravityStart)
	}
	if c.GravityFloor <= 0 || c.GravityFloor > c.GravityStart {
		return fmt.Errorf("gravity floor must be in (0, %v], got %v", c.GravityStart, c.GravityFloor)
	}
	return nil
}

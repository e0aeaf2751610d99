// SPDX-License-Identifier: MIT

package propeller

import "fmt"

// State is the solve lifecycle of a Propeller.
type State int

const (
	// StateUninitialized lacks blade, controller or atmosphere.
	StateUninitialized State = iota
	// StateConfigured is ready to solve.
	StateConfigured
	// StateConverging is inside a trim.
	StateConverging
	// StateTrimmed holds a feasible trim.
	StateTrimmed
	// StateFailed holds the sentinel result of a failed point.
	StateFailed
)

var stateNames = [...]string{"uninitialized", "configured", "converging", "trimmed", "failed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}

	return stateNames[s]
}

// MarshalText encodes the state name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a state name written by MarshalText.
func (s *State) UnmarshalText(b []byte) error {
	for i, name := range stateNames {
		if name == string(b) {
			*s = State(i)
			return nil
		}
	}

	return fmt.Errorf("state %q: %w", b, ErrBadState)
}

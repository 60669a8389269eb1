package coherence

import (
	"errors"
	"fmt"
)

// ErrProtocolMismatch is returned when a component needs a protocol other
// than the one the simulator runs.
var ErrProtocolMismatch = errors.New("coherence protocol mismatch")

// Requires checks that the active protocol is the required one.
func Requires(required, active Protocol) error {
	if required != active {
		return fmt.Errorf("%w: requires %s, but %s is active",
			ErrProtocolMismatch, required, active)
	}

	return nil
}

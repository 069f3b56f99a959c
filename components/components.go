// Package components defines ECS components for the simulation.
package components

import (
	"fmt"

	"github.com/pthm-cable/forage/traits"
)

// Action is the discrete behaviour state of an agent.
type Action uint8

const (
	ActionResting Action = iota // Idle, slow vitality decay, no target
	ActionMoving                // Travelling toward its target
	ActionEating                // Consuming food at its current cell
)

// String returns the display name for an Action.
func (a Action) String() string {
	names := ActionNames()
	if int(a) < len(names) {
		return names[a]
	}
	return "Unknown"
}

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	return a <= ActionEating
}

// MarshalText encodes the action by name.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes an action name produced by MarshalText.
func (a *Action) UnmarshalText(b []byte) error {
	for i, name := range ActionNames() {
		if name == string(b) {
			*a = Action(i)
			return nil
		}
	}
	return fmt.Errorf("unknown action %q", b)
}

// ActionNames returns the display names for all actions.
// The order matches the Action constants.
func ActionNames() []string {
	return []string{"Resting", "Moving", "Eating"}
}

// Status holds the mutable per-agent state.
type Status struct {
	Action   Action
	Vitality float64 // [0, MaxVitality]
}

// Genome wraps the immutable trait vector.
type Genome struct {
	Traits traits.Traits
}

// Identity fixes an agent's position in the tick order.
type Identity struct {
	Index int
}

package systems

import "errors"

// Precondition violations surfaced by the engine API. These indicate
// programming errors in the caller, never transient faults.
var (
	ErrInvalidDimension  = errors.New("invalid world dimension")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrInvalidAgentState = errors.New("invalid agent state")
)

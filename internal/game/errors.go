package game

import "errors"

var (
	// ErrInvalidState is returned when an operation does not fit the hand's
	// current state, such as acting when no hand is running.
	ErrInvalidState = errors.New("invalid game state")
	// ErrInvalidAction is returned for unknown action tokens and for actions
	// submitted on behalf of a policy-driven seat.
	ErrInvalidAction = errors.New("invalid action")
)

// Package models defines the shared domain types for spikenav: the fixed
// action vocabulary, sensor readings, and training samples.
package models

import "fmt"

// Action identifies one of the five avoidance maneuvers the network can
// select. The numeric value of an Action is its output-unit index, so the
// declaration order below is load-bearing: it must match the output layer
// and the columns of the filter→output weight matrix.
type Action int

const (
	ActionMoveForward Action = iota
	ActionTurnLeft
	ActionTurnRight
	ActionSlowDown
	ActionStop

	// NumActions is the size of the output layer.
	NumActions = 5
)

var actionNames = [NumActions]string{
	"move_forward",
	"turn_left",
	"turn_right",
	"slow_down",
	"stop",
}

// Actions returns all actions in output-unit order.
func Actions() [NumActions]Action {
	return [NumActions]Action{
		ActionMoveForward,
		ActionTurnLeft,
		ActionTurnRight,
		ActionSlowDown,
		ActionStop,
	}
}

// Valid returns true if a is a recognized action.
func (a Action) Valid() bool {
	return a >= 0 && a < NumActions
}

// Index returns the output-unit index for the action.
func (a Action) Index() int {
	return int(a)
}

// String returns the canonical label used in CSV files and CLI output.
func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction maps a label to its Action. Labels are the literal strings
// used in sensor-log CSV files.
func ParseAction(s string) (Action, error) {
	for i, name := range actionNames {
		if s == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

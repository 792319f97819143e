package order

import (
	"fmt"

	"pizza-storefront/internal/model"
)

// Action is a staff-driven transition.
type Action string

const (
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
	ActionDispatch Action = "dispatch"
	ActionDeliver  Action = "deliver"
)

type edge struct {
	from   Status
	action Action
}

var transitions = map[edge]Status{
	{StatusSubmitted, ActionAccept}:       StatusPreparing,
	{StatusSubmitted, ActionReject}:       StatusRejected,
	{StatusPreparing, ActionDispatch}:     StatusOutForDelivery,
	{StatusOutForDelivery, ActionDeliver}: StatusCompleted,
}

// ParseAction resolves an action name.
func ParseAction(name string) (Action, error) {
	switch a := Action(name); a {
	case ActionAccept, ActionReject, ActionDispatch, ActionDeliver:
		return a, nil
	}
	return "", fmt.Errorf("unknown action %q", name)
}

// Next returns the state reached by applying action to from.
func Next(from Status, action Action) (Status, error) {
	to, ok := transitions[edge{from, action}]
	if !ok {
		return StatusUnknown, fmt.Errorf("%s from %s: %w", action, from, model.ErrIllegalTransition)
	}
	return to, nil
}

// Actions lists the transitions available from a state, in board order.
func Actions(from Status) []Action {
	var out []Action
	for _, a := range []Action{ActionReject, ActionAccept, ActionDispatch, ActionDeliver} {
		if _, ok := transitions[edge{from, a}]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Progress maps a status to a display percentage. Rejected orders have no
// position on the bar and report ok=false.
func Progress(s Status) (percent int, ok bool) {
	switch s {
	case StatusSubmitted:
		return 15, true
	case StatusPreparing:
		return 50, true
	case StatusOutForDelivery:
		return 85, true
	case StatusCompleted:
		return 100, true
	}
	return 0, false
}

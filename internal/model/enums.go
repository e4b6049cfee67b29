package model

import (
	"fmt"
	"strings"
)

// State is an item's workflow stage. The string values are the on-disk form
// and must not change.
type State string

const (
	StateToDo       State = "Afaire"
	StateInProgress State = "EnCours"
	StatePending    State = "EnAttente"
	StateDone       State = "Terminee"
)

// States lists every state in menu order.
var States = []State{StateToDo, StateInProgress, StatePending, StateDone}

func (s State) Label() string {
	switch s {
	case StateToDo:
		return "To do"
	case StateInProgress:
		return "In progress"
	case StatePending:
		return "Pending"
	case StateDone:
		return "Done"
	}
	return string(s)
}

func (s State) Valid() bool {
	for _, v := range States {
		if v == s {
			return true
		}
	}
	return false
}

// Next returns the following state in menu order, wrapping around.
func (s State) Next() State {
	for i, v := range States {
		if v == s {
			return States[(i+1)%len(States)]
		}
	}
	return StateToDo
}

// ParseState accepts the stored value or the display label, case-insensitively.
func ParseState(s string) (State, error) {
	s = strings.TrimSpace(s)
	for _, v := range States {
		if strings.EqualFold(s, string(v)) || strings.EqualFold(s, v.Label()) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidState, s)
}

// Priority is an item's urgency tier.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if v == p {
			return true
		}
	}
	return false
}

func (p Priority) Next() Priority {
	for i, v := range Priorities {
		if v == p {
			return Priorities[(i+1)%len(Priorities)]
		}
	}
	return PriorityMedium
}

func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	for _, v := range Priorities {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

package game

import (
	"time"
)

type State uint8

const (
	Inactive State = iota
	Active
	Missed
	Clicked
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	case Missed:
		return "missed"
	case Clicked:
		return "clicked"
	}
	return "unknown"
}

// Terminal states only leave through a window reset
func (s State) Terminal() bool {
	switch s {
	case Missed, Clicked:
		return true
	case Inactive, Active:
		return false
	}
	return false
}

type Note struct {
	button Button
	target time.Duration // Offset from the window start the note should be hit at

	// This is state
	state State
}

func (n Note) Button() Button        { return n.button }
func (n Note) Target() time.Duration { return n.target }
func (n Note) State() State          { return n.state }

// The absolute distance between the note target and the window elapsed time
func (n *Note) distance(elapsed time.Duration) time.Duration {
	return abs(n.target - elapsed)
}

// Apply the tolerance rules for one tick
func (n *Note) tick(elapsed time.Duration) {
	within := n.distance(elapsed) <= ActivationTolerance
	switch n.state {
	case Inactive:
		if within {
			n.state = Active
		}
	case Active:
		if !within {
			n.state = Missed
		}
	case Missed, Clicked:
	}
}

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}

package game

import (
	"fmt"
	"strings"
)

type Button uint8

const (
	Button1 Button = iota
	Button2
	Button3
	Button4

	// ButtonCount is the size of the fixed identity space, at most 32
	ButtonCount = 4
)

func (b Button) Valid() bool {
	return b < ButtonCount
}

func (b Button) String() string {
	if !b.Valid() {
		return fmt.Sprintf("button(%d)", uint8(b))
	}
	return fmt.Sprintf("BTN%d", uint8(b)+1)
}

// ButtonSet is a set of buttons keyed by identity
type ButtonSet uint32

func NewButtonSet(buttons ...Button) ButtonSet {
	var s ButtonSet
	for _, b := range buttons {
		s = s.With(b)
	}
	return s
}

// With ignores buttons outside the identity space
func (s ButtonSet) With(b Button) ButtonSet {
	if !b.Valid() {
		return s
	}
	return s | 1<<b
}

func (s ButtonSet) Has(b Button) bool {
	return b.Valid() && s&(1<<b) != 0
}

func (s ButtonSet) Empty() bool {
	return s.Buttons() == nil
}

func (s ButtonSet) Buttons() []Button {
	var bs []Button
	for b := Button(0); b < ButtonCount; b++ {
		if s.Has(b) {
			bs = append(bs, b)
		}
	}
	return bs
}

func (s ButtonSet) String() string {
	names := []string{}
	for _, b := range s.Buttons() {
		names = append(names, b.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Input is the set of buttons newly pressed since the previous frame
type Input struct {
	Buttons ButtonSet
	Reset   bool
}

func (in Input) Empty() bool {
	return !in.Reset && in.Buttons.Empty()
}

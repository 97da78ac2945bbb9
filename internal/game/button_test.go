package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestButtonSet(t *testing.T) {
	s := NewButtonSet(Button1, Button4)
	assert.True(t, s.Has(Button1))
	assert.False(t, s.Has(Button2))
	assert.False(t, s.Has(Button3))
	assert.True(t, s.Has(Button4))
	assert.Equal(t, []Button{Button1, Button4}, s.Buttons())
	assert.Equal(t, "{BTN1,BTN4}", s.String())
}

func TestButtonSetIgnoresUnknown(t *testing.T) {
	s := NewButtonSet(Button(ButtonCount), Button(31))
	assert.True(t, s.Empty())
	assert.False(t, s.Has(Button(ButtonCount)))
	assert.Equal(t, "button(4)", Button(ButtonCount).String())
}

func TestInputEmpty(t *testing.T) {
	assert.True(t, Input{}.Empty())
	assert.False(t, Input{Reset: true}.Empty())
	assert.False(t, Input{Buttons: NewButtonSet(Button2)}.Empty())
}

var stateNames = map[State]string{
	Inactive: "inactive",
	Active:   "active",
	Missed:   "missed",
	Clicked:  "clicked",
	State(9): "unknown",
}

func TestStateString(t *testing.T) {
	for state, name := range stateNames {
		if state.String() != name {
			t.Log("state   ", uint8(state))
			t.Log("expected", name)
			t.Fail()
		}
	}
	assert.True(t, Missed.Terminal())
	assert.True(t, Clicked.Terminal())
	assert.False(t, Active.Terminal())
}

package input

import (
	"sync"

	"git.lost.host/meutraa/notewindow/internal/game"
)

// Collector gathers presses from every source between frames
type Collector struct {
	mu      sync.Mutex
	pending game.Input
}

func (c *Collector) Press(b game.Button) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending.Buttons = c.pending.Buttons.With(b)
}

func (c *Collector) PressReset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending.Reset = true
}

// Take returns the presses since the previous call and clears them
func (c *Collector) Take() game.Input {
	c.mu.Lock()
	defer c.mu.Unlock()
	in := c.pending
	c.pending = game.Input{}
	return in
}

// Tracker follows held keys for sources that report releases and forwards
// a press only when a key goes from up to down. Held keys and repeats never
// press twice.
type Tracker struct {
	mu        sync.Mutex
	collector *Collector
	held      game.ButtonSet
	resetHeld bool
}

func NewTracker(c *Collector) *Tracker {
	return &Tracker{collector: c}
}

func (t *Tracker) Down(b game.Button) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.held.Has(b) {
		return
	}
	t.held = t.held.With(b)
	t.collector.Press(b)
}

func (t *Tracker) Up(b game.Button) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.held &^= game.NewButtonSet(b)
}

func (t *Tracker) ResetDown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.resetHeld {
		return
	}
	t.resetHeld = true
	t.collector.PressReset()
}

func (t *Tracker) ResetUp() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetHeld = false
}

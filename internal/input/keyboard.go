package input

import (
	"time"

	"git.lost.host/meutraa/notewindow/internal/config"
	"github.com/eiannone/keyboard"
)

// DefaultKeyHold is a little above the usual terminal autorepeat period
const DefaultKeyHold = 40 * time.Millisecond

// KeyRepeat drops terminal autorepeat. Terminals report no releases, so a
// rune seen again within Hold of its previous event is still held.
type KeyRepeat struct {
	Hold time.Duration
	last map[rune]time.Duration
}

// pressed records the rune at session time at and reports a new press
func (k *KeyRepeat) pressed(r rune, at time.Duration) bool {
	if nil == k.last {
		k.last = map[rune]time.Duration{}
	}
	prev, seen := k.last[r]
	k.last[r] = at
	return !seen || at-prev > k.Hold
}

// ApplyKey feeds a terminal key event into the collector, at is the session
// time the event was taken from the terminal
func ApplyKey(c *Collector, k *KeyRepeat, b *config.Bindings, ev keyboard.KeyEvent, at time.Duration) (quit bool) {
	if ev.Key == keyboard.KeyEsc || ev.Key == keyboard.KeyCtrlC {
		return true
	}
	if ev.Rune == 0 {
		return false
	}
	if ev.Rune == b.Reset {
		if k.pressed(ev.Rune, at) {
			c.PressReset()
		}
		return false
	}
	if btn, ok := b.Button(ev.Rune); ok && k.pressed(ev.Rune, at) {
		c.Press(btn)
	}
	return false
}

// Package charts holds the windows built into the player
package charts

import (
	"time"

	"git.lost.host/meutraa/notewindow/internal/game"
)

type placement struct {
	button game.Button
	target time.Duration
}

type window struct {
	start, duration time.Duration
	notes           []placement
}

var reference = []window{
	{
		start:    1000 * time.Millisecond,
		duration: 4000 * time.Millisecond,
		notes: []placement{
			{game.Button1, 1000 * time.Millisecond},
			{game.Button4, 1300 * time.Millisecond},
			{game.Button2, 2400 * time.Millisecond},
			{game.Button3, 3750 * time.Millisecond},
		},
	},
	{
		start:    5300 * time.Millisecond,
		duration: 5000 * time.Millisecond,
		notes: []placement{
			{game.Button1, 2137 * time.Millisecond},
			{game.Button4, 4269 * time.Millisecond},
		},
	},
}

// Reference builds fresh copies of the two demo windows
func Reference() ([]*game.Window, error) {
	windows := []*game.Window{}
	for _, rw := range reference {
		w := game.NewWindow(rw.start, rw.duration)
		for _, p := range rw.notes {
			if err := w.AddNote(p.button, p.target); nil != err {
				return nil, err
			}
		}
		windows = append(windows, w)
	}
	return windows, nil
}

// End is the global time after which no window has anything left to play
func End(windows []*game.Window) time.Duration {
	var end time.Duration
	for _, w := range windows {
		if e := w.Start() + w.Duration(); e > end {
			end = e
		}
		for _, n := range w.Notes() {
			if e := w.Start() + n.Target() + game.ActivationTolerance; e > end {
				end = e
			}
		}
	}
	return end
}

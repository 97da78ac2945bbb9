package replay

import (
	"time"

	"git.lost.host/meutraa/notewindow/internal/game"
)

// InputsCompact holds the frames a single button was pressed on
type InputsCompact struct {
	Index  int   `json:"index"`
	Frames []int `json:"frames"`
}

type framesCompact struct {
	Deltas []time.Duration `json:"deltas"`
	Inputs []InputsCompact `json:"inputs"`
	Resets []int           `json:"resets,omitempty"`
}

func compactFrames(frames []Frame) framesCompact {
	fc := framesCompact{
		Deltas: make([]time.Duration, len(frames)),
		Inputs: make([]InputsCompact, game.ButtonCount),
	}
	for i := range fc.Inputs {
		fc.Inputs[i] = InputsCompact{Index: i, Frames: []int{}}
	}
	for i, f := range frames {
		fc.Deltas[i] = f.Delta
		for _, b := range f.Input.Buttons.Buttons() {
			fc.Inputs[b].Frames = append(fc.Inputs[b].Frames, i)
		}
		if f.Input.Reset {
			fc.Resets = append(fc.Resets, i)
		}
	}
	return fc
}

func uncompactFrames(fc framesCompact) []Frame {
	frames := make([]Frame, len(fc.Deltas))
	for i, d := range fc.Deltas {
		frames[i].Delta = d
	}
	in := func(i int) bool { return i >= 0 && i < len(frames) }
	for _, ic := range fc.Inputs {
		for _, i := range ic.Frames {
			if in(i) {
				frames[i].Input.Buttons = frames[i].Input.Buttons.With(game.Button(ic.Index))
			}
		}
	}
	for _, i := range fc.Resets {
		if in(i) {
			frames[i].Input.Reset = true
		}
	}
	return frames
}

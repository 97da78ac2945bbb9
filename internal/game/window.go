package game

import (
	"fmt"
	"math"
	"time"
)

// ActivationTolerance is the distance either side of a note target during
// which the note can be hit
const ActivationTolerance = 250 * time.Millisecond

// Window is a span of time holding an ordered set of notes and its own clock
type Window struct {
	globalTime time.Duration
	start      time.Duration
	duration   time.Duration
	notes      []Note

	// Set by the first tick, cleared by Reset
	ticked bool
}

func NewWindow(start, duration time.Duration) *Window {
	return &Window{
		start:    start,
		duration: duration,
		notes:    []Note{},
	}
}

func (w *Window) GlobalTime() time.Duration { return w.globalTime }
func (w *Window) Start() time.Duration      { return w.start }
func (w *Window) Duration() time.Duration   { return w.duration }
func (w *Window) Len() int                  { return len(w.notes) }
func (w *Window) Note(i int) Note           { return w.notes[i] }

// Elapsed is negative until the global time reaches the window start
func (w *Window) Elapsed() time.Duration {
	return w.globalTime - w.start
}

// Notes returns a copy of the notes in insertion order
func (w *Window) Notes() []Note {
	ns := make([]Note, len(w.notes))
	copy(ns, w.notes)
	return ns
}

// Progress is the cursor position within the window, only while
// start < global time < start + duration
func (w *Window) Progress() (float64, bool) {
	if w.duration <= 0 || w.globalTime <= w.start || w.globalTime >= w.start+w.duration {
		return 0, false
	}
	return float64(w.Elapsed()) / float64(w.duration), true
}

// Counts tallies the notes per state
func (w *Window) Counts() map[State]int {
	counts := map[State]int{Inactive: 0, Active: 0, Missed: 0, Clicked: 0}
	for _, n := range w.notes {
		counts[n.state]++
	}
	return counts
}

func (w *Window) AddNote(button Button, target time.Duration) error {
	if !button.Valid() {
		return fmt.Errorf("add note %v at %v: %w", button, target, ErrInvalidButton)
	}
	if target < 0 {
		return fmt.Errorf("add note %v at %v: %w", button, target, ErrNegativeTarget)
	}
	if w.ticked {
		return fmt.Errorf("add note %v at %v: %w", button, target, ErrSessionStarted)
	}
	w.notes = append(w.notes, Note{button: button, target: target, state: Inactive})
	return nil
}

// Update advances the clock by dt and recomputes every note state
func (w *Window) Update(dt time.Duration) error {
	if dt < 0 {
		return fmt.Errorf("update by %v: %w", dt, ErrNegativeDelta)
	}
	w.ticked = true
	w.globalTime += dt

	if w.globalTime < w.start {
		return nil
	}

	elapsed := w.Elapsed()
	for i := range w.notes {
		w.notes[i].tick(elapsed)
	}
	return nil
}

// Reset rewinds the clock to zero and every note to Inactive
func (w *Window) Reset() {
	w.globalTime = 0
	w.ticked = false
	for i := range w.notes {
		w.notes[i].state = Inactive
	}
}

// ResolveInput applies one input event to the active note closest to the
// current elapsed time. The clicked note is returned when the input held
// its button.
func (w *Window) ResolveInput(in Input) (Note, bool) {
	if in.Reset {
		w.Reset()
		return Note{}, false
	}

	elapsed := w.Elapsed()
	closest := -1
	minDistance := time.Duration(math.MaxInt64)
	for i := range w.notes {
		note := &w.notes[i]
		if note.state != Active {
			continue
		}
		// Strictly less, so the earliest added note wins a tie
		if d := note.distance(elapsed); d < minDistance {
			minDistance = d
			closest = i
		}
	}

	if closest < 0 {
		return Note{}, false
	}

	note := &w.notes[closest]
	if !in.Buttons.Has(note.button) {
		return Note{}, false
	}
	note.state = Clicked
	return *note, true
}

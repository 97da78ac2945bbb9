package input

import (
	"bytes"
	"encoding/binary"
	"sync"
	"testing"
	"time"

	"git.lost.host/meutraa/notewindow/internal/config"
	"git.lost.host/meutraa/notewindow/internal/game"
	"github.com/eiannone/keyboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

const ms = time.Millisecond

func TestCollectorTake(t *testing.T) {
	var c Collector
	c.Press(game.Button1)
	c.Press(game.Button3)
	c.Press(game.Button1)

	in := c.Take()
	assert.Equal(t, game.NewButtonSet(game.Button1, game.Button3), in.Buttons)
	assert.False(t, in.Reset)
	assert.True(t, c.Take().Empty())

	c.PressReset()
	assert.True(t, c.Take().Reset)
}

func TestCollectorConcurrent(t *testing.T) {
	var c Collector
	var wg sync.WaitGroup
	for i := 0; i < game.ButtonCount; i++ {
		wg.Add(1)
		go func(b game.Button) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Press(b)
			}
		}(game.Button(i))
	}
	wg.Wait()
	assert.Len(t, c.Take().Buttons.Buttons(), game.ButtonCount)
}

func TestTrackerEdges(t *testing.T) {
	var c Collector
	tr := NewTracker(&c)

	tr.Down(game.Button2)
	assert.Equal(t, game.NewButtonSet(game.Button2), c.Take().Buttons)

	// Still held, no new press
	tr.Down(game.Button2)
	assert.True(t, c.Take().Empty())

	tr.Up(game.Button2)
	tr.Down(game.Button2)
	assert.Equal(t, game.NewButtonSet(game.Button2), c.Take().Buttons)

	tr.ResetDown()
	tr.ResetDown()
	assert.Equal(t, game.Input{Reset: true}, c.Take())
	tr.ResetDown()
	assert.True(t, c.Take().Empty())
	tr.ResetUp()
	tr.ResetDown()
	assert.True(t, c.Take().Reset)
}

func TestTrackerTapWithinFrame(t *testing.T) {
	var c Collector
	tr := NewTracker(&c)
	tr.Down(game.Button4)
	tr.Up(game.Button4)
	assert.True(t, c.Take().Buttons.Has(game.Button4))
}

func TestApplyKey(t *testing.T) {
	var c Collector
	k := KeyRepeat{Hold: DefaultKeyHold}
	b := config.DefaultBindings()

	assert.False(t, ApplyKey(&c, &k, &b, keyboard.KeyEvent{Rune: 'x'}, 0))
	assert.False(t, ApplyKey(&c, &k, &b, keyboard.KeyEvent{Rune: 'q'}, 0))
	assert.False(t, ApplyKey(&c, &k, &b, keyboard.KeyEvent{Key: keyboard.KeySpace}, 0))
	assert.Equal(t, game.Input{Buttons: game.NewButtonSet(game.Button2)}, c.Take())

	assert.False(t, ApplyKey(&c, &k, &b, keyboard.KeyEvent{Rune: 'r'}, 0))
	assert.True(t, c.Take().Reset)

	assert.True(t, ApplyKey(&c, &k, &b, keyboard.KeyEvent{Key: keyboard.KeyEsc}, 0))
}

func TestApplyKeyRepeat(t *testing.T) {
	var c Collector
	k := KeyRepeat{Hold: DefaultKeyHold}
	b := config.DefaultBindings()

	steps := []struct {
		at      time.Duration
		key     rune
		pressed bool
	}{
		{0, 'z', true},
		{0, 'z', false},       // same frame
		{30 * ms, 'z', false}, // autorepeat
		{60 * ms, 'z', false}, // autorepeat
		{60 * ms, 'x', true},  // other keys are independent
		{200 * ms, 'z', true}, // released and pressed again
		{200 * ms, 'r', true},
		{220 * ms, 'r', false},
	}
	for _, step := range steps {
		ApplyKey(&c, &k, &b, keyboard.KeyEvent{Rune: step.key}, step.at)
		assert.Equal(t, step.pressed, !c.Take().Empty(), "%c at %v", step.key, step.at)
	}
}

func TestHeldKeyClicksOnce(t *testing.T) {
	var c Collector
	k := KeyRepeat{Hold: DefaultKeyHold}
	b := config.DefaultBindings()

	w := game.NewWindow(0, 2000*ms)
	require.NoError(t, w.AddNote(game.Button1, 500*ms))
	require.NoError(t, w.AddNote(game.Button1, 800*ms))
	require.NoError(t, w.Update(400*ms))

	// Z held down for 100 frames, the terminal repeating it every frame
	clicks := 0
	for i := 0; i < 100; i++ {
		at := w.GlobalTime()
		ApplyKey(&c, &k, &b, keyboard.KeyEvent{Rune: 'z'}, at)
		if _, hit := w.ResolveInput(c.Take()); hit {
			clicks++
		}
		require.NoError(t, w.Update(16*ms))
	}
	assert.Equal(t, 1, clicks)
	assert.Equal(t, game.Clicked, w.Note(0).State())
	assert.Equal(t, game.Missed, w.Note(1).State())
}

func encodeEvents(t *testing.T, evs ...keyEvent) *bytes.Buffer {
	var buf bytes.Buffer
	for _, ev := range evs {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, ev))
	}
	return &buf
}

func TestReadEvents(t *testing.T) {
	buf := encodeEvents(t,
		keyEvent{Type: evKey, Code: 44, Value: valueDown},
		keyEvent{Type: 0x00, Code: 0, Value: 0}, // EV_SYN
		keyEvent{Type: evKey, Code: 44, Value: valueRepeat},
		keyEvent{Type: evKey, Code: 44, Value: valueUp},
	)
	events := make(chan *Event, 8)
	require.NoError(t, readEvents(buf, events))
	close(events)

	got := []Event{}
	for ev := range events {
		got = append(got, *ev)
	}
	assert.Equal(t, []Event{
		{Pressed: true, Code: 44},
		{Released: true, Code: 44},
	}, got)
}

func TestReadEventsTruncated(t *testing.T) {
	buf := encodeEvents(t, keyEvent{Type: evKey, Code: 44, Value: valueDown})
	buf.Truncate(buf.Len() - 3)
	events := make(chan *Event, 1)
	assert.Error(t, readEvents(buf, events))
}

func TestApplyEvent(t *testing.T) {
	var c Collector
	tr := NewTracker(&c)
	b := config.DefaultBindings()

	ApplyEvent(tr, &b, &Event{Pressed: true, Code: 47})
	ApplyEvent(tr, &b, &Event{Pressed: true, Code: 30}) // KEY_A, unbound
	assert.Equal(t, game.Input{Buttons: game.NewButtonSet(game.Button4)}, c.Take())

	ApplyEvent(tr, &b, &Event{Pressed: true, Code: 19})
	assert.True(t, c.Take().Reset)
}

func TestApplyMidi(t *testing.T) {
	var c Collector
	tr := NewTracker(&c)
	b := config.DefaultBindings()

	ApplyMidi(tr, &b, midi.NoteOn(9, 38, 100))
	ApplyMidi(tr, &b, midi.NoteOn(9, 60, 100))
	assert.Equal(t, game.Input{Buttons: game.NewButtonSet(game.Button2)}, c.Take())

	// Velocity zero is a release
	ApplyMidi(tr, &b, midi.NoteOn(9, 38, 0))
	ApplyMidi(tr, &b, midi.NoteOn(9, 38, 90))
	assert.Equal(t, game.NewButtonSet(game.Button2), c.Take().Buttons)

	ApplyMidi(tr, &b, midi.NoteOn(9, 38, 90))
	assert.True(t, c.Take().Empty())
	ApplyMidi(tr, &b, midi.NoteOff(9, 38))
	ApplyMidi(tr, &b, midi.NoteOn(9, 38, 90))
	assert.False(t, c.Take().Empty())
}

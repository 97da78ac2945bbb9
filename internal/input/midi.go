package input

import (
	"fmt"

	"git.lost.host/meutraa/notewindow/internal/config"
	"github.com/charmbracelet/log"
	"gitlab.com/gomidi/midi/v2"
)

// ApplyMidi feeds note on and note off messages through the bindings
func ApplyMidi(t *Tracker, b *config.Bindings, msg midi.Message) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		if btn, ok := b.MidiButton(key); ok {
			t.Down(btn)
		}
	case msg.GetNoteEnd(&ch, &key):
		if btn, ok := b.MidiButton(key); ok {
			t.Up(btn)
		}
	}
}

// ListenMidi opens the named port and feeds it into the tracker until stop
// is called. A MIDI driver must be registered by the caller.
func ListenMidi(name string, t *Tracker, b *config.Bindings) (stop func(), err error) {
	in, err := midi.FindInPort(name)
	if nil != err {
		return nil, fmt.Errorf("unable to find midi port %q: %w", name, err)
	}
	if err := in.Open(); nil != err {
		return nil, fmt.Errorf("unable to open midi port %q: %w", name, err)
	}
	stop, err = midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		ApplyMidi(t, b, msg)
	}, midi.HandleError(func(err error) {
		log.Warn("midi listener error", "port", name, "err", err)
	}))
	if nil != err {
		in.Close()
		return nil, fmt.Errorf("unable to listen to midi port %q: %w", name, err)
	}
	log.Info("listening to midi", "port", name)
	return stop, nil
}

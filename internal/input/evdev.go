package input

import (
	"encoding/binary"
	"errors"
	"io"
	"os"

	"git.lost.host/meutraa/notewindow/internal/config"
	"github.com/charmbracelet/log"
)

// Linux input_event layout on 64 bit platforms
type keyEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

const (
	evKey       = 0x01
	valueUp     = 0
	valueDown   = 1
	valueRepeat = 2
)

type Event struct {
	Pressed  bool
	Released bool
	//https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
	Code uint16
}

func ReadInput(kbd string, events chan<- *Event) error {
	file, err := os.Open(kbd)
	if err != nil {
		return err
	}
	go func() {
		defer file.Close()
		if err := readEvents(file, events); nil != err {
			log.Error("unable to read keyboard input", "device", kbd, "err", err)
		}
	}()
	return nil
}

// readEvents forwards key presses and releases until the reader ends.
// Auto repeat events are dropped.
func readEvents(r io.Reader, events chan<- *Event) error {
	var ev keyEvent
	for {
		err := binary.Read(r, binary.LittleEndian, &ev)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if nil != err {
			return err
		}
		if ev.Type != evKey || ev.Value == valueRepeat {
			continue
		}
		events <- &Event{
			Pressed:  ev.Value == valueDown,
			Released: ev.Value == valueUp,
			Code:     ev.Code,
		}
	}
}

// ApplyEvent feeds a device event through the bindings
func ApplyEvent(t *Tracker, b *config.Bindings, ev *Event) {
	if ev.Code == b.ResetCode {
		if ev.Pressed {
			t.ResetDown()
		} else if ev.Released {
			t.ResetUp()
		}
		return
	}
	btn, ok := b.CodeButton(ev.Code)
	if !ok {
		return
	}
	if ev.Pressed {
		t.Down(btn)
	} else if ev.Released {
		t.Up(btn)
	}
}

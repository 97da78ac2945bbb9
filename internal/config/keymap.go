package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"git.lost.host/meutraa/notewindow/internal/game"
	"gopkg.in/yaml.v3"
)

// KeymapFile is the YAML form of the key bindings
type KeymapFile struct {
	Buttons   []string `yaml:"buttons"`
	Reset     string   `yaml:"reset"`
	Midi      []uint8  `yaml:"midi,omitempty"`
	// Linux key codes for evdev, input-event-codes.h
	Codes     []uint16 `yaml:"codes,omitempty"`
	ResetCode *uint16  `yaml:"reset_code,omitempty"`
}

// Bindings maps input sources to button identities
type Bindings struct {
	Runes     [game.ButtonCount]rune
	Reset     rune
	MidiNotes [game.ButtonCount]uint8
	// Linux key codes, input-event-codes.h
	Codes     [game.ButtonCount]uint16
	ResetCode uint16
}

var ErrKeymap = errors.New("invalid keymap")

// KEY_MAX in input-event-codes.h
const keyMax = 0x2ff

func DefaultBindings() Bindings {
	return Bindings{
		Runes:     [game.ButtonCount]rune{'z', 'x', 'c', 'v'},
		Reset:     'r',
		MidiNotes: [game.ButtonCount]uint8{36, 38, 42, 46},
		Codes:     [game.ButtonCount]uint16{44, 45, 46, 47}, // KEY_Z KEY_X KEY_C KEY_V
		ResetCode: 19,                                      // KEY_R
	}
}

// LoadBindings reads the keymap file, an empty path gives the defaults
func LoadBindings(path string) (Bindings, error) {
	if path == "" {
		return DefaultBindings(), nil
	}
	data, err := os.ReadFile(path)
	if nil != err {
		return Bindings{}, fmt.Errorf("unable to read keymap: %w", err)
	}
	return ParseBindings(data)
}

func ParseBindings(data []byte) (Bindings, error) {
	var f KeymapFile
	if err := yaml.Unmarshal(data, &f); nil != err {
		return Bindings{}, fmt.Errorf("unable to parse keymap: %w", err)
	}
	return f.Bindings()
}

func (f *KeymapFile) Bindings() (Bindings, error) {
	b := DefaultBindings()
	if len(f.Buttons) != game.ButtonCount {
		return b, fmt.Errorf("%w: %d buttons bound, need %d", ErrKeymap, len(f.Buttons), game.ButtonCount)
	}
	seen := map[rune]bool{}
	keys := append(append([]string{}, f.Buttons...), f.Reset)
	for i, k := range keys {
		if utf8.RuneCountInString(k) != 1 {
			return b, fmt.Errorf("%w: binding %q is not a single key", ErrKeymap, k)
		}
		r, _ := utf8.DecodeRuneInString(k)
		if seen[r] {
			return b, fmt.Errorf("%w: key %q bound twice", ErrKeymap, k)
		}
		seen[r] = true
		if i < game.ButtonCount {
			b.Runes[i] = r
		} else {
			b.Reset = r
		}
	}

	if len(f.Midi) > 0 {
		if len(f.Midi) != game.ButtonCount {
			return b, fmt.Errorf("%w: %d midi notes bound, need %d", ErrKeymap, len(f.Midi), game.ButtonCount)
		}
		notes := map[uint8]bool{}
		for i, n := range f.Midi {
			if n > 127 || notes[n] {
				return b, fmt.Errorf("%w: midi note %d", ErrKeymap, n)
			}
			notes[n] = true
			b.MidiNotes[i] = n
		}
	}

	if len(f.Codes) > 0 {
		if len(f.Codes) != game.ButtonCount {
			return b, fmt.Errorf("%w: %d key codes bound, need %d", ErrKeymap, len(f.Codes), game.ButtonCount)
		}
		copy(b.Codes[:], f.Codes)
	}
	if nil != f.ResetCode {
		b.ResetCode = *f.ResetCode
	}
	codes := map[uint16]bool{}
	for _, c := range append(append([]uint16{}, b.Codes[:]...), b.ResetCode) {
		if c == 0 || c > keyMax || codes[c] {
			return b, fmt.Errorf("%w: key code %d", ErrKeymap, c)
		}
		codes[c] = true
	}
	return b, nil
}

// Button returns the button bound to the rune
func (b *Bindings) Button(r rune) (game.Button, bool) {
	for i, c := range b.Runes {
		if r == c {
			return game.Button(i), true
		}
	}
	return 0, false
}

func (b *Bindings) MidiButton(note uint8) (game.Button, bool) {
	for i, n := range b.MidiNotes {
		if note == n {
			return game.Button(i), true
		}
	}
	return 0, false
}

func (b *Bindings) CodeButton(code uint16) (game.Button, bool) {
	for i, c := range b.Codes {
		if code == c {
			return game.Button(i), true
		}
	}
	return 0, false
}

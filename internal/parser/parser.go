package parser

import (
	"time"

	"git.lost.host/meutraa/notewindow/internal/game"
)

type Parser interface {
	Parse(file string) ([]*Chart, error)
}

type BPM struct {
	StartingBeat float64
	Value        float64
}

// Step is a single tap at an absolute chart time
type Step struct {
	Button game.Button
	Time   time.Duration
}

type Chart struct {
	Name  string
	Meter string
	Steps []Step
}

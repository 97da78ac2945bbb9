package main

import (
	"fmt"
	"strings"
	"time"

	"git.lost.host/meutraa/notewindow/internal/charts"
	"git.lost.host/meutraa/notewindow/internal/config"
	"git.lost.host/meutraa/notewindow/internal/game"
	"git.lost.host/meutraa/notewindow/internal/input"
	"git.lost.host/meutraa/notewindow/internal/parser"
	"git.lost.host/meutraa/notewindow/internal/render"
	"git.lost.host/meutraa/notewindow/internal/replay"
	"git.lost.host/meutraa/notewindow/internal/theme"
	"github.com/charmbracelet/log"
)

// Rows taken by one window layout plus a blank line
const windowRows = 7

type Program struct {
	Parser   parser.Parser
	Renderer render.Renderer
	Theme    theme.Theme
	KeyHold  time.Duration

	windows  []*game.Window
	end      time.Duration
	bindings config.Bindings
	session  *replay.Session

	collector input.Collector
	tracker   *input.Tracker
	keys      input.KeyRepeat
	clock     time.Duration

	frameCounter  uint64
	width, height int
	hits          int
}

// buildWindows makes fresh windows for the source, the built in ones when
// no chart is given
func buildWindows(psr parser.Parser, source replay.Source) ([]*game.Window, error) {
	if source.Chart == "" {
		return charts.Reference()
	}
	if nil == psr {
		psr = &parser.DefaultParser{}
	}
	cs, err := psr.Parse(source.Chart)
	if nil != err {
		return nil, fmt.Errorf("unable to parse %v: %w", source.Chart, err)
	}
	if source.Difficulty < 0 || source.Difficulty >= len(cs) {
		return nil, fmt.Errorf("difficulty %d out of range, %v has %d", source.Difficulty, source.Chart, len(cs))
	}
	return parser.Windows(cs[source.Difficulty], source.WindowSize)
}

func (p *Program) Init(source replay.Source, bindings config.Bindings) error {
	if nil == p.Parser {
		p.Parser = &parser.DefaultParser{}
	}
	if nil == p.Theme {
		p.Theme = theme.PlainTheme{}
	}

	windows, err := buildWindows(p.Parser, source)
	if nil != err {
		return err
	}
	p.windows = windows
	p.end = charts.End(windows)
	p.bindings = bindings
	p.session = replay.NewSession(source)
	p.tracker = input.NewTracker(&p.collector)
	p.keys = input.KeyRepeat{Hold: p.KeyHold}
	if p.keys.Hold <= 0 {
		p.keys.Hold = input.DefaultKeyHold
	}
	p.clock = 0

	log.Info("windows ready", "count", len(windows), "end", p.end, "session", p.session.ID)
	p.Resize()
	return nil
}

func (p *Program) Resize() {
	p.width, p.height = 80, 24
	if nil != p.Renderer {
		p.width, p.height = p.Renderer.Size()
	}
}

func (p *Program) Input() *input.Collector    { return &p.collector }
func (p *Program) Tracker() *input.Tracker    { return p.tracker }
func (p *Program) Keys() *input.KeyRepeat     { return &p.keys }
func (p *Program) Bindings() *config.Bindings { return &p.bindings }
func (p *Program) Session() *replay.Session   { return p.session }
func (p *Program) Windows() []*game.Window    { return p.windows }

// Clock is the session time, the sum of every frame delta so far
func (p *Program) Clock() time.Duration { return p.clock }

// Update takes the presses gathered since the last frame, resolves them
// and then advances every window by dt
func (p *Program) Update(dt time.Duration) error {
	frame := replay.Frame{Delta: dt, Input: p.collector.Take()}
	if frame.Input.Reset {
		log.Info("reset", "frame", p.frameCounter)
		p.hits = 0
	}
	hits, err := replay.Step(p.windows, frame)
	if nil != err {
		return err
	}
	p.session.Add(frame)
	p.clock += dt

	for _, note := range hits {
		p.hits++
		log.Debug("hit", "button", note.Button(), "target", note.Target(), "frame", p.frameCounter)
		if nil != p.Renderer {
			p.Renderer.AddDecoration(3, uint16(p.height-1), fmt.Sprintf("hit %v", note.Button()), 30)
		}
	}
	return nil
}

// Done once every window is past its last note and its end
func (p *Program) Done() bool {
	for _, w := range p.windows {
		if w.GlobalTime() < p.end {
			return false
		}
	}
	return true
}

// visible picks the windows that still have something to show, as many as
// fit on the screen
func (p *Program) visible() []*game.Window {
	fit := (p.height - 3) / windowRows
	if fit < 1 {
		fit = 1
	}
	ws := []*game.Window{}
	for _, w := range p.windows {
		if w.GlobalTime() > w.Start()+w.Duration()+game.ActivationTolerance {
			continue
		}
		if len(ws) == fit {
			break
		}
		ws = append(ws, w)
	}
	return ws
}

func (p *Program) Render() {
	p.frameCounter++
	if nil == p.Renderer {
		return
	}

	layoutWidth := p.width - 6
	if layoutWidth < 10 {
		layoutWidth = 10
	}

	row := 2
	for _, w := range p.visible() {
		for _, line := range render.NewLayout(w, layoutWidth).Lines(p.Theme) {
			p.Renderer.Fill(uint16(row), 3, line+"\033[K")
			row++
		}
		row++
	}
	for ; row < p.height-1; row++ {
		p.Renderer.Fill(uint16(row), 1, "\033[K")
	}

	keys := make([]string, len(p.bindings.Runes))
	for i, r := range p.bindings.Runes {
		keys[i] = string(r)
	}
	p.Renderer.Fill(uint16(p.height), 3, fmt.Sprintf(
		"hits %3d  keys %v  reset %c  esc quit\033[K",
		p.hits, strings.Join(keys, " "), p.bindings.Reset,
	))
}

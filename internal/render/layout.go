package render

import (
	"fmt"
	"strings"
	"time"

	"git.lost.host/meutraa/notewindow/internal/game"
	"git.lost.host/meutraa/notewindow/internal/theme"
)

// Distance between tick marks on the timeline
const tickSpacing = 500 * time.Millisecond

// Layout places the notes, ticks and cursor of a window on columns
// [0, Width)
type Layout struct {
	Width  int
	Header string
	Ticks  []int
	Cursor int // -1 when the clock is outside the window
	Notes  []Cell
}

type Cell struct {
	X    int
	Note game.Note
}

func column(f float64, width int) int {
	x := int(f*float64(width-1) + 0.5)
	if x < 0 {
		return 0
	}
	if x > width-1 {
		return width - 1
	}
	return x
}

func NewLayout(w *game.Window, width int) Layout {
	l := Layout{
		Width:  width,
		Header: fmt.Sprintf("%dms [%dms, %dms]", w.GlobalTime().Milliseconds(), w.Start().Milliseconds(), (w.Start() + w.Duration()).Milliseconds()),
		Ticks:  []int{},
		Cursor: -1,
		Notes:  []Cell{},
	}
	if width <= 0 || w.Duration() <= 0 {
		return l
	}

	if spaces := int(w.Duration() / tickSpacing); spaces > 0 {
		spacePx := width / spaces
		for i := 1; i < spaces; i++ {
			if x := i * spacePx; x < width {
				l.Ticks = append(l.Ticks, x)
			}
		}
	}

	if p, ok := w.Progress(); ok {
		l.Cursor = column(p, width)
	}

	for _, n := range w.Notes() {
		l.Notes = append(l.Notes, Cell{
			X:    column(float64(n.Target())/float64(w.Duration()), width),
			Note: n,
		})
	}
	return l
}

// Lines renders the layout as a bordered box. Later notes overwrite earlier
// ones on the same column.
func (l Layout) Lines(th theme.Theme) []string {
	notes := make([]string, l.Width)
	timeline := make([]string, l.Width)
	states := make([]string, l.Width)
	for i := 0; i < l.Width; i++ {
		notes[i] = " "
		timeline[i] = th.RenderTimeline("-")
		states[i] = " "
	}
	for _, x := range l.Ticks {
		timeline[x] = th.RenderTimeline("+")
	}
	if l.Cursor >= 0 {
		timeline[l.Cursor] = th.RenderCursor()
	}
	for _, c := range l.Notes {
		notes[c.X] = th.RenderNote(c.Note)
		states[c.X] = th.RenderState(c.Note.State())
	}

	edge := th.RenderBorder("+" + strings.Repeat("-", l.Width) + "+")
	side := th.RenderBorder("|")
	row := func(cells []string) string {
		return side + strings.Join(cells, "") + side
	}
	return []string{
		l.Header,
		edge,
		row(notes),
		row(timeline),
		row(states),
		edge,
	}
}

// Text renders the windows one after another with the plain theme
func Text(windows []*game.Window, width int) string {
	var b strings.Builder
	for _, w := range windows {
		for _, line := range NewLayout(w, width).Lines(theme.PlainTheme{}) {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

package theme

import (
	"io"

	"git.lost.host/meutraa/notewindow/internal/game"
	"github.com/charmbracelet/lipgloss"
)

var (
	daiDark        = lipgloss.Color("#181818")
	rayWhite       = lipgloss.Color("#f5f5f5")
	green          = lipgloss.Color("#00e430")
	red            = lipgloss.Color("#e62937")
	kissShotYellow = lipgloss.Color("#efd683")
	blue           = lipgloss.Color("#0079f1")
)

// Rim colour of a note by state
var stateColors = map[game.State]lipgloss.Color{
	game.Inactive: rayWhite,
	game.Active:   green,
	game.Missed:   red,
	game.Clicked:  kissShotYellow,
}

type DefaultTheme struct {
	notes    map[game.State]lipgloss.Style
	timeline lipgloss.Style
	cursor   lipgloss.Style
	border   lipgloss.Style
}

// NewDefaultTheme detects the colour support of w
func NewDefaultTheme(w io.Writer) *DefaultTheme {
	return NewDefaultThemeWithRenderer(lipgloss.NewRenderer(w))
}

func NewDefaultThemeWithRenderer(r *lipgloss.Renderer) *DefaultTheme {
	t := &DefaultTheme{
		notes:    map[game.State]lipgloss.Style{},
		timeline: r.NewStyle().Foreground(blue).Background(daiDark),
		cursor:   r.NewStyle().Foreground(red).Background(daiDark).Bold(true),
		border:   r.NewStyle().Foreground(rayWhite).Background(daiDark),
	}
	for state, color := range stateColors {
		t.notes[state] = r.NewStyle().Foreground(color).Background(daiDark).Bold(state == game.Active)
	}
	return t
}

func (t *DefaultTheme) style(s game.State) lipgloss.Style {
	style, ok := t.notes[s]
	if !ok {
		return t.border
	}
	return style
}

func (t *DefaultTheme) RenderNote(note game.Note) string {
	return t.style(note.State()).Render(noteSym(note.Button()))
}

func (t *DefaultTheme) RenderState(state game.State) string {
	return t.style(state).Render(stateSym(state))
}

func (t *DefaultTheme) RenderTimeline(cell string) string {
	return t.timeline.Render(cell)
}

func (t *DefaultTheme) RenderCursor() string {
	return t.cursor.Render(cursorSym)
}

func (t *DefaultTheme) RenderBorder(cell string) string {
	return t.border.Render(cell)
}

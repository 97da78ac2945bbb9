package theme

import "git.lost.host/meutraa/notewindow/internal/game"

// Theme turns single cells of a window layout into printable strings
type Theme interface {
	RenderNote(note game.Note) string
	RenderState(state game.State) string
	RenderTimeline(cell string) string
	RenderCursor() string
	RenderBorder(cell string) string
}

var (
	syms       = [game.ButtonCount]string{"Z", "X", "C", "V"}
	stateSyms  = map[game.State]string{game.Inactive: ".", game.Active: "*", game.Missed: "x", game.Clicked: "#"}
	cursorSym  = "|"
	unknownSym = "?"
)

func noteSym(b game.Button) string {
	if !b.Valid() {
		return unknownSym
	}
	return syms[b]
}

func stateSym(s game.State) string {
	sym, ok := stateSyms[s]
	if !ok {
		return unknownSym
	}
	return sym
}

// PlainTheme renders without any escape codes
type PlainTheme struct{}

func (PlainTheme) RenderNote(note game.Note) string    { return noteSym(note.Button()) }
func (PlainTheme) RenderState(state game.State) string { return stateSym(state) }
func (PlainTheme) RenderTimeline(cell string) string   { return cell }
func (PlainTheme) RenderCursor() string                { return cursorSym }
func (PlainTheme) RenderBorder(cell string) string     { return cell }

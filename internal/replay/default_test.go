package replay

import (
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/notewindow/internal/game"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ms = time.Millisecond

func openRecorder(t *testing.T) Recorder {
	t.Helper()
	var r Recorder = &DefaultRecorder{}
	require.NoError(t, r.Init(filepath.Join(t.TempDir(), "sessions.db")))
	t.Cleanup(func() {
		assert.NoError(t, r.Deinit())
	})
	return r
}

func press(buttons ...game.Button) game.Input {
	return game.Input{Buttons: game.NewButtonSet(buttons...)}
}

func referenceWindows(t *testing.T) []*game.Window {
	t.Helper()
	w := game.NewWindow(1000*ms, 4000*ms)
	require.NoError(t, w.AddNote(game.Button1, 1000*ms))
	require.NoError(t, w.AddNote(game.Button4, 1300*ms))
	require.NoError(t, w.AddNote(game.Button2, 2400*ms))
	require.NoError(t, w.AddNote(game.Button3, 3750*ms))
	w2 := game.NewWindow(5300*ms, 5000*ms)
	require.NoError(t, w2.AddNote(game.Button1, 2137*ms))
	require.NoError(t, w2.AddNote(game.Button4, 4269*ms))
	return []*game.Window{w, w2}
}

func noteStates(windows []*game.Window) [][]game.State {
	all := [][]game.State{}
	for _, w := range windows {
		ss := []game.State{}
		for _, n := range w.Notes() {
			ss = append(ss, n.State())
		}
		all = append(all, ss)
	}
	return all
}

func TestSaveLoad(t *testing.T) {
	r := openRecorder(t)

	s := NewSession(Source{})
	s.Add(Frame{Delta: 16 * ms})
	s.Add(Frame{Delta: 17 * ms, Input: press(game.Button2, game.Button3)})
	s.Add(Frame{Delta: 0, Input: game.Input{Reset: true}})
	require.NoError(t, r.Save(s))

	loaded, err := r.Load(s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, loaded.ID)
	assert.True(t, s.Created.Equal(loaded.Created))
	assert.Equal(t, s.Frames, loaded.Frames)
	assert.Equal(t, 33*ms, loaded.Duration())
}

func TestSaveLoadSource(t *testing.T) {
	r := openRecorder(t)

	source := Source{Chart: "songs/a/a.sm", Difficulty: 1, WindowSize: 4 * time.Second}
	s := NewSession(source)
	require.NoError(t, r.Save(s))

	loaded, err := r.Load(s.ID)
	require.NoError(t, err)
	assert.Equal(t, source, loaded.Source)
	assert.Empty(t, loaded.Frames)
}

func TestLoadMissing(t *testing.T) {
	r := openRecorder(t)
	_, err := r.Load(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveDuplicate(t *testing.T) {
	r := openRecorder(t)
	s := NewSession(Source{})
	require.NoError(t, r.Save(s))
	assert.Error(t, r.Save(s))
}

func TestList(t *testing.T) {
	r := openRecorder(t)

	summaries, err := r.List()
	require.NoError(t, err)
	assert.Empty(t, summaries)

	a := NewSession(Source{})
	a.Add(Frame{Delta: time.Second})
	b := NewSession(Source{Chart: "song.sm", Difficulty: 2, WindowSize: 4 * time.Second})
	b.Add(Frame{Delta: 10 * ms})
	b.Add(Frame{Delta: 20 * ms})
	require.NoError(t, r.Save(a))
	require.NoError(t, r.Save(b))

	summaries, err = r.List()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, a.ID, summaries[0].ID)
	assert.Equal(t, 1, summaries[0].Frames)
	assert.Equal(t, time.Second, summaries[0].Duration)
	assert.Equal(t, b.ID, summaries[1].ID)
	assert.Equal(t, "song.sm", summaries[1].Chart)
	assert.Equal(t, 2, summaries[1].Frames)
	assert.Equal(t, 30*ms, summaries[1].Duration)
}

func TestStep(t *testing.T) {
	windows := referenceWindows(t)

	hits, err := Step(windows, Frame{Delta: 2000 * ms})
	require.NoError(t, err)
	assert.Empty(t, hits)

	// Both windows see the press, only the first has an active note
	hits, err = Step(windows, Frame{Delta: 0, Input: press(game.Button1)})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1000*ms, hits[0].Target())

	_, err = Step(windows, Frame{Delta: -ms})
	assert.ErrorIs(t, err, game.ErrNegativeDelta)
}

func TestApplyDeterministic(t *testing.T) {
	frames := []Frame{}
	// 16ms frames for 5760ms, input is resolved before each frame advances
	presses := map[int]game.Button{
		120: game.Button1, // 1920ms, elapsed 920
		138: game.Button4, // 2208ms, elapsed 1208
		212: game.Button3, // 3392ms, wrong lane for the 2400 note
	}
	for i := 0; i < 360; i++ {
		f := Frame{Delta: 16 * ms}
		if b, ok := presses[i]; ok {
			f.Input = press(b)
		}
		frames = append(frames, f)
	}

	first := referenceWindows(t)
	require.NoError(t, Apply(first, frames))

	r := openRecorder(t)
	s := NewSession(Source{})
	for _, f := range frames {
		s.Add(f)
	}
	require.NoError(t, r.Save(s))
	loaded, err := r.Load(s.ID)
	require.NoError(t, err)

	second := referenceWindows(t)
	require.NoError(t, Apply(second, loaded.Frames))
	assert.Equal(t, noteStates(first), noteStates(second))
	assert.Equal(t, [][]game.State{
		{game.Clicked, game.Clicked, game.Missed, game.Missed},
		{game.Inactive, game.Inactive},
	}, noteStates(second))
}

func TestApplyNegativeDelta(t *testing.T) {
	err := Apply(referenceWindows(t), []Frame{{Delta: ms}, {Delta: -ms}})
	assert.ErrorIs(t, err, game.ErrNegativeDelta)
}

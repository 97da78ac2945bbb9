package replay

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/notewindow/internal/game"
	"github.com/google/uuid"
)

type Recorder interface {
	Init(path string) error
	Deinit() error

	// Save the frames of this session
	Save(session *Session) error

	// Load up a previous session
	Load(id uuid.UUID) (*Session, error)

	List() ([]Summary, error)
}

// Frame is one pass of the driver loop: the input is resolved before the
// windows advance by the delta
type Frame struct {
	Delta time.Duration
	Input game.Input
}

type Session struct {
	ID      uuid.UUID
	Created time.Time
	Source  Source
	Frames  []Frame
}

// Source is what the windows were built from
type Source struct {
	Chart      string // Chart file, empty for the built in windows
	Difficulty int
	WindowSize time.Duration
}

type Summary struct {
	ID       uuid.UUID
	Created  time.Time
	Chart    string
	Frames   int
	Duration time.Duration
}

func NewSession(source Source) *Session {
	return &Session{
		ID:      uuid.New(),
		Created: time.Now().UTC().Truncate(time.Second),
		Source:  source,
		Frames:  []Frame{},
	}
}

func (s *Session) Add(f Frame) {
	s.Frames = append(s.Frames, f)
}

// Duration is the sum of all deltas
func (s *Session) Duration() time.Duration {
	var total time.Duration
	for _, f := range s.Frames {
		total += f.Delta
	}
	return total
}

// Step resolves the input against every window then advances them
func Step(windows []*game.Window, f Frame) ([]game.Note, error) {
	hits := []game.Note{}
	if !f.Input.Empty() {
		for _, w := range windows {
			if note, ok := w.ResolveInput(f.Input); ok {
				hits = append(hits, note)
			}
		}
	}
	for _, w := range windows {
		if err := w.Update(f.Delta); nil != err {
			return hits, err
		}
	}
	return hits, nil
}

// Apply runs every frame of the session against the windows
func Apply(windows []*game.Window, frames []Frame) error {
	for i, f := range frames {
		if _, err := Step(windows, f); nil != err {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}

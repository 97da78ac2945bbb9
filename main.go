package main

import (
	"fmt"
	"os"
	"time"

	"git.lost.host/meutraa/notewindow/internal/config"
	"git.lost.host/meutraa/notewindow/internal/game"
	"git.lost.host/meutraa/notewindow/internal/input"
	"git.lost.host/meutraa/notewindow/internal/parser"
	"git.lost.host/meutraa/notewindow/internal/render"
	"git.lost.host/meutraa/notewindow/internal/replay"
	"git.lost.host/meutraa/notewindow/internal/theme"
	"github.com/charmbracelet/log"
	"github.com/eiannone/keyboard"
	"github.com/google/uuid"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// KEY_ESC in input-event-codes.h
const evdevEsc = 1

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.New(os.Stderr).Fatal(err)
	}
}

func setupLogging(path string, debug bool) (func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if nil != err {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Prefix:          "notewindow",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)
	return func() { f.Close() }, nil
}

func run(args []string) error {
	cmd, err := config.Parse(args)
	if nil != err {
		return err
	}

	closeLog, err := setupLogging(*config.LogFile, *config.Debug)
	if nil != err {
		return err
	}
	defer closeLog()

	var recorder replay.Recorder = &replay.DefaultRecorder{}
	if err := recorder.Init(*config.Database); nil != err {
		return err
	}
	defer func() {
		if err := recorder.Deinit(); nil != err {
			log.Error("unable to close session database", "err", err)
		}
	}()

	switch cmd {
	case config.PlayCmd.FullCommand():
		bindings, err := config.LoadBindings(*config.Keymap)
		if nil != err {
			return err
		}
		return play(recorder, bindings, replay.Source{
			Chart:      *config.Chart,
			Difficulty: *config.Difficulty,
			WindowSize: *config.WindowSize,
		})
	case config.ReplayCmd.FullCommand():
		return replaySession(recorder, *config.SessionID)
	case config.SessionsCmd.FullCommand():
		return listSessions(recorder)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func play(recorder replay.Recorder, bindings config.Bindings, source replay.Source) error {
	r := &render.DefaultRenderer{}
	p := &Program{
		Parser:   &parser.DefaultParser{},
		Renderer: r,
		Theme:    theme.NewDefaultTheme(os.Stdout),
		KeyHold:  *config.KeyHold,
	}
	if err := p.Init(source, bindings); nil != err {
		return err
	}

	var keyChannel <-chan keyboard.KeyEvent
	var events chan *input.Event
	if *config.Evdev != "" {
		events = make(chan *input.Event, 128)
		if err := input.ReadInput(*config.Evdev, events); nil != err {
			return fmt.Errorf("unable to open input device: %w", err)
		}
	} else {
		keys, err := keyboard.GetKeys(128)
		if nil != err {
			return fmt.Errorf("unable to open keyboard: %w", err)
		}
		defer func() {
			if err := keyboard.Close(); nil != err {
				log.Error("unable to close keyboard", "err", err)
			}
		}()
		keyChannel = keys
	}

	if *config.MidiIn != "" {
		stop, err := input.ListenMidi(*config.MidiIn, p.Tracker(), p.Bindings())
		if nil != err {
			return err
		}
		defer stop()
	}

	if err := r.Init(); nil != err {
		return err
	}

	var loopErr error
	r.RenderLoop(*config.Delay, *config.FramePeriod, func(dt time.Duration) bool {
		// get the key inputs that occured so far
		for i := len(keyChannel); i > 0; i-- {
			key := <-keyChannel
			if nil != key.Err {
				log.Warn("keyboard error", "err", key.Err)
				continue
			}
			if input.ApplyKey(p.Input(), p.Keys(), p.Bindings(), key, p.Clock()) {
				return false
			}
		}
		for i := len(events); i > 0; i-- {
			ev := <-events
			if ev.Code == evdevEsc {
				return false
			}
			input.ApplyEvent(p.Tracker(), p.Bindings(), ev)
		}

		if err := p.Update(dt); nil != err {
			loopErr = err
			return false
		}
		p.Render()
		return !p.Done()
	})

	// Restore the terminal state
	if err := r.Deinit(); nil != err {
		log.Error("unable to restore terminal", "err", err)
	}
	if nil != loopErr {
		return loopErr
	}

	s := p.Session()
	fmt.Print(render.Text(p.Windows(), 60))
	if !*config.Record {
		return nil
	}
	if err := recorder.Save(s); nil != err {
		return err
	}
	log.Info("session saved", "id", s.ID, "frames", len(s.Frames))
	fmt.Printf("session %v saved, %d frames\n", s.ID, len(s.Frames))
	return nil
}

func replaySession(recorder replay.Recorder, id string) error {
	uid, err := uuid.Parse(id)
	if nil != err {
		return fmt.Errorf("invalid session id %q: %w", id, err)
	}
	s, err := recorder.Load(uid)
	if nil != err {
		return err
	}
	windows, err := buildWindows(&parser.DefaultParser{}, s.Source)
	if nil != err {
		return err
	}
	if err := replay.Apply(windows, s.Frames); nil != err {
		return err
	}
	log.Info("replayed", "id", s.ID, "frames", len(s.Frames), "duration", s.Duration())

	fmt.Print(render.Text(windows, 60))
	for i, w := range windows {
		counts := w.Counts()
		fmt.Printf("window %d: %d clicked, %d missed, %d active, %d inactive\n", i,
			counts[game.Clicked], counts[game.Missed], counts[game.Active], counts[game.Inactive])
	}
	return nil
}

func listSessions(recorder replay.Recorder) error {
	summaries, err := recorder.List()
	if nil != err {
		return err
	}
	for _, s := range summaries {
		chart := s.Chart
		if chart == "" {
			chart = "(built in)"
		}
		fmt.Printf("%v  %v  %6d frames  %10v  %v\n",
			s.ID, s.Created.Local().Format(time.DateTime), s.Frames, s.Duration, chart)
	}
	return nil
}

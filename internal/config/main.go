package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.3.0"

var (
	App = kingpin.New("notewindow", "Rhythm timing windows in the terminal")

	Keymap      = App.Flag("keymap", "YAML keymap file").Short('k').String()
	LogFile     = App.Flag("log", "Log file").Default(filepath.Join(os.TempDir(), "notewindow.log")).String()
	Database    = App.Flag("db", "Session database").Default("./sessions.db").String()
	Debug       = App.Flag("debug", "Debug logging").Bool()
	PlayCmd     = App.Command("play", "Play the timing windows").Default()
	Delay       = PlayCmd.Flag("delay", "Start delay").Default("1.5s").Short('d').Duration()
	FramePeriod = PlayCmd.Flag("frame-period", "Render frame period").Default("16ms").Short('p').Duration()
	Record      = PlayCmd.Flag("record", "Save the session for replay").Default("true").Bool()
	Chart       = PlayCmd.Flag("chart", "StepMania .sm chart to cut into windows").ExistingFile()
	Difficulty  = PlayCmd.Flag("difficulty", "Chart difficulty index").Default("0").Int()
	WindowSize  = PlayCmd.Flag("window", "Length of each window cut from a chart").Default("4s").Duration()
	Evdev       = PlayCmd.Flag("evdev", "Read keys from a Linux input device instead of the terminal").ExistingFile()
	MidiIn      = PlayCmd.Flag("midi-in", "MIDI input port name").String()
	KeyHold     = PlayCmd.Flag("key-hold", "A terminal key repeated within this is still held, raise it to the autorepeat delay to also drop the first repeat").Default("40ms").Duration()
	ReplayCmd   = App.Command("replay", "Replay a recorded session")
	SessionID   = ReplayCmd.Arg("session", "Session id").Required().String()
	SessionsCmd = App.Command("sessions", "List recorded sessions")
)

func init() {
	App.Version(Version)
}

// Parse returns the selected command name
func Parse(args []string) (string, error) {
	cmd, err := App.Parse(args)
	if nil != err {
		return "", fmt.Errorf("unable to parse arguments: %w", err)
	}
	return cmd, nil
}

package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/notewindow/internal/game"
)

type DefaultParser struct{}

// Only dance-single lines up with the four buttons
const chartType = "dance-single"

var ErrNoCharts = errors.New("no dance-single charts")

func (p *DefaultParser) getSecondsPerNote(rates []BPM, currentBeat float64, bpn float64) float64 {
	sel := float64(0.0)
	for _, bpm := range rates {
		if currentBeat >= bpm.StartingBeat {
			sel = bpm.Value
		} else {
			break
		}
	}
	secondsPerBeat := 60.0 / sel
	return bpn * secondsPerBeat
}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine (or other negative note)
// K – Automatic keysound
// L – Lift note
// F – Fake note

// Heads are played as taps, everything else is not a step
func (p *DefaultParser) isStep(c byte) bool {
	return c == '1' || c == '2' || c == '4'
}

func (p *DefaultParser) Parse(file string) ([]*Chart, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, err
	}
	defer f.Close()
	return p.parse(f)
}

type section struct {
	name, meter, notes string
}

func (p *DefaultParser) parse(r io.Reader) ([]*Chart, error) {
	data, err := io.ReadAll(r)
	if nil != err {
		return nil, err
	}

	str := strings.ReplaceAll(string(data), "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]
	found := []section{}
	for _, s := range sections[1:] {
		lines := strings.SplitN(s, "\n", 7)
		if len(lines) < 7 {
			return nil, fmt.Errorf("truncated #NOTES section")
		}
		t := strings.TrimSuffix(strings.TrimSpace(lines[1]), ":")
		if t != chartType {
			continue
		}
		notes := lines[6]
		if end := strings.Index(notes, ";"); end >= 0 {
			notes = notes[:end]
		}
		found = append(found, section{
			name:  strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"),
			meter: strings.TrimSuffix(strings.TrimSpace(lines[4]), ":"),
			notes: notes,
		})
	}
	if len(found) == 0 {
		return nil, ErrNoCharts
	}

	offset := 0.0
	bpms := []BPM{}

	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimPrefix(strings.TrimSpace(mdl), "#")
		if strings.HasPrefix(mdl, "OFFSET:") {
			mdl = strings.TrimPrefix(mdl, "OFFSET:")
			mdl = strings.TrimSuffix(mdl, ";")
			offs, err := strconv.ParseFloat(strings.TrimSpace(mdl), 64)
			if nil != err {
				return nil, fmt.Errorf("unable to parse offset: %w", err)
			}
			offset = -offs
		} else if strings.HasPrefix(mdl, "BPMS:") {
			mdl = strings.TrimPrefix(mdl, "BPMS:")
			mdl = strings.ReplaceAll(mdl, "\n", "")
			bbs := strings.Split(strings.TrimSuffix(mdl, ";"), ",")
			for _, bpm := range bbs {
				as := strings.Split(strings.TrimSpace(bpm), "=")
				if len(as) != 2 {
					return nil, fmt.Errorf("unable to parse bpm %q", bpm)
				}
				sb, err := strconv.ParseFloat(as[0], 64)
				if nil != err {
					return nil, fmt.Errorf("unable to parse bpm beat: %w", err)
				}
				value, err := strconv.ParseFloat(as[1], 64)
				if nil != err {
					return nil, fmt.Errorf("unable to parse bpm value: %w", err)
				}
				if value <= 0 {
					return nil, fmt.Errorf("bpm %v is not positive", value)
				}
				bpms = append(bpms, BPM{StartingBeat: sb, Value: value})
			}
		}
	}
	if len(bpms) == 0 {
		return nil, errors.New("no #BPMS in chart")
	}

	charts := []*Chart{}
	for _, s := range found {
		charts = append(charts, &Chart{
			Name:  s.name,
			Meter: s.meter,
			Steps: p.steps(s.notes, offset, bpms),
		})
	}
	return charts, nil
}

func (p *DefaultParser) steps(notes string, offset float64, bpms []BPM) []Step {
	// Start time of first note
	seconds := offset
	var currentBeat float64 = 0.0
	steps := []Step{}

	for _, block := range strings.Split(notes, "\n,") {
		lines := []string{}
		for _, l := range strings.Split(block, "\n") {
			if c := strings.Index(l, "//"); c >= 0 {
				l = l[:c]
			}
			if strings.HasPrefix(l, " ") || strings.Contains(l, "-") {
				continue
			}
			l = strings.TrimSpace(l)
			if len(l) >= game.ButtonCount {
				lines = append(lines, l)
			}
		}
		if len(lines) == 0 {
			continue
		}

		// Beat count is 4 per block
		beatsPerNote := 4.0 / float64(len(lines)) // 1/4, 1/8, 1/16, 1/24 etc

		for _, line := range lines {
			for i := 0; i < game.ButtonCount; i++ {
				if !p.isStep(line[i]) || seconds < 0 {
					continue
				}
				steps = append(steps, Step{
					Button: game.Button(i),
					Time:   time.Duration(seconds * 1000 * 1000 * 1000).Round(time.Millisecond),
				})
			}
			seconds += p.getSecondsPerNote(bpms, currentBeat, beatsPerNote)
			currentBeat += beatsPerNote
		}
	}
	return steps
}

// Windows cuts the chart into consecutive slices of the given size. Every
// window after the first opens up to ActivationTolerance before its slice,
// so a step right after a cut keeps its early tolerance.
func Windows(c *Chart, size time.Duration) ([]*game.Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size %v is not positive", size)
	}
	windows := []*game.Window{}
	for _, step := range c.Steps {
		i := int(step.Time / size)
		for len(windows) <= i {
			windows = append(windows, sliceWindow(len(windows), size))
		}
		w := windows[i]
		if err := w.AddNote(step.Button, step.Time-w.Start()); nil != err {
			return nil, err
		}
	}
	return windows, nil
}

func sliceWindow(i int, size time.Duration) *game.Window {
	start := time.Duration(i) * size
	lead := min(start, game.ActivationTolerance)
	return game.NewWindow(start-lead, size+lead)
}

package typewriter

import (
	"strings"
	"time"

	"github.com/san-kum/typewrite/internal/config"
)

// Frame is one reveal step of a pass.
type Frame struct {
	Index  int
	Text   string
	Cursor bool
	Blink  bool
	Delay  time.Duration
	Last   bool
}

// Split breaks text into the units revealed one per step.
func Split(text string) []string {
	units := make([]string, 0, len(text))
	for _, r := range text {
		units = append(units, string(r))
	}
	return units
}

// Plan lays out one pass over units. Every frame but the last waits the step
// delay. The last frame waits the interval when repeating and the step delay
// otherwise. Its cursor marker does not blink.
func Plan(units []string, cfg config.Config) []Frame {
	frames := make([]Frame, 0, len(units))
	var b strings.Builder
	step := cfg.StepDelay()
	for i, u := range units {
		b.WriteString(u)
		last := i+1 >= len(units)
		f := Frame{
			Index:  i,
			Text:   b.String(),
			Cursor: cfg.Cursor,
			Blink:  cfg.Cursor && !last,
			Delay:  step,
			Last:   last,
		}
		if last && cfg.Repeat {
			f.Delay = cfg.IntervalDelay()
		}
		frames = append(frames, f)
	}
	return frames
}

// PassDuration is the total suspension time of one pass.
func PassDuration(frames []Frame) time.Duration {
	var total time.Duration
	for _, f := range frames {
		total += f.Delay
	}
	return total
}

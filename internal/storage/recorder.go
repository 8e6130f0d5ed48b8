package storage

import (
	"sync"
	"time"

	"github.com/san-kum/typewrite/internal/typewriter"
)

// Frame is one recorded reveal step.
type Frame struct {
	Elapsed time.Duration
	Stage   int
	Target  int
	Label   string
	Cycle   int
	Text    string
	Cursor  bool
	Delay   time.Duration
}

// Recorder collects timeline events into a transcript. It is a
// typewriter.Observer and is told about stage boundaries by the player.
type Recorder struct {
	mu       sync.Mutex
	now      func() time.Time
	start    time.Time
	stage    int
	labels   []string
	sources  map[string]string
	frames   []Frame
	passes   int
	failures []string
}

func NewRecorder() *Recorder {
	return newRecorder(time.Now)
}

func newRecorder(now func() time.Time) *Recorder {
	return &Recorder{now: now, start: now(), sources: make(map[string]string)}
}

func (r *Recorder) BeginStage(index int, labels []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stage = index
	r.labels = append([]string(nil), labels...)
}

func (r *Recorder) OnStart(target int, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[r.label(target)] = text
}

func (r *Recorder) OnFrame(target int, cycle int, f typewriter.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, Frame{
		Elapsed: r.now().Sub(r.start),
		Stage:   r.stage,
		Target:  target,
		Label:   r.label(target),
		Cycle:   cycle,
		Text:    f.Text,
		Cursor:  f.Cursor,
		Delay:   f.Delay,
	})
}

func (r *Recorder) OnPass(target int, cycle int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passes++
}

func (r *Recorder) OnDone(target int, err error) {
	if err == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, err.Error())
}

func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Frame(nil), r.frames...)
}

func (r *Recorder) Sources() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string, len(r.sources))
	for k, v := range r.sources {
		out[k] = v
	}
	return out
}

func (r *Recorder) Passes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.passes
}

func (r *Recorder) Failures() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.failures...)
}

func (r *Recorder) Elapsed() time.Duration {
	return r.now().Sub(r.start)
}

func (r *Recorder) label(target int) string {
	if target >= 0 && target < len(r.labels) {
		return r.labels[target]
	}
	return ""
}

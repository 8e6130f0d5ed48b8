package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/typewrite/internal/dom"
)

const (
	frameRate   = 30
	blinkPeriod = 500 * time.Millisecond
)

type TickMsg time.Time

// DoneMsg carries the settled result of the reveal.
type DoneMsg struct {
	Value string
	Err   error
}

// Element is anything the model can draw.
type Element interface {
	Snapshot() dom.Snapshot
}

// Model redraws element snapshots on every tick.
type Model struct {
	title    string
	elements []Element
	hold     bool

	start   time.Time
	now     time.Time
	frame   int
	blinkOn bool

	done   bool
	result string
	err    error
}

// NewModel builds a model over elems. With hold set the model keeps showing
// the final page after the reveal settles until a key is pressed.
func NewModel(title string, elems []Element, hold bool) Model {
	now := time.Now()
	return Model{
		title:    title,
		elements: elems,
		hold:     hold,
		start:    now,
		now:      now,
		blinkOn:  true,
	}
}

// Elements adapts document elements for NewModel.
func Elements(elems []*dom.Element) []Element {
	out := make([]Element, len(elems))
	for i, e := range elems {
		out[i] = e
	}
	return out
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Done() bool       { return m.done }
func (m Model) Result() string   { return m.result }
func (m Model) Err() error       { return m.err }
func (m Model) BlinkPhase() bool { return m.blinkOn }
func (m Model) FrameCount() int  { return m.frame }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		if m.done {
			return m, tea.Quit
		}
	case TickMsg:
		m.now = time.Time(msg)
		m.frame++
		m.blinkOn = (m.now.Sub(m.start)/blinkPeriod)%2 == 0
		return m, tick()
	case DoneMsg:
		m.done = true
		m.result = msg.Value
		m.err = msg.Err
		if !m.hold || msg.Err != nil {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the visible elements and a status line.
func (m Model) View() string {
	var page strings.Builder
	shown := 0
	for _, e := range m.elements {
		snap := e.Snapshot()
		if snap.Hidden {
			continue
		}
		if shown > 0 {
			page.WriteString("\n")
		}
		page.WriteString(m.renderElement(snap))
		shown++
	}
	if shown == 0 {
		page.WriteString(Subtle.Render("(nothing visible)"))
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(m.title))
	b.WriteString("\n")
	framed := PageStyle.Render(page.String())
	b.WriteString(framed)
	b.WriteString("\n")
	b.WriteString(Separator(lipgloss.Width(framed)))
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	if m.done && m.hold {
		b.WriteString(KeyHint.Render("press any key to exit"))
	} else {
		b.WriteString(KeyHint.Render("q quit"))
	}
	return b.String()
}

func (m Model) renderElement(snap dom.Snapshot) string {
	style := lipgloss.NewStyle().Foreground(Color(snap.Color))
	line := style.Render(snap.Text)
	if snap.Cursor && (!snap.Blink || m.blinkOn) {
		line += style.Render(dom.CursorGlyph)
	}
	return line
}

func (m Model) status() string {
	elapsed := m.now.Sub(m.start).Truncate(10 * time.Millisecond)
	switch {
	case m.err != nil:
		return StatusFailed.Render(fmt.Sprintf("✗ %v", m.err))
	case m.done:
		return StatusRunning.Render(fmt.Sprintf("✓ %s", m.result)) + Subtle.Render(fmt.Sprintf("  %v", elapsed))
	}
	return StatusRunning.Render(Spinner(m.frame)+" revealing") + Subtle.Render(fmt.Sprintf("  %v", elapsed))
}

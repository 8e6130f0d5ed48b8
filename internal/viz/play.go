package viz

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type outcome struct {
	value string
	err   error
}

// Play runs work next to the TUI and returns work's result. Quitting the TUI
// early cancels the context handed to work.
func Play(ctx context.Context, m Model, work func(context.Context) (string, error), opts ...tea.ProgramOption) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(m, opts...)
	res := make(chan outcome, 1)
	go func() {
		value, err := work(ctx)
		res <- outcome{value: value, err: err}
		p.Send(DoneMsg{Value: value, Err: err})
	}()

	if _, err := p.Run(); err != nil {
		return "", err
	}
	cancel()
	out := <-res
	return out.value, out.err
}

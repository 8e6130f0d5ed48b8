package playback

import (
	"context"
	"fmt"

	"github.com/san-kum/typewrite/internal/config"
	"github.com/san-kum/typewrite/internal/dom"
	"github.com/san-kum/typewrite/internal/observability"
	"github.com/san-kum/typewrite/internal/typewriter"
)

// StageObserver is told when the player moves on to the next stage.
type StageObserver interface {
	BeginStage(index int, labels []string)
}

// Stage is a script stage bound to the elements it animates.
type Stage struct {
	config.Stage
	Resolved config.Options
	Elements []*dom.Element
}

func (s Stage) Labels() []string {
	labels := make([]string, len(s.Elements))
	for i, e := range s.Elements {
		labels[i] = e.Label()
	}
	return labels
}

// Player runs the stages of a script one after another.
type Player struct {
	engine *typewriter.Engine
	log    *observability.Logger
	hooks  []StageObserver
}

func New(engine *typewriter.Engine, log *observability.Logger, hooks ...StageObserver) *Player {
	if log == nil {
		log = observability.Nop()
	}
	return &Player{engine: engine, log: log, hooks: hooks}
}

// Prepare loads the script page and binds every stage to its elements.
func Prepare(s *config.Script) (*dom.Document, []Stage, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}

	var (
		doc *dom.Document
		err error
	)
	switch {
	case s.Page != "":
		doc, err = dom.Load(s.Page)
	case s.HTML != "":
		doc, err = dom.ParseString(s.HTML)
	default:
		return nil, nil, fmt.Errorf("script has neither page nor html")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load page: %w", err)
	}

	stages := make([]Stage, 0, len(s.Stages))
	for i, st := range s.Stages {
		opts, err := st.Resolve()
		if err != nil {
			return nil, nil, fmt.Errorf("stage %d: %w", i, err)
		}
		elems, err := doc.Select(st.Selector)
		if err != nil {
			return nil, nil, fmt.Errorf("stage %d: %w", i, err)
		}
		stages = append(stages, Stage{Stage: st, Resolved: opts, Elements: elems})
	}
	return doc, stages, nil
}

// Play runs the stages in order. A stage starts once the previous stage's
// Completion has settled; the first error stops the chain.
func (p *Player) Play(ctx context.Context, stages []Stage) (string, error) {
	result := typewriter.CompletionValue
	for i, st := range stages {
		labels := st.Labels()
		for _, h := range p.hooks {
			h.BeginStage(i, labels)
		}
		if st.Show {
			for _, e := range st.Elements {
				e.Show()
			}
		}

		p.log.Debug("stage started", "stage", i, "selector", st.Selector, "targets", len(labels))
		done := p.engine.Run(ctx, dom.AsTargets(st.Elements), st.Resolved)
		value, err := done.Wait(ctx)
		if err != nil {
			return "", fmt.Errorf("stage %d (%s): %w", i, st.Selector, err)
		}
		p.log.Info("stage done", "stage", i, "selector", st.Selector, "result", value)
		result = value
	}
	return result, nil
}

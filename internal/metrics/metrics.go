package metrics

import (
	"context"
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/san-kum/typewrite/internal/typewriter"
)

// Metrics exposes Prometheus collectors fed by timeline events. It is a
// typewriter.Observer.
type Metrics struct {
	frames    *prometheus.CounterVec
	passes    prometheus.Counter
	done      *prometheus.CounterVec
	started   prometheus.Counter
	active    prometheus.Gauge
	stepDelay prometheus.Histogram
}

// MustNewMetrics registers the collectors on reg, reusing collectors that are
// already registered under the same names. Other registration errors panic.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "typewrite",
			Subsystem: "timeline",
			Name:      "frames_total",
			Help:      "Reveal steps rendered, by target index.",
		}, []string{"target"}),
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "typewrite",
			Subsystem: "timeline",
			Name:      "passes_total",
			Help:      "Passes restarted by repeating timelines.",
		}),
		done: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "typewrite",
			Subsystem: "timeline",
			Name:      "finished_total",
			Help:      "Timelines that stopped, by outcome.",
		}, []string{"outcome"}),
		started: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "typewrite",
			Subsystem: "timeline",
			Name:      "started_total",
			Help:      "Timelines that captured their target text.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "typewrite",
			Subsystem: "timeline",
			Name:      "active",
			Help:      "Timelines currently revealing or repeating.",
		}),
		stepDelay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "typewrite",
			Subsystem: "timeline",
			Name:      "step_delay_seconds",
			Help:      "Suspension requested after each reveal step.",
			Buckets:   []float64{0, 0.01, 0.025, 0.05, 0.075, 0.1, 0.5, 1, 2, 5},
		}),
	}

	m.frames = register(reg, m.frames)
	m.passes = register(reg, m.passes)
	m.done = register(reg, m.done)
	m.started = register(reg, m.started)
	m.active = register(reg, m.active)
	m.stepDelay = register(reg, m.stepDelay)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *Metrics) OnStart(target int, text string) {
	m.started.Inc()
	m.active.Inc()
}

func (m *Metrics) OnFrame(target int, cycle int, f typewriter.Frame) {
	m.frames.WithLabelValues(strconv.Itoa(target)).Inc()
	m.stepDelay.Observe(f.Delay.Seconds())
}

func (m *Metrics) OnPass(target int, cycle int) {
	m.passes.Inc()
}

// OnDone is also called for timelines that failed before they started; those
// leave the active gauge alone.
func (m *Metrics) OnDone(target int, err error) {
	outcome := "done"
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		outcome = "cancelled"
	default:
		outcome = "failed"
	}
	m.done.WithLabelValues(outcome).Inc()

	var terr *typewriter.TargetError
	if errors.As(err, &terr) && terr.Init {
		return
	}
	m.active.Dec()
}

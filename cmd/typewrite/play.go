package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/san-kum/typewrite/internal/config"
	"github.com/san-kum/typewrite/internal/dom"
	"github.com/san-kum/typewrite/internal/metrics"
	"github.com/san-kum/typewrite/internal/observability"
	"github.com/san-kum/typewrite/internal/playback"
	"github.com/san-kum/typewrite/internal/storage"
	"github.com/san-kum/typewrite/internal/typewriter"
	"github.com/san-kum/typewrite/internal/viz"
	"github.com/spf13/cobra"
)

func runPage(cmd *cobra.Command, args []string) error {
	opts, err := resolveFlags(cmd)
	if err != nil {
		return err
	}

	s := &config.Script{
		Output: output,
		Stages: []config.Stage{{Selector: selector, Options: opts}},
	}
	name := "demo"
	if len(args) > 0 {
		s.Page = args[0]
		name = filepath.Base(args[0])
	} else {
		s.HTML = config.DemoPage
	}
	return playScript(cmd, s, name)
}

func runScript(cmd *cobra.Command, args []string) error {
	s, err := config.LoadScript(args[0])
	if err != nil {
		return fmt.Errorf("failed to load script: %w", err)
	}

	overrides, err := resolveFlags(cmd)
	if err != nil {
		return err
	}
	overrideStages(s, overrides)
	if cmd.Flags().Changed("output") {
		s.Output = output
	}
	if s.Page != "" && !filepath.IsAbs(s.Page) {
		s.Page = filepath.Join(filepath.Dir(args[0]), s.Page)
	}

	return playScript(cmd, s, filepath.Base(args[0]))
}

// overrideStages merges the --preset values and explicit option flags over
// every stage, so they win over the stage's own preset and options.
func overrideStages(s *config.Script, overrides config.Options) {
	for i := range s.Stages {
		s.Stages[i].Options = s.Stages[i].Options.Merge(overrides)
	}
}

// playScript binds the script to its page, plays it in the viewer or
// headless, then writes the output page and the recording.
func playScript(cmd *cobra.Command, s *config.Script, name string) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("data") {
		dataDir = env.DataDir
	}

	if s.Output == "" {
		s.Output = output
	}
	doc, stages, err := playback.Prepare(s)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(env, headless)
	if err != nil {
		return err
	}
	defer closeLog()

	reg := prometheus.NewRegistry()
	m := metrics.MustNewMetrics(reg)
	stopMetrics := serveMetrics(reg, logger)
	defer stopMetrics()

	engineOpts := []typewriter.Option{typewriter.WithLogger(logger), typewriter.WithObserver(m)}
	var hooks []playback.StageObserver
	rec := storage.NewRecorder()
	if record {
		engineOpts = append(engineOpts, typewriter.WithObserver(rec))
		hooks = append(hooks, rec)
	}
	player := playback.New(typewriter.New(engineOpts...), logger, hooks...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	work := func(ctx context.Context) (string, error) {
		return player.Play(ctx, stages)
	}

	start := time.Now()
	var result string
	if headless {
		result, err = work(ctx)
	} else {
		model := viz.NewModel("typewrite · "+name, viz.Elements(elements(stages)), hold)
		result, err = viz.Play(ctx, model, work)
	}
	elapsed := time.Since(start)

	stopped := errors.Is(err, context.Canceled)
	switch {
	case stopped:
		logger.Info("stopped", "elapsed", elapsed)
		result = "stopped"
	case err != nil:
		logger.Error("play failed", "error", err)
		result = "failed"
	}

	if s.Output != "" && (err == nil || stopped) {
		if serr := doc.Save(s.Output); serr != nil {
			return fmt.Errorf("write output: %w", serr)
		}
		fmt.Printf("wrote %s\n", s.Output)
	}

	if record {
		st := storage.New(dataDir)
		if ierr := st.Init(); ierr != nil {
			return ierr
		}
		runID, serr := st.Save(name, stageMetadata(stages), result, rec)
		if serr != nil {
			return fmt.Errorf("save run: %w", serr)
		}
		fmt.Printf("run id: %s\n", runID)
		fmt.Printf("frames: %d\n", len(rec.Frames()))
	}

	if headless {
		for _, e := range elements(stages) {
			snap := e.Snapshot()
			if !snap.Hidden {
				fmt.Printf("%s: %s\n", snap.Label, snap.Text)
			}
		}
	}

	if err != nil && !stopped {
		return err
	}
	fmt.Printf("%s in %v\n", result, elapsed.Truncate(time.Millisecond))
	return nil
}

// newLogger logs to stderr when headless. The viewer owns the terminal, so
// otherwise the log goes to a file in the data directory.
func newLogger(env config.Env, headless bool) (*observability.Logger, func(), error) {
	cfg := observability.LogConfig{Level: env.LogLevel, Format: env.LogFormat}
	if headless {
		return observability.NewLogger(cfg), func() {}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dataDir, "typewrite.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	cfg.Output = f
	return observability.NewLogger(cfg), func() { f.Close() }, nil
}

func serveMetrics(reg *prometheus.Registry, logger *observability.Logger) func() {
	if metricsAddr == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", metricsAddr, "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", metricsAddr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func elements(stages []playback.Stage) []*dom.Element {
	var out []*dom.Element
	seen := make(map[string]bool)
	for _, st := range stages {
		for _, e := range st.Elements {
			if !seen[e.Label()] {
				seen[e.Label()] = true
				out = append(out, e)
			}
		}
	}
	return out
}

func stageMetadata(stages []playback.Stage) []storage.StageMetadata {
	meta := make([]storage.StageMetadata, len(stages))
	for i, st := range stages {
		meta[i] = storage.StageMetadata{
			Selector: st.Selector,
			Config:   config.Resolve(st.Resolved),
			Targets:  st.Labels(),
		}
	}
	return meta
}

package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/typewrite/internal/config"
	"github.com/san-kum/typewrite/internal/storage"
	"github.com/san-kum/typewrite/internal/typewriter"
	"github.com/spf13/cobra"
)

const (
	graphWidth  = 80
	graphHeight = 10
	maxRows     = 40
)

func planText(cmd *cobra.Command, args []string) error {
	opts, err := resolveFlags(cmd)
	if err != nil {
		return err
	}
	cfg := config.Resolve(opts)
	frames := typewriter.Plan(typewriter.Split(args[0]), cfg)

	fmt.Printf("speed: %d  repeat: %v  cursor: %v  color: %s  interval: %dms\n",
		cfg.Speed, cfg.Repeat, cfg.Cursor, cfg.Color, cfg.Interval)
	fmt.Printf("steps: %d  pass: %v\n\n", len(frames), typewriter.PassDuration(frames))
	if len(frames) == 0 {
		fmt.Println("nothing to reveal")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTEXT\tCURSOR\tDELAY")
	for _, f := range frames {
		fmt.Fprintf(w, "%d\t%q\t%s\t%v\n", f.Index, f.Text, cursorState(f.Cursor, f.Blink), f.Delay)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(revealCurve(frames),
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption("revealed characters over one pass"),
	))
	return nil
}

// revealCurve samples the revealed length every 10ms of the pass. A pass
// without delays is plotted one point per step.
func revealCurve(frames []typewriter.Frame) []float64 {
	const resolution = 10 * time.Millisecond
	var data []float64
	for _, f := range frames {
		n := float64(utf8.RuneCountInString(f.Text))
		samples := int(f.Delay / resolution)
		if samples < 1 {
			samples = 1
		}
		for i := 0; i < samples; i++ {
			data = append(data, n)
		}
	}
	return data
}

func cursorState(cursor, blink bool) string {
	switch {
	case !cursor:
		return "-"
	case blink:
		return "blink"
	}
	return "steady"
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSPEED\tREPEAT\tCURSOR\tCOLOR\tINTERVAL")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		cfg := config.Resolve(p)
		fmt.Fprintf(w, "%s\t%d\t%v\t%v\t%s\t%dms\n", name, cfg.Speed, cfg.Repeat, cfg.Cursor, cfg.Color, cfg.Interval)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(runDataDir(cmd))
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tELAPSED\tSTAGES\tFRAMES\tPASSES\tRESULT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Elapsed.Truncate(time.Millisecond),
			len(run.Stages),
			run.Frames,
			run.Passes,
			run.Result,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(runDataDir(cmd))
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s\n", meta.Name)
	fmt.Printf("result: %s\n", meta.Result)
	fmt.Printf("elapsed: %v\n", meta.Elapsed.Truncate(time.Millisecond))
	fmt.Printf("frames: %d  passes: %d\n", meta.Frames, meta.Passes)
	for _, f := range meta.Failures {
		fmt.Printf("failure: %s\n", f)
	}

	fmt.Println("\nstages:")
	for i, s := range meta.Stages {
		fmt.Printf("  %d. %s -> %v (speed %d, repeat %v, cursor %v, %s)\n",
			i, s.Selector, s.Targets, s.Config.Speed, s.Config.Repeat, s.Config.Cursor, s.Config.Color)
	}

	if len(frames) == 0 {
		fmt.Println("\nno frames recorded")
		return nil
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ELAPSED\tSTAGE\tTARGET\tCYCLE\tTEXT\tDELAY")
	for i, f := range frames {
		if i == maxRows {
			fmt.Fprintf(w, "...\t\t\t\t(%d more)\t\n", len(frames)-maxRows)
			break
		}
		fmt.Fprintf(w, "%v\t%d\t%s\t%d\t%q\t%v\n", f.Elapsed, f.Stage, f.Label, f.Cycle, f.Text, f.Delay)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	series, labels := progressSeries(frames)
	fmt.Println()
	fmt.Println(asciigraph.PlotMany(series,
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption("revealed characters per frame: "+fmt.Sprint(labels)),
	))
	return nil
}

// progressSeries splits recorded frames into one revealed-length series per
// element, in first-seen order.
func progressSeries(frames []storage.Frame) ([][]float64, []string) {
	index := make(map[string]int)
	var (
		series [][]float64
		labels []string
	)
	for _, f := range frames {
		key := f.Label
		if key == "" {
			key = strconv.Itoa(f.Stage) + "/" + strconv.Itoa(f.Target)
		}
		i, ok := index[key]
		if !ok {
			i = len(series)
			index[key] = i
			series = append(series, nil)
			labels = append(labels, key)
		}
		series[i] = append(series[i], float64(utf8.RuneCountInString(f.Text)))
	}
	return series, labels
}

// runDataDir resolves the data directory for the read-only commands.
func runDataDir(cmd *cobra.Command) string {
	if cmd.Flags().Changed("data") {
		return dataDir
	}
	env, err := config.LoadEnv()
	if err != nil {
		return dataDir
	}
	return env.DataDir
}

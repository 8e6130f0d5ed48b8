package main

import (
	"github.com/san-kum/typewrite/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func addOptionFlags(fs *pflag.FlagSet) {
	fs.IntVar(&speed, "speed", config.DefaultSpeed, "reveal speed, 0 (slow) to 100 (instant)")
	fs.BoolVar(&repeat, "repeat", config.DefaultRepeat, "loop the reveal forever")
	fs.BoolVar(&cursor, "cursor", config.DefaultCursor, "show a cursor after the revealed text")
	fs.StringVar(&color, "color", config.DefaultColor, "css text colour")
	fs.IntVar(&interval, "interval", config.DefaultInterval, "pause in ms before a repeat restarts")
	fs.StringVar(&preset, "preset", "", "start from a named preset")
}

func addPlayFlags(fs *pflag.FlagSet) {
	fs.StringVar(&output, "output", "", "write the final page to this html file")
	fs.BoolVar(&headless, "headless", false, "run without the terminal viewer")
	fs.BoolVar(&record, "record", false, "store the frame transcript in the data directory")
	fs.BoolVar(&hold, "hold", false, "keep the viewer open after the reveal finishes")
	fs.StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while playing")
}

// flagOptions returns the option flags the user set explicitly. Flags left at
// their defaults do not override presets or scripts.
func flagOptions(cmd *cobra.Command) config.Options {
	var opts config.Options
	fs := cmd.Flags()
	if fs.Changed("speed") {
		opts.Speed = config.Int(speed)
	}
	if fs.Changed("repeat") {
		opts.Repeat = config.Bool(repeat)
	}
	if fs.Changed("cursor") {
		opts.Cursor = config.Bool(cursor)
	}
	if fs.Changed("color") {
		opts.Color = config.String(color)
	}
	if fs.Changed("interval") {
		opts.Interval = config.Int(interval)
	}
	return opts
}

// resolveFlags applies --preset and then the explicit option flags.
func resolveFlags(cmd *cobra.Command) (config.Options, error) {
	st := config.Stage{Preset: preset, Options: flagOptions(cmd)}
	return st.Resolve()
}
